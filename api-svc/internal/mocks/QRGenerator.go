package mocks

import (
	"github.com/stretchr/testify/mock"
)

type QRGenerator struct {
	mock.Mock
}

func (_m *QRGenerator) Generate(reservationID int) ([]byte, error) {
	ret := _m.Called(reservationID)
	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}
	return r0, ret.Error(1)
}

func NewQRGenerator(t interface {
	mock.TestingT
	Cleanup(func())
}) *QRGenerator {
	m := &QRGenerator{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
