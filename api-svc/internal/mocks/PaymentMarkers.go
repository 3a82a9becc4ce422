package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type PaymentMarkers struct {
	mock.Mock
}

func (_m *PaymentMarkers) IsPaid(ctx context.Context, sessionID string) (bool, error) {
	ret := _m.Called(ctx, sessionID)
	return ret.Bool(0), ret.Error(1)
}

func (_m *PaymentMarkers) MarkPaid(ctx context.Context, sessionID string) error {
	ret := _m.Called(ctx, sessionID)
	return ret.Error(0)
}

func NewPaymentMarkers(t interface {
	mock.TestingT
	Cleanup(func())
}) *PaymentMarkers {
	m := &PaymentMarkers{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
