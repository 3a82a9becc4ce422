package mocks

import (
	"context"

	"bistro-booking/api-svc/internal/payment"

	"github.com/stretchr/testify/mock"
)

type Gateway struct {
	mock.Mock
}

func (_m *Gateway) CreateSession(ctx context.Context, req payment.SessionRequest) (*payment.Session, error) {
	ret := _m.Called(ctx, req)
	var r0 *payment.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*payment.Session)
	}
	return r0, ret.Error(1)
}

func (_m *Gateway) GetSession(ctx context.Context, sessionID string) (*payment.Session, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 *payment.Session
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*payment.Session)
	}
	return r0, ret.Error(1)
}

func NewGateway(t interface {
	mock.TestingT
	Cleanup(func())
}) *Gateway {
	m := &Gateway{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
