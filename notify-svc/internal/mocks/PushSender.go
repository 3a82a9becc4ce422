package mocks

import (
	"context"

	"bistro-booking/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type PushSender struct {
	mock.Mock
}

func (_m *PushSender) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) (int, error) {
	ret := _m.Called(ctx, sub, payload)
	return ret.Int(0), ret.Error(1)
}

func NewPushSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *PushSender {
	m := &PushSender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
