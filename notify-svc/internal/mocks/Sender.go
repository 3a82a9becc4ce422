package mocks

import (
	"context"

	"bistro-booking/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type Sender struct {
	mock.Mock
}

func (_m *Sender) Send(ctx context.Context, n domain.Notification) domain.DeliverySummary {
	ret := _m.Called(ctx, n)
	return ret.Get(0).(domain.DeliverySummary)
}

func NewSender(t interface {
	mock.TestingT
	Cleanup(func())
}) *Sender {
	m := &Sender{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
