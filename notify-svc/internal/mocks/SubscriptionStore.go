package mocks

import (
	"context"

	"bistro-booking/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SubscriptionStore struct {
	mock.Mock
}

func (_m *SubscriptionStore) UpsertSubscription(ctx context.Context, sub *domain.AdminSubscription) error {
	ret := _m.Called(ctx, sub)
	return ret.Error(0)
}

func (_m *SubscriptionStore) ListSubscriptions(ctx context.Context) ([]domain.AdminSubscription, error) {
	ret := _m.Called(ctx)
	var r0 []domain.AdminSubscription
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.AdminSubscription)
	}
	return r0, ret.Error(1)
}

func (_m *SubscriptionStore) DeleteSubscription(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewSubscriptionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SubscriptionStore {
	m := &SubscriptionStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
