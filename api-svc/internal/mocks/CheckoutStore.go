package mocks

import (
	"context"

	"bistro-booking/api-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type CheckoutStore struct {
	mock.Mock
}

func (_m *CheckoutStore) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *CheckoutStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	ret := _m.Called(ctx, order)
	return ret.Error(0)
}

func (_m *CheckoutStore) LockOrderBySession(ctx context.Context, sessionID string) (*domain.Order, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *CheckoutStore) SetOrderStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	ret := _m.Called(ctx, orderID, status)
	return ret.Error(0)
}

func NewCheckoutStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *CheckoutStore {
	m := &CheckoutStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Transactor returns its first Return value as-is unless it is a func, in which case
// the func is invoked with the callback so tests can run it against a CheckoutStore mock.
