package mocks

import (
	"context"
	"time"

	"bistro-booking/api-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (_m *OrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) GetOrderBySession(ctx context.Context, sessionID string) (*domain.Order, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 *domain.Order
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Order)
	}
	return r0, ret.Error(1)
}

func (_m *OrderRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus, completedAt *time.Time) error {
	ret := _m.Called(ctx, id, status, completedAt)
	return ret.Error(0)
}

func (_m *OrderRepository) DeleteOrder(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func (_m *OrderRepository) TopSellingItems(ctx context.Context, since *time.Time, limit int) ([]domain.SalesStat, error) {
	ret := _m.Called(ctx, since, limit)
	var r0 []domain.SalesStat
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SalesStat)
	}
	return r0, ret.Error(1)
}

func NewOrderRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *OrderRepository {
	m := &OrderRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
