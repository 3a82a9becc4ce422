package mocks

import (
	"context"

	"bistro-booking/api-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type SalesCounter struct {
	mock.Mock
}

func (_m *SalesCounter) RecordSale(ctx context.Context, items []domain.OrderItem) error {
	ret := _m.Called(ctx, items)
	return ret.Error(0)
}

func (_m *SalesCounter) Top(ctx context.Context, day string, limit int) ([]domain.SalesStat, error) {
	ret := _m.Called(ctx, day, limit)
	var r0 []domain.SalesStat
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.SalesStat)
	}
	return r0, ret.Error(1)
}

func NewSalesCounter(t interface {
	mock.TestingT
	Cleanup(func())
}) *SalesCounter {
	m := &SalesCounter{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
