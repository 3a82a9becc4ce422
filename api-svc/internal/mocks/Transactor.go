package mocks

import (
	"context"

	"bistro-booking/api-svc/internal/service"

	"github.com/stretchr/testify/mock"
)

type Transactor struct {
	mock.Mock
}

func (_m *Transactor) RunInTx(ctx context.Context, fn func(store service.CheckoutStore) error) error {
	ret := _m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(service.CheckoutStore) error) error); ok {
		return rf(ctx, fn)
	}
	return ret.Error(0)
}

func NewTransactor(t interface {
	mock.TestingT
	Cleanup(func())
}) *Transactor {
	m := &Transactor{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
