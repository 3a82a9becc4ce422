package mocks

import (
	"context"

	"bistro-booking/api-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MenuRepository struct {
	mock.Mock
}

func (_m *MenuRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	ret := _m.Called(ctx)
	var r0 []domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuRepository) GetMenuItems(ctx context.Context, ids []int) (map[int]domain.MenuItem, error) {
	ret := _m.Called(ctx, ids)
	var r0 map[int]domain.MenuItem
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(map[int]domain.MenuItem)
	}
	return r0, ret.Error(1)
}

func (_m *MenuRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	ret := _m.Called(ctx, item)
	return ret.Error(0)
}

func (_m *MenuRepository) DeleteMenuItem(ctx context.Context, id int) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

func NewMenuRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MenuRepository {
	m := &MenuRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
