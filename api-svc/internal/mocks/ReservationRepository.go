package mocks

import (
	"context"
	"time"

	"bistro-booking/api-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type ReservationRepository struct {
	mock.Mock
}

func (_m *ReservationRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	ret := _m.Called(ctx, res)
	return ret.Error(0)
}

func (_m *ReservationRepository) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	ret := _m.Called(ctx, id)
	var r0 *domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *ReservationRepository) GetReservationBySession(ctx context.Context, sessionID string) (*domain.Reservation, error) {
	ret := _m.Called(ctx, sessionID)
	var r0 *domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *ReservationRepository) FindConfirmedReservation(ctx context.Context, tableNumber int, date, bookingTime string, excludeID int) (*domain.Reservation, error) {
	ret := _m.Called(ctx, tableNumber, date, bookingTime, excludeID)
	var r0 *domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *ReservationRepository) ListBookedTables(ctx context.Context, date, bookingTime string) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, date, bookingTime)
	var r0 []domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *ReservationRepository) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	ret := _m.Called(ctx)
	var r0 []domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *ReservationRepository) ListReservationsByUser(ctx context.Context, userID int) ([]domain.Reservation, error) {
	ret := _m.Called(ctx, userID)
	var r0 []domain.Reservation
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Reservation)
	}
	return r0, ret.Error(1)
}

func (_m *ReservationRepository) UpdateReservation(ctx context.Context, res *domain.Reservation) error {
	ret := _m.Called(ctx, res)
	return ret.Error(0)
}

func (_m *ReservationRepository) SetReservationStatus(ctx context.Context, id int, status domain.ReservationStatus, completedAt *time.Time) error {
	ret := _m.Called(ctx, id, status, completedAt)
	return ret.Error(0)
}

func NewReservationRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *ReservationRepository {
	m := &ReservationRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}
