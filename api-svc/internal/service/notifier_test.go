package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/mocks"
	"bistro-booking/api-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newNotifier drains background publishes before the mocks check their expectations.
func newNotifier(t *testing.T, events service.EventPublisher) *service.Notifier {
	t.Helper()
	n := service.NewNotifier(events)
	t.Cleanup(n.Wait)
	return n
}

func TestNotifier_Notify(t *testing.T) {
	events := mocks.NewEventPublisher(t)
	events.On("PublishAdminEvent", mock.Anything, mock.MatchedBy(func(ev domain.AdminEvent) bool {
		return ev.Type == domain.EventOrderPaid && ev.Title == "New Order" && ev.EntityID == 9 && !ev.OccurredAt.IsZero()
	})).Return(errors.New("broker down")).Once()

	n := service.NewNotifier(events)
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), domain.EventOrderPaid, "New Order", "Order 9 paid", 9)
	})
	n.Wait()
}

func TestNotifier_PublishSurvivesCallerCancellation(t *testing.T) {
	events := mocks.NewEventPublisher(t)
	events.On("PublishAdminEvent", mock.MatchedBy(func(ctx context.Context) bool {
		_, hasDeadline := ctx.Deadline()
		return ctx.Err() == nil && hasDeadline
	}), eventOfType(domain.EventOrderCancelled)).Return(nil).Once()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := service.NewNotifier(events)
	n.Notify(ctx, domain.EventOrderCancelled, "Order Cancelled", "Order 4 cancelled", 4)
	n.Wait()
}

func TestNotifier_SlowBrokerDoesNotDelayReservation(t *testing.T) {
	repo := mocks.NewReservationRepository(t)
	events := mocks.NewEventPublisher(t)
	svc := service.NewReservationService(repo, newNotifier(t, events), nil, time.UTC).
		WithClock(func() time.Time { return fixedNow })

	release := make(chan time.Time)
	repo.On("FindConfirmedReservation", mock.Anything, 5, "2025-03-01", "19:00", 0).Return(nil, nil).Once()
	repo.On("CreateReservation", mock.Anything, mock.Anything).Return(nil).Once()
	events.On("PublishAdminEvent", mock.Anything, eventOfType(domain.EventReservationCreated)).
		WaitUntil(release).Return(nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := svc.Create(context.Background(), 7, domain.ReservationRequest{
			TableNumber: 5, Date: "2025-03-01", BookingTime: "19:00", GuestCount: 4,
		})
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Error("reservation waited for the admin event publish")
	}
	close(release)
}

func TestNotifier_NilIsNoop(t *testing.T) {
	var n *service.Notifier
	assert.NotPanics(t, func() {
		n.Notify(context.Background(), domain.EventOrderPaid, "t", "b", 1)
		n.Wait()
	})
}
