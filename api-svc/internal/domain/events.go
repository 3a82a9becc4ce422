package domain

import "time"

const (
	EventOrderPaid            = "order.paid"
	EventOrderCancelled       = "order.cancelled"
	EventReservationCreated   = "reservation.created"
	EventReservationUpdated   = "reservation.updated"
	EventReservationCancelled = "reservation.cancelled"
	EventReservationCompleted = "reservation.completed"
)

// AdminEvent is published on the admin-events topic and turned into a push notification downstream.
type AdminEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	EntityID   int       `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
