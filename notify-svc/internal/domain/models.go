package domain

import (
	"errors"
	"time"
)

// PushSubscription is the browser's PushSubscription.toJSON() shape.
type PushSubscription struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

type AdminSubscription struct {
	ID           int              `json:"id"`
	UserID       int              `json:"userId"`
	Subscription PushSubscription `json:"subscription"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// AdminEvent mirrors the envelope api-svc publishes on the admin-events topic.
type AdminEvent struct {
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	EntityID   int       `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

var knownEvents = map[string]bool{
	"order.paid":            true,
	"order.cancelled":       true,
	"reservation.created":   true,
	"reservation.updated":   true,
	"reservation.cancelled": true,
	"reservation.completed": true,
}

func (e AdminEvent) Known() bool {
	return knownEvents[e.Type]
}

type Notification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type DeliverySummary struct {
	Attempted int `json:"attempted"`
	Delivered int `json:"delivered"`
	Pruned    int `json:"pruned"`
}

var (
	ErrInvalidSubscription  = errors.New("Subscription with endpoint and keys is required")
	ErrSubscriptionNotFound = errors.New("Subscription not found")
)
