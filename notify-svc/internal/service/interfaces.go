package service

import (
	"context"

	"bistro-booking/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
)

type SubscriptionStore interface {
	UpsertSubscription(ctx context.Context, sub *domain.AdminSubscription) error
	ListSubscriptions(ctx context.Context) ([]domain.AdminSubscription, error)
	DeleteSubscription(ctx context.Context, id int) error
}

// PushSender delivers one encrypted payload and reports the push service's HTTP status.
type PushSender interface {
	Send(ctx context.Context, sub domain.PushSubscription, payload []byte) (int, error)
}

type Sender interface {
	Send(ctx context.Context, n domain.Notification) domain.DeliverySummary
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
}
