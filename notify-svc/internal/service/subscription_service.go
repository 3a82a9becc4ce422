package service

import (
	"context"
	"strings"

	"bistro-booking/notify-svc/internal/domain"
)

type SubscriptionServiceInterface interface {
	Subscribe(ctx context.Context, userID int, sub domain.PushSubscription) (*domain.AdminSubscription, error)
}

type SubscriptionService struct {
	store SubscriptionStore
}

func NewSubscriptionService(store SubscriptionStore) *SubscriptionService {
	return &SubscriptionService{store: store}
}

// Subscribe replaces any earlier subscription of the same admin.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID int, sub domain.PushSubscription) (*domain.AdminSubscription, error) {
	sub.Endpoint = strings.TrimSpace(sub.Endpoint)
	if !strings.HasPrefix(sub.Endpoint, "https://") || sub.Keys.P256dh == "" || sub.Keys.Auth == "" {
		return nil, domain.ErrInvalidSubscription
	}
	record := &domain.AdminSubscription{UserID: userID, Subscription: sub}
	if err := s.store.UpsertSubscription(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

var _ SubscriptionServiceInterface = (*SubscriptionService)(nil)
