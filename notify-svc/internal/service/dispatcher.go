package service

import (
	"context"
	"encoding/json"
	"log"
	"sync/atomic"

	"bistro-booking/notify-svc/internal/domain"

	"golang.org/x/sync/errgroup"
)

const DefaultConcurrency = 8

// Dispatcher fans a notification out to every admin subscription. A subscription whose
// delivery fails is deleted; nothing is retried.
type Dispatcher struct {
	store       SubscriptionStore
	sender      PushSender
	concurrency int
}

func NewDispatcher(store SubscriptionStore, sender PushSender, concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Dispatcher{store: store, sender: sender, concurrency: concurrency}
}

func (d *Dispatcher) Send(ctx context.Context, n domain.Notification) domain.DeliverySummary {
	var summary domain.DeliverySummary

	payload, err := json.Marshal(n)
	if err != nil {
		log.Printf("ERROR: encode notification: %v", err)
		return summary
	}
	subs, err := d.store.ListSubscriptions(ctx)
	if err != nil {
		log.Printf("ERROR: load subscriptions: %v", err)
		return summary
	}

	var delivered, pruned int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for _, sub := range subs {
		sub := sub
		g.Go(func() error {
			if d.deliver(gctx, sub, payload) {
				atomic.AddInt64(&delivered, 1)
				return nil
			}
			if err := d.store.DeleteSubscription(gctx, sub.ID); err != nil {
				log.Printf("WARNING: prune subscription %d: %v", sub.ID, err)
				return nil
			}
			atomic.AddInt64(&pruned, 1)
			return nil
		})
	}
	g.Wait()

	summary.Attempted = len(subs)
	summary.Delivered = int(delivered)
	summary.Pruned = int(pruned)
	log.Printf("notification %q: %d attempted, %d delivered, %d pruned",
		n.Title, summary.Attempted, summary.Delivered, summary.Pruned)
	return summary
}

func (d *Dispatcher) deliver(ctx context.Context, sub domain.AdminSubscription, payload []byte) bool {
	status, err := d.sender.Send(ctx, sub.Subscription, payload)
	if err != nil {
		log.Printf("WARNING: push to admin %d failed: %v", sub.UserID, err)
		return false
	}
	if status < 200 || status > 299 {
		log.Printf("WARNING: push to admin %d rejected with status %d", sub.UserID, status)
		return false
	}
	return true
}

var _ Sender = (*Dispatcher)(nil)
