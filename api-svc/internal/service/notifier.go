package service

import (
	"context"
	"log"
	"sync"
	"time"

	"bistro-booking/api-svc/internal/domain"

	"github.com/google/uuid"
)

// DefaultPublishTimeout bounds a single background publish.
const DefaultPublishTimeout = 10 * time.Second

// Notifier turns domain changes into admin events. Events are published in the background;
// failures are logged and never surface to the caller.
type Notifier struct {
	publisher EventPublisher
	now       func() time.Time
	timeout   time.Duration
	inflight  sync.WaitGroup
}

func NewNotifier(publisher EventPublisher) *Notifier {
	return &Notifier{publisher: publisher, now: time.Now, timeout: DefaultPublishTimeout}
}

// Notify returns immediately. The publish outlives the caller's context so a disconnected
// client does not drop the event.
func (n *Notifier) Notify(ctx context.Context, eventType, title, body string, entityID int) {
	if n == nil || n.publisher == nil {
		return
	}
	event := domain.AdminEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		Title:      title,
		Body:       body,
		EntityID:   entityID,
		OccurredAt: n.now().UTC(),
	}

	n.inflight.Add(1)
	go func() {
		defer n.inflight.Done()
		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
		defer cancel()
		if err := n.publisher.PublishAdminEvent(pubCtx, event); err != nil {
			log.Printf("WARNING: failed to publish %s event for %d: %v", eventType, entityID, err)
		}
	}()
}

// Wait blocks until every started publish has finished.
func (n *Notifier) Wait() {
	if n == nil {
		return
	}
	n.inflight.Wait()
}
