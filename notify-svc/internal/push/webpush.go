package push

import (
	"context"
	"fmt"
	"strings"

	"bistro-booking/notify-svc/internal/domain"
	"bistro-booking/notify-svc/internal/service"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// VAPIDConfig identifies this server to push services.
type VAPIDConfig struct {
	Subject    string
	PublicKey  string
	PrivateKey string
	TTL        int
}

type WebPushSender struct {
	Config VAPIDConfig
	Client webpush.HTTPClient
}

func NewWebPushSender(cfg VAPIDConfig) *WebPushSender {
	return &WebPushSender{Config: cfg}
}

func (s *WebPushSender) Send(ctx context.Context, sub domain.PushSubscription, payload []byte) (int, error) {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     webpush.Keys{P256dh: sub.Keys.P256dh, Auth: sub.Keys.Auth},
	}
	// webpush-go adds the mailto: scheme to non-https subscribers itself.
	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, &webpush.Options{
		HTTPClient:      s.Client,
		Subscriber:      strings.TrimPrefix(s.Config.Subject, "mailto:"),
		VAPIDPublicKey:  s.Config.PublicKey,
		VAPIDPrivateKey: s.Config.PrivateKey,
		TTL:             s.Config.TTL,
	})
	if err != nil {
		return 0, fmt.Errorf("send push: %w", err)
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

var _ service.PushSender = (*WebPushSender)(nil)
