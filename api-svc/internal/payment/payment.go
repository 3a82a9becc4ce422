package payment

import (
	"context"
	"math"
)

// StatusPaid is the payment_status of a checkout session whose charge succeeded.
const StatusPaid = "paid"

type LineItem struct {
	Name        string
	Description string
	UnitAmount  int64
	Quantity    int64
}

type SessionRequest struct {
	LineItems         []LineItem
	SuccessURL        string
	CancelURL         string
	ClientReferenceID string
	Metadata          map[string]string
}

type Session struct {
	ID                string
	URL               string
	PaymentStatus     string
	ClientReferenceID string
	AmountTotal       int64
	Metadata          map[string]string
}

func (s *Session) Paid() bool {
	return s != nil && s.PaymentStatus == StatusPaid
}

// Gateway creates and looks up hosted checkout sessions.
type Gateway interface {
	CreateSession(ctx context.Context, req SessionRequest) (*Session, error)
	GetSession(ctx context.Context, sessionID string) (*Session, error)
}

// ToMinorUnits converts a decimal price to cents.
func ToMinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
