package domain

import "errors"

var (
	ErrUnauthenticated      = errors.New("User not authenticated")
	ErrForbidden            = errors.New("Access denied")
	ErrUserNotFound         = errors.New("User not found")
	ErrEmailTaken           = errors.New("User already exists")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrMenuItemNotFound     = errors.New("Menu item not found")
	ErrCartEmpty            = errors.New("Cart is empty")
	ErrOrderNotFound        = errors.New("Order not found")
	ErrReservationNotFound  = errors.New("Reservation not found")
	ErrTableAlreadyReserved = errors.New("This table is already reserved for the selected time")
	ErrInvalidTransition    = errors.New("Status change not allowed")
	ErrMissingSessionID     = errors.New("No session ID provided")
	ErrPaymentNotCompleted  = errors.New("Payment not successful")
	ErrMissingClientRef     = errors.New("No user ID found in payment session")
	ErrSessionOwnerMismatch = errors.New("Payment session belongs to another user")
)

// ValidationError is returned for malformed or out-of-range input.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// Actor is the authenticated caller of an owner-or-admin operation.
type Actor struct {
	UserID  int
	IsAdmin bool
}

func (a Actor) CanAccess(ownerID int) bool {
	return a.IsAdmin || (a.UserID > 0 && a.UserID == ownerID)
}
