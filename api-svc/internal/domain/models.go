package domain

import "time"

type User struct {
	ID           int       `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Cart         []int     `json:"cart,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type MenuItem struct {
	ID          int       `json:"id"`
	Category    string    `json:"category"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Price       float64   `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus]map[OrderStatus]bool{
	OrderPending:   {OrderPaid: true, OrderCancelled: true},
	OrderPaid:      {OrderCompleted: true, OrderCancelled: true},
	OrderCompleted: {},
	OrderCancelled: {},
}

func (s OrderStatus) Valid() bool {
	_, ok := orderTransitions[s]
	return ok
}

func (s OrderStatus) CanTransition(to OrderStatus) bool {
	return orderTransitions[s][to]
}

type Order struct {
	ID              int         `json:"id"`
	UserID          int         `json:"user"`
	UserName        string      `json:"userName,omitempty"`
	UserEmail       string      `json:"userEmail,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalPrice      float64     `json:"totalPrice"`
	Status          OrderStatus `json:"status"`
	StripeSessionID string      `json:"stripeSessionId"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	CompletedAt     *time.Time  `json:"completedAt"`
}

// OrderItem keeps the menu item by reference; MenuItem is nil once the item is deleted.
type OrderItem struct {
	MenuItemID int       `json:"menuItemId"`
	MenuItem   *MenuItem `json:"menuItem"`
	Quantity   int       `json:"quantity"`
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

const (
	MinTableNumber = 1
	MaxTableNumber = 15
	MinGuestCount  = 1
	MaxGuestCount  = 8
)

type Reservation struct {
	ID              int               `json:"id"`
	UserID          int               `json:"user"`
	UserName        string            `json:"userName,omitempty"`
	UserEmail       string            `json:"userEmail,omitempty"`
	TableNumber     int               `json:"tableNumber"`
	GuestCount      int               `json:"guestCount"`
	Date            string            `json:"date"`
	BookingTime     string            `json:"bookingTime"`
	Status          ReservationStatus `json:"status"`
	StripeSessionID string            `json:"stripeSessionId,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
	CompletedAt     *time.Time        `json:"completedAt"`
}

type ReservationRequest struct {
	TableNumber int    `json:"tableNumber"`
	Date        string `json:"date"`
	BookingTime string `json:"bookingTime"`
	GuestCount  int    `json:"guestCount"`
	// StripeSessionID is only set by payment confirmation, never decoded from a client body.
	StripeSessionID string `json:"-"`
}

type SalesStat struct {
	MenuItemID int     `json:"menuItemId"`
	Title      string  `json:"title"`
	Quantity   float64 `json:"quantity"`
}
