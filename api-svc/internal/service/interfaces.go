package service

import (
	"context"
	"time"

	"bistro-booking/api-svc/internal/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id int) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
	SaveCart(ctx context.Context, userID int, cart []int) error
}

type MenuRepository interface {
	CreateMenuItem(ctx context.Context, item *domain.MenuItem) error
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	GetMenuItems(ctx context.Context, ids []int) (map[int]domain.MenuItem, error)
	UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error
	DeleteMenuItem(ctx context.Context, id int) error
}

type OrderRepository interface {
	ListOrders(ctx context.Context) ([]domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
	GetOrderBySession(ctx context.Context, sessionID string) (*domain.Order, error)
	UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus, completedAt *time.Time) error
	DeleteOrder(ctx context.Context, id int) error
	TopSellingItems(ctx context.Context, since *time.Time, limit int) ([]domain.SalesStat, error)
}

// CheckoutStore is the transaction-scoped view used while an order is created or confirmed.
type CheckoutStore interface {
	GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error)
	CreateOrder(ctx context.Context, order *domain.Order) error
	LockOrderBySession(ctx context.Context, sessionID string) (*domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID int, status domain.OrderStatus) error
}

// Transactor runs fn in a single database transaction, committing only when fn returns nil.
type Transactor interface {
	RunInTx(ctx context.Context, fn func(store CheckoutStore) error) error
}

type ReservationRepository interface {
	CreateReservation(ctx context.Context, res *domain.Reservation) error
	GetReservation(ctx context.Context, id int) (*domain.Reservation, error)
	GetReservationBySession(ctx context.Context, sessionID string) (*domain.Reservation, error)
	// FindConfirmedReservation returns nil when no active, paid reservation holds the slot.
	FindConfirmedReservation(ctx context.Context, tableNumber int, date, bookingTime string, excludeID int) (*domain.Reservation, error)
	ListBookedTables(ctx context.Context, date, bookingTime string) ([]domain.Reservation, error)
	ListReservations(ctx context.Context) ([]domain.Reservation, error)
	ListReservationsByUser(ctx context.Context, userID int) ([]domain.Reservation, error)
	UpdateReservation(ctx context.Context, res *domain.Reservation) error
	SetReservationStatus(ctx context.Context, id int, status domain.ReservationStatus, completedAt *time.Time) error
}

type PaymentMarkers interface {
	IsPaid(ctx context.Context, sessionID string) (bool, error)
	MarkPaid(ctx context.Context, sessionID string) error
}

type SalesCounter interface {
	RecordSale(ctx context.Context, items []domain.OrderItem) error
	// Top reads the daily counter for day (YYYY-MM-DD) or the all-time counter when day is empty.
	Top(ctx context.Context, day string, limit int) ([]domain.SalesStat, error)
}

type EventPublisher interface {
	PublishAdminEvent(ctx context.Context, event domain.AdminEvent) error
}
