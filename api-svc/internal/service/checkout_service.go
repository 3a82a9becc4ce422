package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/payment"
)

// ReservationFee is the flat amount, in cents, charged to hold a table.
const ReservationFee int64 = 2000

type CheckoutConfig struct {
	FrontendURL    string
	ReservationFee int64
}

type PaymentResult struct {
	OrderID          int
	AlreadyProcessed bool
}

type ReservationPaymentResult struct {
	ReservationID    int
	AlreadyProcessed bool
}

type CheckoutServiceInterface interface {
	CreateCheckoutSession(ctx context.Context, userID int) (*payment.Session, error)
	HandleSuccessfulPayment(ctx context.Context, sessionID string) (*PaymentResult, error)
	CancelPendingOrder(ctx context.Context, sessionID string) error
	CreateReservationCheckoutSession(ctx context.Context, userID int, req domain.ReservationRequest) (*payment.Session, error)
	HandleSuccessfulReservationPayment(ctx context.Context, sessionID string) (*ReservationPaymentResult, error)
}

type CheckoutService struct {
	cart         *CartService
	users        UserRepository
	orders       OrderRepository
	tx           Transactor
	gateway      payment.Gateway
	markers      PaymentMarkers
	sales        SalesCounter
	notifier     *Notifier
	reservations ReservationServiceInterface
	cfg          CheckoutConfig
}

type CheckoutDeps struct {
	Users        UserRepository
	Menu         MenuRepository
	Orders       OrderRepository
	Tx           Transactor
	Gateway      payment.Gateway
	Markers      PaymentMarkers
	Sales        SalesCounter
	Notifier     *Notifier
	Reservations ReservationServiceInterface
}

func NewCheckoutService(deps CheckoutDeps, cfg CheckoutConfig) *CheckoutService {
	if cfg.ReservationFee <= 0 {
		cfg.ReservationFee = ReservationFee
	}
	cfg.FrontendURL = strings.TrimRight(cfg.FrontendURL, "/")
	return &CheckoutService{
		cart:         NewCartService(deps.Users, deps.Menu),
		users:        deps.Users,
		orders:       deps.Orders,
		tx:           deps.Tx,
		gateway:      deps.Gateway,
		markers:      deps.Markers,
		sales:        deps.Sales,
		notifier:     deps.Notifier,
		reservations: deps.Reservations,
		cfg:          cfg,
	}
}

// errAlreadyProcessed rolls back the confirmation transaction without failing the request.
var errAlreadyProcessed = errors.New("order already processed")

func (s *CheckoutService) CreateCheckoutSession(ctx context.Context, userID int) (*payment.Session, error) {
	items, err := s.cart.List(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrCartEmpty
	}
	if err != nil {
		return nil, err
	}
	groups := groupCart(items)
	if len(groups) == 0 {
		return nil, domain.ErrCartEmpty
	}

	var session *payment.Session
	err = s.tx.RunInTx(ctx, func(store CheckoutStore) error {
		lineItems := make([]payment.LineItem, 0, len(groups))
		for _, group := range groups {
			item, err := store.GetMenuItem(ctx, group.MenuItemID)
			if err != nil {
				return fmt.Errorf("load menu item %d: %w", group.MenuItemID, err)
			}
			lineItems = append(lineItems, payment.LineItem{
				Name:       item.Title,
				UnitAmount: payment.ToMinorUnits(item.Price),
				Quantity:   int64(group.Quantity),
			})
		}

		created, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
			LineItems:         lineItems,
			SuccessURL:        s.cfg.FrontendURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
			CancelURL:         s.cfg.FrontendURL + "/checkout/cancel?session_id={CHECKOUT_SESSION_ID}",
			ClientReferenceID: strconv.Itoa(userID),
		})
		if err != nil {
			return fmt.Errorf("create payment session: %w", err)
		}
		session = created

		order := &domain.Order{
			UserID:          userID,
			Items:           groups,
			TotalPrice:      payment.FromMinorUnits(created.AmountTotal),
			Status:          domain.OrderPending,
			StripeSessionID: created.ID,
		}
		if err := store.CreateOrder(ctx, order); err != nil {
			return fmt.Errorf("save pending order: %w", err)
		}
		return nil
	})
	if err != nil {
		if session != nil {
			log.Printf("WARNING: payment session %s has no order after rollback: %v", session.ID, err)
		}
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) HandleSuccessfulPayment(ctx context.Context, sessionID string) (*PaymentResult, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}

	if s.markers != nil {
		paid, err := s.markers.IsPaid(ctx, sessionID)
		if err != nil {
			log.Printf("WARNING: payment marker lookup for %s: %v", sessionID, err)
		}
		if paid {
			if order, err := s.orders.GetOrderBySession(ctx, sessionID); err == nil {
				log.Printf("[api-svc] order %d already processed", order.ID)
				return &PaymentResult{OrderID: order.ID, AlreadyProcessed: true}, nil
			}
		}
	}

	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment session: %w", err)
	}
	if !session.Paid() {
		return nil, domain.ErrPaymentNotCompleted
	}
	if session.ClientReferenceID == "" {
		return nil, domain.ErrMissingClientRef
	}

	var order *domain.Order
	err = s.tx.RunInTx(ctx, func(store CheckoutStore) error {
		locked, err := store.LockOrderBySession(ctx, sessionID)
		if err != nil {
			return err
		}
		order = locked
		if locked.Status != domain.OrderPending {
			return errAlreadyProcessed
		}
		if err := store.SetOrderStatus(ctx, locked.ID, domain.OrderPaid); err != nil {
			return err
		}
		locked.Status = domain.OrderPaid
		return nil
	})
	if errors.Is(err, errAlreadyProcessed) {
		log.Printf("[api-svc] order %d already processed", order.ID)
		return &PaymentResult{OrderID: order.ID, AlreadyProcessed: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.afterOrderPaid(ctx, order)
	return &PaymentResult{OrderID: order.ID}, nil
}

func (s *CheckoutService) afterOrderPaid(ctx context.Context, order *domain.Order) {
	if s.markers != nil {
		if err := s.markers.MarkPaid(ctx, order.StripeSessionID); err != nil {
			log.Printf("WARNING: failed to set payment marker for order %d: %v", order.ID, err)
		}
	}
	if s.sales != nil {
		if err := s.sales.RecordSale(ctx, order.Items); err != nil {
			log.Printf("WARNING: failed to record sales for order %d: %v", order.ID, err)
		}
	}
	s.notifier.Notify(ctx, domain.EventOrderPaid, "New Order",
		fmt.Sprintf("Order %d paid: %.2f", order.ID, order.TotalPrice), order.ID)
}

// CancelPendingOrder drops the order of an abandoned checkout. Paid orders are left alone.
func (s *CheckoutService) CancelPendingOrder(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrMissingSessionID
	}
	order, err := s.orders.GetOrderBySession(ctx, sessionID)
	if err != nil {
		return err
	}
	if order.Status != domain.OrderPending {
		return domain.ErrInvalidTransition
	}
	return s.orders.DeleteOrder(ctx, order.ID)
}

func (s *CheckoutService) CreateReservationCheckoutSession(ctx context.Context, userID int, req domain.ReservationRequest) (*payment.Session, error) {
	req, err := s.reservations.CheckAvailability(ctx, req)
	if err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateSession(ctx, payment.SessionRequest{
		LineItems: []payment.LineItem{{
			Name:        fmt.Sprintf("Table Reservation - Table %d", req.TableNumber),
			Description: fmt.Sprintf("Date: %s, Time: %s, Guests: %d", req.Date, req.BookingTime, req.GuestCount),
			UnitAmount:  s.cfg.ReservationFee,
			Quantity:    1,
		}},
		SuccessURL:        s.cfg.FrontendURL + "/reservation/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:         s.cfg.FrontendURL + "/reservation",
		ClientReferenceID: strconv.Itoa(userID),
		Metadata: map[string]string{
			"tableNumber": strconv.Itoa(req.TableNumber),
			"date":        req.Date,
			"bookingTime": req.BookingTime,
			"guestCount":  strconv.Itoa(req.GuestCount),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create payment session: %w", err)
	}
	return session, nil
}

func (s *CheckoutService) HandleSuccessfulReservationPayment(ctx context.Context, sessionID string) (*ReservationPaymentResult, error) {
	if sessionID == "" {
		return nil, domain.ErrMissingSessionID
	}
	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment session: %w", err)
	}
	if !session.Paid() {
		return nil, domain.ErrPaymentNotCompleted
	}

	userID, err := strconv.Atoi(session.ClientReferenceID)
	if err != nil || userID <= 0 {
		return nil, domain.ErrMissingClientRef
	}

	existing, err := s.reservations.GetBySession(ctx, sessionID)
	if err == nil {
		if existing.UserID != userID {
			log.Printf("WARNING: session %s is held by reservation %d of user %d, paid by user %d",
				sessionID, existing.ID, existing.UserID, userID)
			return nil, domain.ErrSessionOwnerMismatch
		}
		log.Printf("[api-svc] reservation %d already processed", existing.ID)
		return &ReservationPaymentResult{ReservationID: existing.ID, AlreadyProcessed: true}, nil
	}
	if !errors.Is(err, domain.ErrReservationNotFound) {
		return nil, err
	}
	req, err := reservationFromMetadata(session.Metadata)
	if err != nil {
		return nil, err
	}
	req.StripeSessionID = sessionID

	res, err := s.reservations.Create(ctx, userID, req)
	if err != nil {
		return nil, err
	}
	return &ReservationPaymentResult{ReservationID: res.ID}, nil
}

func reservationFromMetadata(meta map[string]string) (domain.ReservationRequest, error) {
	table, err := strconv.Atoi(meta["tableNumber"])
	if err != nil {
		return domain.ReservationRequest{}, domain.ValidationError{Field: "tableNumber", Message: "Invalid reservation metadata"}
	}
	guests, err := strconv.Atoi(meta["guestCount"])
	if err != nil {
		return domain.ReservationRequest{}, domain.ValidationError{Field: "guestCount", Message: "Invalid reservation metadata"}
	}
	return domain.ReservationRequest{
		TableNumber: table,
		GuestCount:  guests,
		Date:        meta["date"],
		BookingTime: meta["bookingTime"],
	}, nil
}

var _ CheckoutServiceInterface = (*CheckoutService)(nil)
