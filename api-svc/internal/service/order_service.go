package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"bistro-booking/api-svc/internal/domain"
)

type OrderServiceInterface interface {
	ListForUser(ctx context.Context, userID int) ([]domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, actor domain.Actor, id int) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error)
	Cancel(ctx context.Context, actor domain.Actor, id int) (*domain.Order, error)
	Delete(ctx context.Context, actor domain.Actor, id int) error
	Export(ctx context.Context, w io.Writer) error
}

type OrderService struct {
	repo     OrderRepository
	notifier *Notifier
	now      func() time.Time
}

func NewOrderService(repo OrderRepository, notifier *Notifier) *OrderService {
	return &OrderService{repo: repo, notifier: notifier, now: time.Now}
}

func (s *OrderService) ListForUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return nonNilOrders(s.repo.ListOrdersByUser(ctx, userID))
}

func (s *OrderService) ListAll(ctx context.Context) ([]domain.Order, error) {
	return nonNilOrders(s.repo.ListOrders(ctx))
}

func nonNilOrders(orders []domain.Order, err error) ([]domain.Order, error) {
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, actor domain.Actor, id int) (*domain.Order, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(order.UserID) {
		return nil, domain.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) UpdateStatus(ctx context.Context, id int, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, domain.ValidationError{Field: "status", Message: fmt.Sprintf("Invalid status %q", status)}
	}
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, order, status)
}

func (s *OrderService) transition(ctx context.Context, order *domain.Order, status domain.OrderStatus) (*domain.Order, error) {
	if !order.Status.CanTransition(status) {
		return nil, domain.ErrInvalidTransition
	}
	var completedAt *time.Time
	if status == domain.OrderCompleted {
		at := s.now().UTC()
		completedAt = &at
	}
	if err := s.repo.UpdateOrderStatus(ctx, order.ID, status, completedAt); err != nil {
		return nil, err
	}
	order.Status = status
	order.CompletedAt = completedAt
	return order, nil
}

func (s *OrderService) Cancel(ctx context.Context, actor domain.Actor, id int) (*domain.Order, error) {
	order, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	order, err = s.transition(ctx, order, domain.OrderCancelled)
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, domain.EventOrderCancelled, "Order Cancelled",
		fmt.Sprintf("Order %d was cancelled", order.ID), order.ID)
	return order, nil
}

func (s *OrderService) Delete(ctx context.Context, actor domain.Actor, id int) error {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return err
	}
	return s.repo.DeleteOrder(ctx, id)
}

func (s *OrderService) Export(ctx context.Context, w io.Writer) error {
	orders, err := s.repo.ListOrders(ctx)
	if err != nil {
		return err
	}
	return WriteOrdersWorkbook(w, orders)
}

var _ OrderServiceInterface = (*OrderService)(nil)
