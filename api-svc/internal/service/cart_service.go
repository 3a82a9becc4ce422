package service

import (
	"context"
	"fmt"

	"bistro-booking/api-svc/internal/domain"
)

type CartServiceInterface interface {
	Add(ctx context.Context, userID, menuItemID, quantity int) ([]int, error)
	Remove(ctx context.Context, userID, menuItemID, quantity int) ([]int, error)
	List(ctx context.Context, userID int) ([]domain.MenuItem, error)
}

const (
	// MaxCartQuantity caps how many copies one add may append.
	MaxCartQuantity = 100
	// MaxCartSize caps the whole cart array.
	MaxCartSize = 500
)

// CartService keeps the cart as a flat list of menu item ids where repeats count as quantity.
type CartService struct {
	users UserRepository
	menu  MenuRepository
}

func NewCartService(users UserRepository, menu MenuRepository) *CartService {
	return &CartService{users: users, menu: menu}
}

func (s *CartService) Add(ctx context.Context, userID, menuItemID, quantity int) ([]int, error) {
	if quantity <= 0 {
		quantity = 1
	}
	if quantity > MaxCartQuantity {
		return nil, domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("Quantity must be at most %d", MaxCartQuantity)}
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Cart)+quantity > MaxCartSize {
		return nil, domain.ValidationError{Field: "quantity", Message: fmt.Sprintf("Cart cannot hold more than %d items", MaxCartSize)}
	}
	if _, err := s.menu.GetMenuItem(ctx, menuItemID); err != nil {
		return nil, err
	}

	cart := user.Cart
	for i := 0; i < quantity; i++ {
		cart = append(cart, menuItemID)
	}
	if err := s.users.SaveCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, userID, menuItemID, quantity int) ([]int, error) {
	if quantity <= 0 {
		quantity = 1
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	cart := removeOccurrences(user.Cart, menuItemID, quantity)
	if err := s.users.SaveCart(ctx, userID, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func removeOccurrences(cart []int, id, n int) []int {
	kept := make([]int, 0, len(cart))
	for _, itemID := range cart {
		if itemID == id && n > 0 {
			n--
			continue
		}
		kept = append(kept, itemID)
	}
	return kept
}

func (s *CartService) List(ctx context.Context, userID int) ([]domain.MenuItem, error) {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, user.Cart)
}

// resolve maps cart ids to menu items in cart order, skipping deleted items.
func (s *CartService) resolve(ctx context.Context, cart []int) ([]domain.MenuItem, error) {
	items := []domain.MenuItem{}
	if len(cart) == 0 {
		return items, nil
	}
	byID, err := s.menu.GetMenuItems(ctx, cart)
	if err != nil {
		return nil, err
	}
	for _, id := range cart {
		if item, ok := byID[id]; ok {
			items = append(items, item)
		}
	}
	return items, nil
}

// groupCart collapses repeated ids into order items, keeping first-seen order.
func groupCart(items []domain.MenuItem) []domain.OrderItem {
	var grouped []domain.OrderItem
	index := map[int]int{}
	for _, item := range items {
		if i, ok := index[item.ID]; ok {
			grouped[i].Quantity++
			continue
		}
		index[item.ID] = len(grouped)
		grouped = append(grouped, domain.OrderItem{MenuItemID: item.ID, Quantity: 1})
	}
	return grouped
}

var _ CartServiceInterface = (*CartService)(nil)
