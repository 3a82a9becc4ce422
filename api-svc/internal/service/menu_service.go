package service

import (
	"context"
	"strings"

	"bistro-booking/api-svc/internal/domain"
)

type MenuServiceInterface interface {
	Create(ctx context.Context, item *domain.MenuItem) error
	List(ctx context.Context) ([]domain.MenuItem, error)
	Get(ctx context.Context, id int) (*domain.MenuItem, error)
	Update(ctx context.Context, item *domain.MenuItem) error
	Delete(ctx context.Context, id int) error
}

type MenuService struct {
	repo MenuRepository
}

func NewMenuService(repo MenuRepository) *MenuService {
	return &MenuService{repo: repo}
}

func validateMenuItem(item *domain.MenuItem) error {
	item.Title = strings.TrimSpace(item.Title)
	item.Category = strings.TrimSpace(item.Category)
	item.Image = strings.TrimSpace(item.Image)
	switch {
	case item.Category == "":
		return domain.ValidationError{Field: "category", Message: "Category is required"}
	case item.Title == "":
		return domain.ValidationError{Field: "title", Message: "Title is required"}
	case item.Image == "":
		return domain.ValidationError{Field: "image", Message: "Image is required"}
	case item.Price < 1:
		return domain.ValidationError{Field: "price", Message: "Price must be at least 1"}
	}
	return nil
}

func (s *MenuService) Create(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.repo.CreateMenuItem(ctx, item)
}

func (s *MenuService) List(ctx context.Context) ([]domain.MenuItem, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.MenuItem{}
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id int) (*domain.MenuItem, error) {
	return s.repo.GetMenuItem(ctx, id)
}

func (s *MenuService) Update(ctx context.Context, item *domain.MenuItem) error {
	if err := validateMenuItem(item); err != nil {
		return err
	}
	return s.repo.UpdateMenuItem(ctx, item)
}

func (s *MenuService) Delete(ctx context.Context, id int) error {
	return s.repo.DeleteMenuItem(ctx, id)
}

var _ MenuServiceInterface = (*MenuService)(nil)
