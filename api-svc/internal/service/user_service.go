package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/auth"
)

type UserServiceInterface interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID int) (*domain.User, error)
	IsAdmin(ctx context.Context, userID int) (bool, error)
	CheckAdmin(ctx context.Context, token string) (bool, error)
	ListAdmins(ctx context.Context) ([]domain.User, error)
	CreateAdmin(ctx context.Context, name, email, password string) (*domain.User, error)
}

type UserService struct {
	repo   UserRepository
	tokens *auth.TokenManager
}

func NewUserService(repo UserRepository, tokens *auth.TokenManager) *UserService {
	return &UserService{repo: repo, tokens: tokens}
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (string, error) {
	user, err := s.create(ctx, name, email, password, false)
	if err != nil {
		return "", err
	}
	return s.tokens.Issue(user.ID, auth.RegisterTTL)
}

func (s *UserService) CreateAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	return s.create(ctx, name, email, password, true)
}

func (s *UserService) create(ctx context.Context, name, email, password string, isAdmin bool) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	switch {
	case name == "":
		return nil, domain.ValidationError{Field: "username", Message: "Username is required"}
	case email == "":
		return nil, domain.ValidationError{Field: "email", Message: "Email is required"}
	case password == "":
		return nil, domain.ValidationError{Field: "password", Message: "Password is required"}
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrEmailTaken
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{Name: name, Email: email, PasswordHash: hash, Cart: []int{}, IsAdmin: isAdmin}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", domain.ErrInvalidCredentials
	}
	return s.tokens.Issue(user.ID, auth.LoginTTL)
}

func (s *UserService) Me(ctx context.Context, userID int) (*domain.User, error) {
	return s.repo.GetUser(ctx, userID)
}

// IsAdmin satisfies auth.AdminChecker.
func (s *UserService) IsAdmin(ctx context.Context, userID int) (bool, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("%w: %d", auth.ErrUnknownUser, userID)
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}

// CheckAdmin answers false for anonymous callers; only a bad or expired token is an error.
func (s *UserService) CheckAdmin(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return false, err
	}
	isAdmin, err := s.IsAdmin(ctx, userID)
	if errors.Is(err, auth.ErrUnknownUser) {
		return false, nil
	}
	return isAdmin, err
}

func (s *UserService) ListAdmins(ctx context.Context) ([]domain.User, error) {
	admins, err := s.repo.ListAdmins(ctx)
	if err != nil {
		return nil, err
	}
	if admins == nil {
		admins = []domain.User{}
	}
	return admins, nil
}

var (
	_ UserServiceInterface = (*UserService)(nil)
	_ auth.AdminChecker    = (*UserService)(nil)
)
