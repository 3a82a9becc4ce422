package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"bistro-booking/auth"
	"bistro-booking/notify-svc/internal/domain"
	"bistro-booking/notify-svc/internal/service"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS admin_subscriptions (
		id SERIAL PRIMARY KEY,
		user_id INTEGER NOT NULL UNIQUE,
		subscription JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

type Store struct {
	DB *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

func (s *Store) UpsertSubscription(ctx context.Context, sub *domain.AdminSubscription) error {
	payload, err := json.Marshal(sub.Subscription)
	if err != nil {
		return err
	}
	return s.DB.QueryRowContext(ctx, `
		INSERT INTO admin_subscriptions (user_id, subscription) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET subscription = EXCLUDED.subscription
		RETURNING id, created_at`, sub.UserID, payload,
	).Scan(&sub.ID, &sub.CreatedAt)
}

func (s *Store) ListSubscriptions(ctx context.Context) ([]domain.AdminSubscription, error) {
	rows, err := s.DB.QueryContext(ctx, "SELECT id, user_id, subscription, created_at FROM admin_subscriptions ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []domain.AdminSubscription
	for rows.Next() {
		var sub domain.AdminSubscription
		var raw []byte
		if err := rows.Scan(&sub.ID, &sub.UserID, &raw, &sub.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &sub.Subscription); err != nil {
			return nil, fmt.Errorf("decode subscription %d: %w", sub.ID, err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}

func (s *Store) DeleteSubscription(ctx context.Context, id int) error {
	res, err := s.DB.ExecContext(ctx, "DELETE FROM admin_subscriptions WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrSubscriptionNotFound
	}
	return nil
}

// IsAdmin reads the admin flag from the users table owned by api-svc.
func (s *Store) IsAdmin(ctx context.Context, userID int) (bool, error) {
	var isAdmin bool
	err := s.DB.QueryRowContext(ctx, "SELECT is_admin FROM users WHERE id = $1", userID).Scan(&isAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return false, auth.ErrUnknownUser
	}
	return isAdmin, err
}

var (
	_ service.SubscriptionStore = (*Store)(nil)
	_ auth.AdminChecker         = (*Store)(nil)
)
