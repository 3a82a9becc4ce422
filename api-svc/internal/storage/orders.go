package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bistro-booking/api-svc/internal/domain"

	"github.com/lib/pq"
)

const orderSelect = `
	SELECT o.id, o.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''), o.total_price, o.status,
	       o.stripe_session_id, o.created_at, o.updated_at, o.completed_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.user_id`

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	var completedAt sql.NullTime
	if err := row.Scan(&o.ID, &o.UserID, &o.UserName, &o.UserEmail, &o.TotalPrice, &o.Status,
		&o.StripeSessionID, &o.CreatedAt, &o.UpdatedAt, &completedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		o.CompletedAt = &completedAt.Time
	}
	o.Items = []domain.OrderItem{}
	return &o, nil
}

// loadItems fills in order items. A deleted menu item leaves MenuItem nil.
func loadItems(ctx context.Context, q querier, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]int, 0, len(orders))
	byID := make(map[int]*domain.Order, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
		byID[o.ID] = o
	}

	rows, err := q.QueryContext(ctx, `
		SELECT oi.order_id, oi.menu_item_id, oi.quantity,
		       m.id, m.category, m.title, m.description, m.image, m.price, m.created_at
		FROM order_items oi
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id`, pq.Array(toInt64s(ids)))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID int
		var item domain.OrderItem
		var (
			menuID                              sql.NullInt64
			category, title, description, image sql.NullString
			price                               sql.NullFloat64
			createdAt                           sql.NullTime
		)
		if err := rows.Scan(&orderID, &item.MenuItemID, &item.Quantity,
			&menuID, &category, &title, &description, &image, &price, &createdAt); err != nil {
			return err
		}
		if menuID.Valid {
			item.MenuItem = &domain.MenuItem{
				ID:          int(menuID.Int64),
				Category:    category.String,
				Title:       title.String,
				Description: description.String,
				Image:       image.String,
				Price:       price.Float64,
				CreatedAt:   createdAt.Time,
			}
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

func (r *PostgresRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ptrs []*domain.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		ptrs = append(ptrs, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := loadItems(ctx, r.DB, ptrs); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(ptrs))
	for _, o := range ptrs {
		orders = append(orders, *o)
	}
	return orders, nil
}

func (r *PostgresRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return r.listOrders(ctx, orderSelect+" ORDER BY o.created_at DESC")
}

func (r *PostgresRepository) ListOrdersByUser(ctx context.Context, userID int) ([]domain.Order, error) {
	return r.listOrders(ctx, orderSelect+" WHERE o.user_id = $1 ORDER BY o.created_at DESC", userID)
}

func (r *PostgresRepository) getOrder(ctx context.Context, where string, arg any) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx, orderSelect+" WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := loadItems(ctx, r.DB, []*domain.Order{order}); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	return r.getOrder(ctx, "o.id = $1", id)
}

func (r *PostgresRepository) GetOrderBySession(ctx context.Context, sessionID string) (*domain.Order, error) {
	return r.getOrder(ctx, "o.stripe_session_id = $1", sessionID)
}

func (r *PostgresRepository) UpdateOrderStatus(ctx context.Context, id int, status domain.OrderStatus, completedAt *time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE orders SET status = $1, completed_at = COALESCE($2, completed_at), updated_at = NOW() WHERE id = $3",
		string(status), completedAt, id)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrOrderNotFound)
}

func (r *PostgresRepository) DeleteOrder(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrOrderNotFound)
}

// TopSellingItems aggregates quantities over paid and completed orders, optionally since a point in time.
func (r *PostgresRepository) TopSellingItems(ctx context.Context, since *time.Time, limit int) ([]domain.SalesStat, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT oi.menu_item_id, COALESCE(m.title, ''), SUM(oi.quantity)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		LEFT JOIN menu_items m ON m.id = oi.menu_item_id
		WHERE o.status IN ('paid', 'completed')
		  AND ($1::timestamptz IS NULL OR o.created_at >= $1)
		GROUP BY oi.menu_item_id, m.title
		ORDER BY SUM(oi.quantity) DESC, oi.menu_item_id
		LIMIT $2`, since, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []domain.SalesStat
	for rows.Next() {
		var stat domain.SalesStat
		if err := rows.Scan(&stat.MenuItemID, &stat.Title, &stat.Quantity); err != nil {
			return nil, err
		}
		stats = append(stats, stat)
	}
	return stats, rows.Err()
}

func (s *txStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	err := s.q.QueryRowContext(ctx,
		"INSERT INTO orders (user_id, total_price, status, stripe_session_id) VALUES ($1, $2, $3, $4) RETURNING id, created_at, updated_at",
		order.UserID, order.TotalPrice, string(order.Status), order.StripeSessionID,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return err
	}
	for _, item := range order.Items {
		if _, err := s.q.ExecContext(ctx,
			"INSERT INTO order_items (order_id, menu_item_id, quantity) VALUES ($1, $2, $3)",
			order.ID, item.MenuItemID, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// LockOrderBySession reads the order row FOR UPDATE so concurrent confirmations serialize.
func (s *txStore) LockOrderBySession(ctx context.Context, sessionID string) (*domain.Order, error) {
	var o domain.Order
	var completedAt sql.NullTime
	err := s.q.QueryRowContext(ctx, `
		SELECT id, user_id, total_price, status, stripe_session_id, created_at, updated_at, completed_at
		FROM orders
		WHERE stripe_session_id = $1
		FOR UPDATE`, sessionID).
		Scan(&o.ID, &o.UserID, &o.TotalPrice, &o.Status, &o.StripeSessionID, &o.CreatedAt, &o.UpdatedAt, &completedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if completedAt.Valid {
		o.CompletedAt = &completedAt.Time
	}
	o.Items = []domain.OrderItem{}
	if err := loadItems(ctx, s.q, []*domain.Order{&o}); err != nil {
		return nil, err
	}
	return &o, nil
}

func (s *txStore) SetOrderStatus(ctx context.Context, orderID int, status domain.OrderStatus) error {
	res, err := s.q.ExecContext(ctx, "UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2", string(status), orderID)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrOrderNotFound)
}
