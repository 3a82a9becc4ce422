package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bistro-booking/api-svc/internal/domain"
	"bistro-booking/api-svc/internal/service"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) RunInTx(ctx context.Context, fn func(store service.CheckoutStore) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := fn(&txStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txStore struct {
	q querier
}

func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return pqErr.Constraint, true
	}
	return "", false
}

func expectAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

func toInt64s(ids []int) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[i] = int64(id)
	}
	return out
}

func toInts(ids []int64) []int {
	out := make([]int, len(ids))
	for i, id := range ids {
		out[i] = int(id)
	}
	return out
}

const userColumns = "id, name, email, password_hash, cart, is_admin, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var cart []int64
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, pq.Array(&cart), &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Cart = toInts(cart)
	return &u, nil
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *domain.User) error {
	err := r.DB.QueryRowContext(ctx,
		"INSERT INTO users (name, email, password_hash, cart, is_admin) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		user.Name, user.Email, user.PasswordHash, pq.Array(toInt64s(user.Cart)), user.IsAdmin,
	).Scan(&user.ID, &user.CreatedAt)
	if _, dup := uniqueConstraint(err); dup {
		return domain.ErrEmailTaken
	}
	return err
}

func (r *PostgresRepository) getUser(ctx context.Context, where string, arg any) (*domain.User, error) {
	user, err := scanUser(r.DB.QueryRowContext(ctx, "SELECT "+userColumns+" FROM users WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	return user, err
}

func (r *PostgresRepository) GetUser(ctx context.Context, id int) (*domain.User, error) {
	return r.getUser(ctx, "id = $1", id)
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "email = $1", email)
}

func (r *PostgresRepository) ListAdmins(ctx context.Context) ([]domain.User, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+userColumns+" FROM users WHERE is_admin ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		admins = append(admins, *user)
	}
	return admins, rows.Err()
}

func (r *PostgresRepository) SaveCart(ctx context.Context, userID int, cart []int) error {
	res, err := r.DB.ExecContext(ctx, "UPDATE users SET cart = $1 WHERE id = $2", pq.Array(toInt64s(cart)), userID)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrUserNotFound)
}

const menuColumns = "id, category, title, description, image, price, created_at"

func scanMenuItem(row rowScanner) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := row.Scan(&item.ID, &item.Category, &item.Title, &item.Description, &item.Image, &item.Price, &item.CreatedAt); err != nil {
		return nil, err
	}
	return &item, nil
}

func getMenuItem(ctx context.Context, q querier, id int) (*domain.MenuItem, error) {
	item, err := scanMenuItem(q.QueryRowContext(ctx, "SELECT "+menuColumns+" FROM menu_items WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMenuItemNotFound
	}
	return item, err
}

func (r *PostgresRepository) CreateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	return r.DB.QueryRowContext(ctx,
		"INSERT INTO menu_items (category, title, description, image, price) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at",
		item.Category, item.Title, item.Description, item.Image, item.Price,
	).Scan(&item.ID, &item.CreatedAt)
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+menuColumns+" FROM menu_items ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *PostgresRepository) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return getMenuItem(ctx, r.DB, id)
}

func (r *PostgresRepository) GetMenuItems(ctx context.Context, ids []int) (map[int]domain.MenuItem, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+menuColumns+" FROM menu_items WHERE id = ANY($1)", pq.Array(toInt64s(ids)))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int]domain.MenuItem, len(ids))
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, err
		}
		items[item.ID] = *item
	}
	return items, rows.Err()
}

func (r *PostgresRepository) UpdateMenuItem(ctx context.Context, item *domain.MenuItem) error {
	err := r.DB.QueryRowContext(ctx,
		"UPDATE menu_items SET category=$1, title=$2, description=$3, image=$4, price=$5 WHERE id=$6 RETURNING created_at",
		item.Category, item.Title, item.Description, item.Image, item.Price, item.ID,
	).Scan(&item.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrMenuItemNotFound
	}
	return err
}

func (r *PostgresRepository) DeleteMenuItem(ctx context.Context, id int) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM menu_items WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrMenuItemNotFound)
}

func (s *txStore) GetMenuItem(ctx context.Context, id int) (*domain.MenuItem, error) {
	return getMenuItem(ctx, s.q, id)
}

var (
	_ service.UserRepository        = (*PostgresRepository)(nil)
	_ service.MenuRepository        = (*PostgresRepository)(nil)
	_ service.OrderRepository       = (*PostgresRepository)(nil)
	_ service.ReservationRepository = (*PostgresRepository)(nil)
	_ service.Transactor            = (*PostgresRepository)(nil)
	_ service.CheckoutStore         = (*txStore)(nil)
)
