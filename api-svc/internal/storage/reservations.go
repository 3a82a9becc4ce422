package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"bistro-booking/api-svc/internal/domain"
)

const reservationSelect = `
	SELECT r.id, r.user_id, COALESCE(u.name, ''), COALESCE(u.email, ''), r.table_number, r.guest_count,
	       to_char(r.date, 'YYYY-MM-DD'), r.booking_time, r.status, COALESCE(r.stripe_session_id, ''),
	       r.created_at, r.updated_at, r.completed_at
	FROM reservations r
	LEFT JOIN users u ON u.id = r.user_id`

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var completedAt sql.NullTime
	if err := row.Scan(&res.ID, &res.UserID, &res.UserName, &res.UserEmail, &res.TableNumber, &res.GuestCount,
		&res.Date, &res.BookingTime, &res.Status, &res.StripeSessionID,
		&res.CreatedAt, &res.UpdatedAt, &completedAt); err != nil {
		return nil, err
	}
	if completedAt.Valid {
		res.CompletedAt = &completedAt.Time
	}
	return &res, nil
}

// slotConflict maps a unique violation on the confirmed-slot index to ErrTableAlreadyReserved.
func slotConflict(err error) error {
	constraint, dup := uniqueConstraint(err)
	switch {
	case !dup:
		return err
	case constraint == confirmedSlotIndex:
		return domain.ErrTableAlreadyReserved
	default:
		return fmt.Errorf("reservation already recorded: %w", err)
	}
}

func (r *PostgresRepository) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO reservations (user_id, table_number, guest_count, date, booking_time, status, stripe_session_id)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
		RETURNING id, created_at, updated_at`,
		res.UserID, res.TableNumber, res.GuestCount, res.Date, res.BookingTime, string(res.Status), res.StripeSessionID,
	).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return slotConflict(err)
	}
	return nil
}

func (r *PostgresRepository) getReservation(ctx context.Context, where string, arg any) (*domain.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx, reservationSelect+" WHERE "+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrReservationNotFound
	}
	return res, err
}

func (r *PostgresRepository) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	return r.getReservation(ctx, "r.id = $1", id)
}

func (r *PostgresRepository) GetReservationBySession(ctx context.Context, sessionID string) (*domain.Reservation, error) {
	return r.getReservation(ctx, "r.stripe_session_id = $1", sessionID)
}

func (r *PostgresRepository) FindConfirmedReservation(ctx context.Context, tableNumber int, date, bookingTime string, excludeID int) (*domain.Reservation, error) {
	res, err := scanReservation(r.DB.QueryRowContext(ctx, reservationSelect+`
		WHERE r.table_number = $1 AND r.date = $2 AND r.booking_time = $3
		  AND r.status = 'active' AND r.stripe_session_id IS NOT NULL AND r.id <> $4
		LIMIT 1`, tableNumber, date, bookingTime, excludeID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return res, err
}

func (r *PostgresRepository) listReservations(ctx context.Context, query string, args ...any) ([]domain.Reservation, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}

func (r *PostgresRepository) ListBookedTables(ctx context.Context, date, bookingTime string) ([]domain.Reservation, error) {
	return r.listReservations(ctx, reservationSelect+`
		WHERE r.date = $1 AND r.booking_time = $2 AND r.status = 'active'
		ORDER BY r.table_number`, date, bookingTime)
}

func (r *PostgresRepository) ListReservations(ctx context.Context) ([]domain.Reservation, error) {
	return r.listReservations(ctx, reservationSelect+" ORDER BY r.date DESC, r.booking_time DESC")
}

func (r *PostgresRepository) ListReservationsByUser(ctx context.Context, userID int) ([]domain.Reservation, error) {
	return r.listReservations(ctx, reservationSelect+" WHERE r.user_id = $1 ORDER BY r.date DESC, r.booking_time DESC", userID)
}

func (r *PostgresRepository) UpdateReservation(ctx context.Context, res *domain.Reservation) error {
	err := r.DB.QueryRowContext(ctx, `
		UPDATE reservations
		SET table_number = $1, guest_count = $2, date = $3, booking_time = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING updated_at`,
		res.TableNumber, res.GuestCount, res.Date, res.BookingTime, res.ID,
	).Scan(&res.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrReservationNotFound
	}
	if err != nil {
		return slotConflict(err)
	}
	return nil
}

func (r *PostgresRepository) SetReservationStatus(ctx context.Context, id int, status domain.ReservationStatus, completedAt *time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE reservations SET status = $1, completed_at = COALESCE($2, completed_at), updated_at = NOW() WHERE id = $3",
		string(status), completedAt, id)
	if err != nil {
		return err
	}
	return expectAffected(res, domain.ErrReservationNotFound)
}
