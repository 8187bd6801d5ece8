package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// BookingRepository encapsulates demo booking persistence. Bookings are
// create-only in this service.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.DemoBooking) error
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.DemoBooking, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates the repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.DemoBooking) error {
	const query = `
        INSERT INTO demo_bookings (account_id, tutor_id, tutor_name, subject, status)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, booked_at`

	return r.pool.QueryRow(ctx, query,
		booking.AccountID,
		booking.TutorID,
		booking.TutorName,
		booking.Subject,
		booking.Status,
	).Scan(&booking.ID, &booking.BookedAt)
}

func (r *bookingRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]domain.DemoBooking, error) {
	const query = `
        SELECT id, account_id, tutor_id, tutor_name, subject, status, booked_at
        FROM demo_bookings WHERE account_id=$1
        ORDER BY booked_at DESC LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DemoBooking
	for rows.Next() {
		var booking domain.DemoBooking
		if err := rows.Scan(
			&booking.ID,
			&booking.AccountID,
			&booking.TutorID,
			&booking.TutorName,
			&booking.Subject,
			&booking.Status,
			&booking.BookedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, booking)
	}
	return result, rows.Err()
}
