package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// ApplicationRepository encapsulates tutor application persistence.
// Applications are append-and-approve only; there is no delete path.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.TutorApplication) error
	GetByID(ctx context.Context, id string) (*domain.TutorApplication, error)
	ListByStatus(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.TutorApplication, error)
	Approve(ctx context.Context, id, approvedBy string) error
}

type applicationRepository struct {
	pool *pgxpool.Pool
}

// NewApplicationRepository instantiates the repository.
func NewApplicationRepository(pool *pgxpool.Pool) ApplicationRepository {
	return &applicationRepository{pool: pool}
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.TutorApplication) error {
	const query = `
        INSERT INTO tutor_applications (account_id, name, email, subject, bio, experience, country, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, submitted_at`

	return r.pool.QueryRow(ctx, query,
		app.AccountID,
		app.Name,
		app.Email,
		app.Subject,
		app.Bio,
		app.Experience,
		app.Country,
		app.Status,
	).Scan(&app.ID, &app.SubmittedAt)
}

func (r *applicationRepository) GetByID(ctx context.Context, id string) (*domain.TutorApplication, error) {
	const query = `
        SELECT id, account_id, name, email, subject, bio, experience, country,
               status, submitted_at, approved_at, approved_by
        FROM tutor_applications WHERE id=$1`

	var app domain.TutorApplication
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&app.ID,
		&app.AccountID,
		&app.Name,
		&app.Email,
		&app.Subject,
		&app.Bio,
		&app.Experience,
		&app.Country,
		&app.Status,
		&app.SubmittedAt,
		&app.ApprovedAt,
		&app.ApprovedBy,
	); err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) ListByStatus(ctx context.Context, status domain.ApplicationStatus, limit, offset int) ([]domain.TutorApplication, error) {
	const query = `
        SELECT id, account_id, name, email, subject, bio, experience, country,
               status, submitted_at, approved_at, approved_by
        FROM tutor_applications WHERE status=$1
        ORDER BY submitted_at DESC LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TutorApplication
	for rows.Next() {
		var app domain.TutorApplication
		if err := rows.Scan(
			&app.ID,
			&app.AccountID,
			&app.Name,
			&app.Email,
			&app.Subject,
			&app.Bio,
			&app.Experience,
			&app.Country,
			&app.Status,
			&app.SubmittedAt,
			&app.ApprovedAt,
			&app.ApprovedBy,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

// Approve is a partial update: only status and the approval stamp
// columns change.
func (r *applicationRepository) Approve(ctx context.Context, id, approvedBy string) error {
	const query = `
        UPDATE tutor_applications
        SET status=$1, approved_at=NOW(), approved_by=$2
        WHERE id=$3`

	cmd, err := r.pool.Exec(ctx, query, domain.ApplicationStatusApproved, approvedBy, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
