package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// AccountRepository defines persistence access for accounts and their
// authorization claims.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetClaims(ctx context.Context, accountID string) (domain.Claims, error)
	GrantTutorClaim(ctx context.Context, accountID string) error
}

type accountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository returns a Postgres-backed implementation.
func NewAccountRepository(pool *pgxpool.Pool) AccountRepository {
	return &accountRepository{pool: pool}
}

func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	const query = `
        INSERT INTO accounts (name, email, password_hash)
        VALUES ($1, $2, $3)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Name,
		account.Email,
		account.PasswordHash,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *accountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM accounts WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	const query = `
        SELECT id, name, email, password_hash, created_at, updated_at
        FROM accounts WHERE LOWER(email)=LOWER($1)`
	return r.fetchSingle(ctx, query, email)
}

func (r *accountRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Account, error) {
	var account domain.Account
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) GetClaims(ctx context.Context, accountID string) (domain.Claims, error) {
	const query = `
        SELECT staff, tutor FROM account_claims WHERE account_id=$1`

	var claims domain.Claims
	if err := r.pool.QueryRow(ctx, query, accountID).Scan(&claims.Staff, &claims.Tutor); err != nil {
		if err == pgx.ErrNoRows {
			return domain.Claims{}, nil
		}
		return domain.Claims{}, err
	}
	return claims, nil
}

// GrantTutorClaim merges tutor=true into the account's claim row. The
// upsert touches only the tutor column so an existing staff claim is
// preserved.
func (r *accountRepository) GrantTutorClaim(ctx context.Context, accountID string) error {
	const query = `
        INSERT INTO account_claims (account_id, tutor)
        VALUES ($1, TRUE)
        ON CONFLICT (account_id) DO UPDATE SET tutor=TRUE, updated_at=NOW()`

	_, err := r.pool.Exec(ctx, query, accountID)
	return err
}
