package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// AdRepository encapsulates announcement persistence. Discord-origin
// rows are keyed by discord_message_id; the upsert guarantees at most
// one row per external id even under concurrent deliveries.
type AdRepository interface {
	UpsertDiscord(ctx context.Context, ad *domain.Ad) error
	UpdateContentByMessageID(ctx context.Context, messageID, title, body string) (bool, error)
	ArchiveByMessageID(ctx context.Context, messageID string) (bool, error)
	GetByMessageID(ctx context.Context, messageID string) (*domain.Ad, error)
	ListActive(ctx context.Context, limit, offset int) ([]domain.Ad, error)
}

type adRepository struct {
	pool *pgxpool.Pool
}

// NewAdRepository instantiates the repository.
func NewAdRepository(pool *pgxpool.Pool) AdRepository {
	return &adRepository{pool: pool}
}

// UpsertDiscord inserts or refreshes the ad for an external message id
// in one conditional statement. A re-created ad is forced back to
// active regardless of its previous status.
func (r *adRepository) UpsertDiscord(ctx context.Context, ad *domain.Ad) error {
	const query = `
        INSERT INTO ads (title, body, source, status, created_by, discord_message_id, discord_channel_id, discord_author)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        ON CONFLICT (discord_message_id) WHERE discord_message_id IS NOT NULL
        DO UPDATE SET title=EXCLUDED.title, body=EXCLUDED.body, status=$4, updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		ad.Title,
		ad.Body,
		ad.Source,
		domain.AdStatusActive,
		ad.CreatedBy,
		ad.DiscordMessageID,
		ad.DiscordChannelID,
		ad.DiscordAuthor,
	).Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)
}

// UpdateContentByMessageID patches title/body only, leaving status
// untouched. Returns false when no row carries the message id.
func (r *adRepository) UpdateContentByMessageID(ctx context.Context, messageID, title, body string) (bool, error) {
	const query = `
        UPDATE ads SET title=$1, body=$2, updated_at=NOW()
        WHERE discord_message_id=$3`

	cmd, err := r.pool.Exec(ctx, query, title, body, messageID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// ArchiveByMessageID soft-deletes by status transition. Returns false
// when no row carries the message id; the caller treats that as a
// replay-safe no-op.
func (r *adRepository) ArchiveByMessageID(ctx context.Context, messageID string) (bool, error) {
	const query = `
        UPDATE ads SET status=$1, updated_at=NOW()
        WHERE discord_message_id=$2`

	cmd, err := r.pool.Exec(ctx, query, domain.AdStatusArchived, messageID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *adRepository) GetByMessageID(ctx context.Context, messageID string) (*domain.Ad, error) {
	const query = `
        SELECT id, title, body, source, status, created_by,
               discord_message_id, discord_channel_id, discord_author,
               created_at, updated_at
        FROM ads WHERE discord_message_id=$1`

	var ad domain.Ad
	if err := r.pool.QueryRow(ctx, query, messageID).Scan(
		&ad.ID,
		&ad.Title,
		&ad.Body,
		&ad.Source,
		&ad.Status,
		&ad.CreatedBy,
		&ad.DiscordMessageID,
		&ad.DiscordChannelID,
		&ad.DiscordAuthor,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *adRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Ad, error) {
	const query = `
        SELECT id, title, body, source, status, created_by,
               discord_message_id, discord_channel_id, discord_author,
               created_at, updated_at
        FROM ads WHERE status=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, domain.AdStatusActive, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Ad
	for rows.Next() {
		var ad domain.Ad
		if err := rows.Scan(
			&ad.ID,
			&ad.Title,
			&ad.Body,
			&ad.Source,
			&ad.Status,
			&ad.CreatedBy,
			&ad.DiscordMessageID,
			&ad.DiscordChannelID,
			&ad.DiscordAuthor,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ad)
	}
	return result, rows.Err()
}
