package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DiscordEventRepository is the append-only diagnostic trail for raw
// payloads whose event kind the reconciler does not recognize.
type DiscordEventRepository interface {
	Append(ctx context.Context, payload []byte) error
}

type discordEventRepository struct {
	pool *pgxpool.Pool
}

// NewDiscordEventRepository instantiates the repository.
func NewDiscordEventRepository(pool *pgxpool.Pool) DiscordEventRepository {
	return &discordEventRepository{pool: pool}
}

func (r *discordEventRepository) Append(ctx context.Context, payload []byte) error {
	const query = `INSERT INTO discord_events (payload) VALUES ($1)`
	_, err := r.pool.Exec(ctx, query, payload)
	return err
}
