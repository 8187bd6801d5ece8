package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// ChatRepository encapsulates the append-only support chat log.
type ChatRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository instantiates the repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

func (r *chatRepository) Create(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (account_id, session_id, message, role)
        VALUES ($1,$2,$3,$4)
        RETURNING id, sent_at`

	return r.pool.QueryRow(ctx, query,
		msg.AccountID,
		msg.SessionID,
		msg.Message,
		msg.Role,
	).Scan(&msg.ID, &msg.SentAt)
}

func (r *chatRepository) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, account_id, session_id, message, role, sent_at
        FROM chat_messages WHERE session_id=$1
        ORDER BY sent_at ASC LIMIT $2 OFFSET $3`

	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := r.pool.Query(ctx, query, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.AccountID,
			&msg.SessionID,
			&msg.Message,
			&msg.Role,
			&msg.SentAt,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
