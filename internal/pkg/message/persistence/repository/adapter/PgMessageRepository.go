package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	message "github.com/Laevateinn17/viscord-sub000/internal/pkg/message/application/domain"
)

type PgMessageRepository struct {
	pool *pgxpool.Pool
}

func NewPgMessageRepository(pool *pgxpool.Pool) *PgMessageRepository {
	return &PgMessageRepository{pool: pool}
}

func (r *PgMessageRepository) SaveMessage(ctx context.Context, m message.Message) (string, error) {
	if r == nil || r.pool == nil {
		return "", errors.New("PgMessageRepository: nil pool")
	}
	var id string
	err := r.pool.QueryRow(ctx, `
		INSERT INTO messages (channel_id, author_id, body, created_at, dedupe_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id::text
	`, m.ChannelID, m.AuthorID, m.Body, m.CreatedAt, m.DedupeKey).Scan(&id)
	return id, err
}

func (r *PgMessageRepository) GetMessagesByChannel(ctx context.Context, channelID string, limit int, before string) ([]message.Message, error) {
	if r == nil || r.pool == nil {
		return nil, errors.New("PgMessageRepository: nil pool")
	}
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	query := `
		SELECT id::text, channel_id::text, author_id::text, body, created_at, dedupe_key
		FROM messages
		WHERE channel_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
	args := []any{channelID, limit}
	if before != "" {
		query = `
		SELECT id::text, channel_id::text, author_id::text, body, created_at, dedupe_key
		FROM messages
		WHERE channel_id = $1
		  AND (created_at, id) < (SELECT created_at, id FROM messages WHERE id = $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $2`
		args = append(args, before)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []message.Message
	for rows.Next() {
		var m message.Message
		if err := rows.Scan(&m.ID, &m.ChannelID, &m.AuthorID, &m.Body, &m.CreatedAt, &m.DedupeKey); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
