package adapter

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgReadStateRepository stores last-read pointers in the read_states table,
// one row per (user, channel), upserted on acknowledge.
type PgReadStateRepository struct {
	pool *pgxpool.Pool
}

func NewPgReadStateRepository(pool *pgxpool.Pool) *PgReadStateRepository {
	return &PgReadStateRepository{pool: pool}
}

func (r *PgReadStateRepository) GetLastRead(ctx context.Context, userID string, channelID string) (string, error) {
	var messageID string
	err := r.pool.QueryRow(ctx,
		`SELECT last_read_message_id FROM read_states WHERE user_id = $1 AND channel_id = $2`,
		userID, channelID,
	).Scan(&messageID)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return messageID, nil
}

func (r *PgReadStateRepository) SetLastRead(ctx context.Context, userID string, channelID string, messageID string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO read_states (user_id, channel_id, last_read_message_id, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (user_id, channel_id)
		 DO UPDATE SET last_read_message_id = EXCLUDED.last_read_message_id, updated_at = now()`,
		userID, channelID, messageID,
	)
	return err
}
