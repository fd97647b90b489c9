package adapter

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgMessageCounter answers "how many messages after this one" against the
// messages table. Ordering is by created_at with id as a tie-breaker, the
// same ordering clients paginate with.
type PgMessageCounter struct {
	pool *pgxpool.Pool
}

func NewPgMessageCounter(pool *pgxpool.Pool) *PgMessageCounter {
	return &PgMessageCounter{pool: pool}
}

func (c *PgMessageCounter) CountSince(ctx context.Context, channelID string, messageID string) (int64, error) {
	var count int64

	if messageID == "" {
		err := c.pool.QueryRow(ctx,
			`SELECT count(*) FROM messages WHERE channel_id = $1`,
			channelID,
		).Scan(&count)
		return count, err
	}

	var refCreatedAt time.Time
	var refID string
	err := c.pool.QueryRow(ctx,
		`SELECT created_at, id FROM messages WHERE id = $1 AND channel_id = $2`,
		messageID, channelID,
	).Scan(&refCreatedAt, &refID)
	if errors.Is(err, pgx.ErrNoRows) {
		// Reference message was deleted; count the whole channel instead.
		return c.CountSince(ctx, channelID, "")
	}
	if err != nil {
		return 0, err
	}

	err = c.pool.QueryRow(ctx,
		`SELECT count(*) FROM messages
		 WHERE channel_id = $1 AND (created_at, id) > ($2, $3)`,
		channelID, refCreatedAt, refID,
	).Scan(&count)
	return count, err
}
