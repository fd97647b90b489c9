package message

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyMessage   = errors.New("message has no content")
	ErrMessageTooLong = errors.New("message content exceeds the length limit")
)

// MaxContentLength caps message bodies at the same limit clients enforce.
const MaxContentLength = 4000

// Message is a persisted channel message.
type Message struct {
	ID        string    `db:"id"`
	ChannelID string    `db:"channel_id"`
	AuthorID  string    `db:"author_id"`
	Body      *string   `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	DedupeKey *string   `db:"dedupe_key"`
}

// NewMessage validates and normalizes input, returning a message ready for
// persistence. The ID is left empty for the database to generate.
func NewMessage(in Message) (*Message, error) {
	if in.Body == nil || strings.TrimSpace(*in.Body) == "" {
		return nil, ErrEmptyMessage
	}
	if len(*in.Body) > MaxContentLength {
		return nil, ErrMessageTooLong
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now().UTC()
	}
	return &in, nil
}
