package usecase

import (
	"context"
	"fmt"
)

// ErrPersistence indicates an infrastructure-level persistence failure
var ErrPersistence = fmt.Errorf("message use case persistence error")

// RecipientLister yields the users who must be notified about a new message.
// The guild context implements it via permission resolution.
type RecipientLister interface {
	ListRecipients(ctx context.Context, channelID string, excludeUserID string) ([]string, error)
}

// UnreadIncrementer bumps a recipient's unread counter for a channel. The
// unread context implements it over the shared key-value store.
type UnreadIncrementer interface {
	Increment(ctx context.Context, userID string, channelID string) error
}
