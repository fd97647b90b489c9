package repository

import "context"

// ReadStateRepository persists the per-(user, channel) last-acknowledged
// message id in durable storage. GetLastRead returns "" when no record
// exists (new channel membership).
type ReadStateRepository interface {
	GetLastRead(ctx context.Context, userID string, channelID string) (string, error)
	SetLastRead(ctx context.Context, userID string, channelID string, messageID string) error
}

// MessageCounter is the authoritative message-count lookup: how many
// messages exist in the channel after the given message id. messageID == ""
// counts every message in the channel.
type MessageCounter interface {
	CountSince(ctx context.Context, channelID string, messageID string) (int64, error)
}
