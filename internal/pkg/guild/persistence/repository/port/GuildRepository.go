package repository

import (
	"context"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
)

// GuildRepository is the read-only durable-store port permission resolution
// depends on. Adapters must hydrate aggregates in a single store round trip
// each: GetGuild returns the guild with roles and members (and their role
// assignments); GetChannel returns the channel with its overwrites, its
// parent with the parent's overwrites, and the recipient list for direct
// channels. Missing rows map to guild.ErrGuildNotFound / guild.ErrChannelNotFound.
type GuildRepository interface {
	GetGuild(ctx context.Context, guildID string) (*guild.Guild, error)
	GetChannel(ctx context.Context, channelID string) (*guild.Channel, error)
}
