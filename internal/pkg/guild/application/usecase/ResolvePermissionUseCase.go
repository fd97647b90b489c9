package usecase

import (
	"context"
	"errors"
	"fmt"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	repository "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/port"
)

// ResolvePermissionInput identifies the (user, channel) pair to resolve.
type ResolvePermissionInput struct {
	UserID    string
	GuildID   string
	ChannelID string
}

// ResolvePermissionUseCase loads the guild and channel aggregates and runs
// the pure resolution function over them. Results are never cached across
// calls so an overwrite edit takes effect immediately.
type ResolvePermissionUseCase struct {
	Repo repository.GuildRepository
}

func NewResolvePermissionUseCase(repo repository.GuildRepository) *ResolvePermissionUseCase {
	return &ResolvePermissionUseCase{Repo: repo}
}

// Execute returns the effective permission bitmask. A missing channel or a
// guild/channel mismatch resolves to zero rather than erroring.
func (uc *ResolvePermissionUseCase) Execute(ctx context.Context, in ResolvePermissionInput) (guild.Permissions, error) {
	if in.UserID == "" || in.GuildID == "" || in.ChannelID == "" {
		return 0, fmt.Errorf("user_id, guild_id and channel_id are required")
	}

	g, err := uc.Repo.GetGuild(ctx, in.GuildID)
	if err != nil {
		if errors.Is(err, guild.ErrGuildNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	ch, err := uc.Repo.GetChannel(ctx, in.ChannelID)
	if err != nil {
		if errors.Is(err, guild.ErrChannelNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	return guild.ResolveChannelPermissions(g, ch, in.UserID), nil
}
