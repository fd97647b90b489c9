package usecase

import (
	"context"
	"errors"
	"fmt"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	repository "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/port"
)

// AuthorizeChannelInput asks whether a user may perform an action needing the
// given permission bits in a channel.
type AuthorizeChannelInput struct {
	UserID    string
	ChannelID string
	Need      guild.Permissions
}

// AuthorizeChannelUseCase is the single authorization gate controllers call
// before handing an action to the voice/ring/unread coordinators (which trust
// their callers). Direct channels authorize by recipient membership; guild
// channels by resolved permissions.
type AuthorizeChannelUseCase struct {
	Repo repository.GuildRepository
}

func NewAuthorizeChannelUseCase(repo repository.GuildRepository) *AuthorizeChannelUseCase {
	return &AuthorizeChannelUseCase{Repo: repo}
}

// Execute returns nil when the action is permitted, guild.ErrMissingPermission
// when it is not, and guild.ErrChannelNotFound for an unknown channel.
func (uc *AuthorizeChannelUseCase) Execute(ctx context.Context, in AuthorizeChannelInput) error {
	if in.UserID == "" || in.ChannelID == "" {
		return fmt.Errorf("user_id and channel_id are required")
	}

	ch, err := uc.Repo.GetChannel(ctx, in.ChannelID)
	if err != nil {
		if errors.Is(err, guild.ErrChannelNotFound) {
			return guild.ErrChannelNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if ch.IsDirect() {
		if ch.HasRecipient(in.UserID) {
			return nil
		}
		return guild.ErrMissingPermission
	}

	g, err := uc.Repo.GetGuild(ctx, ch.GuildID)
	if err != nil {
		if errors.Is(err, guild.ErrGuildNotFound) {
			return guild.ErrMissingPermission
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !guild.ResolveChannelPermissions(g, ch, in.UserID).Has(in.Need) {
		return guild.ErrMissingPermission
	}
	return nil
}

// Authorize is the plain-arguments form other contexts depend on.
func (uc *AuthorizeChannelUseCase) Authorize(ctx context.Context, userID string, channelID string, need guild.Permissions) error {
	return uc.Execute(ctx, AuthorizeChannelInput{UserID: userID, ChannelID: channelID, Need: need})
}
