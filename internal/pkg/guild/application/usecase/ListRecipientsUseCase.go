package usecase

import (
	"context"
	"errors"
	"fmt"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	repository "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/port"
)

// ListRecipientsInput identifies the channel whose eligible recipients are
// wanted. ExcludeUserID, when set, removes that user from the result (used to
// skip the author/initiator during fanout).
type ListRecipientsInput struct {
	ChannelID     string
	ExcludeUserID string
}

// ListRecipientsUseCase computes the recipient set of a channel: the DM
// recipient list for direct channels, or every guild member whose resolved
// permission carries ViewChannels. This is the set fanout and the unread
// counters operate on.
type ListRecipientsUseCase struct {
	Repo repository.GuildRepository
}

func NewListRecipientsUseCase(repo repository.GuildRepository) *ListRecipientsUseCase {
	return &ListRecipientsUseCase{Repo: repo}
}

func (uc *ListRecipientsUseCase) Execute(ctx context.Context, in ListRecipientsInput) ([]string, error) {
	if in.ChannelID == "" {
		return nil, fmt.Errorf("channel_id is required")
	}

	ch, err := uc.Repo.GetChannel(ctx, in.ChannelID)
	if err != nil {
		if errors.Is(err, guild.ErrChannelNotFound) {
			return nil, guild.ErrChannelNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if ch.IsDirect() {
		return exclude(ch.RecipientIDs, in.ExcludeUserID), nil
	}

	g, err := uc.Repo.GetGuild(ctx, ch.GuildID)
	if err != nil {
		if errors.Is(err, guild.ErrGuildNotFound) {
			return nil, guild.ErrGuildNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	var out []string
	for _, m := range g.Members {
		if m.UserID == in.ExcludeUserID {
			continue
		}
		if guild.ResolveChannelPermissions(g, ch, m.UserID).Has(guild.PermissionViewChannels) {
			out = append(out, m.UserID)
		}
	}
	return out, nil
}

// ListRecipients is the plain-arguments form other contexts depend on for
// fanout recipient sets.
func (uc *ListRecipientsUseCase) ListRecipients(ctx context.Context, channelID string, excludeUserID string) ([]string, error) {
	return uc.Execute(ctx, ListRecipientsInput{ChannelID: channelID, ExcludeUserID: excludeUserID})
}

func exclude(ids []string, skip string) []string {
	if skip == "" {
		return append([]string(nil), ids...)
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != skip {
			out = append(out, id)
		}
	}
	return out
}
