package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	guild "github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/guild/persistence/repository/inmem"
)

func seedRepo() *inmem.InMemGuildRepository {
	repo := inmem.NewInMemGuildRepository()
	repo.PutGuild(&guild.Guild{
		ID:      "g1",
		OwnerID: "owner",
		Roles: []guild.Role{
			{ID: "g1", Name: "everyone", Permissions: guild.PermissionViewChannels | guild.PermissionConnect},
		},
		Members: []guild.Member{
			{UserID: "alice"},
			{UserID: "bob"},
		},
	})
	repo.PutChannel(&guild.Channel{
		ID:      "c1",
		GuildID: "g1",
		Type:    guild.ChannelTypeVoice,
		Overwrites: []guild.PermissionOverwrite{
			{ChannelID: "c1", TargetID: "bob", TargetType: guild.OverwriteTargetMember, Deny: guild.PermissionConnect},
		},
	})
	repo.PutChannel(&guild.Channel{
		ID:           "dm1",
		Type:         guild.ChannelTypeDM,
		RecipientIDs: []string{"alice", "carol"},
	})
	return repo
}

func TestResolvePermissionUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewResolvePermissionUseCase(seedRepo())

	perms, err := uc.Execute(ctx, ResolvePermissionInput{UserID: "alice", GuildID: "g1", ChannelID: "c1"})
	require.NoError(t, err)
	assert.True(t, perms.Has(guild.PermissionConnect))

	perms, err = uc.Execute(ctx, ResolvePermissionInput{UserID: "bob", GuildID: "g1", ChannelID: "c1"})
	require.NoError(t, err)
	assert.False(t, perms.Has(guild.PermissionConnect))
	assert.True(t, perms.Has(guild.PermissionViewChannels))

	// Missing channel resolves to zero, not an error.
	perms, err = uc.Execute(ctx, ResolvePermissionInput{UserID: "alice", GuildID: "g1", ChannelID: "nope"})
	require.NoError(t, err)
	assert.Equal(t, guild.Permissions(0), perms)
}

func TestAuthorizeChannelUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthorizeChannelUseCase(seedRepo())

	err := uc.Execute(ctx, AuthorizeChannelInput{UserID: "alice", ChannelID: "c1", Need: guild.PermissionConnect})
	assert.NoError(t, err)

	err = uc.Execute(ctx, AuthorizeChannelInput{UserID: "bob", ChannelID: "c1", Need: guild.PermissionConnect})
	assert.ErrorIs(t, err, guild.ErrMissingPermission)

	// Direct channels authorize by recipient membership.
	err = uc.Execute(ctx, AuthorizeChannelInput{UserID: "carol", ChannelID: "dm1", Need: guild.PermissionConnect})
	assert.NoError(t, err)
	err = uc.Execute(ctx, AuthorizeChannelInput{UserID: "bob", ChannelID: "dm1", Need: guild.PermissionConnect})
	assert.ErrorIs(t, err, guild.ErrMissingPermission)

	err = uc.Execute(ctx, AuthorizeChannelInput{UserID: "alice", ChannelID: "nope", Need: guild.PermissionConnect})
	assert.ErrorIs(t, err, guild.ErrChannelNotFound)
}

func TestListRecipientsUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewListRecipientsUseCase(seedRepo())

	ids, err := uc.Execute(ctx, ListRecipientsInput{ChannelID: "c1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"alice", "bob"}, ids)

	ids, err = uc.Execute(ctx, ListRecipientsInput{ChannelID: "c1", ExcludeUserID: "alice"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"bob"}, ids)

	ids, err = uc.Execute(ctx, ListRecipientsInput{ChannelID: "dm1", ExcludeUserID: "alice"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"carol"}, ids)
}
