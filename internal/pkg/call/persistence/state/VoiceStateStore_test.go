package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/adapter"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
)

func TestKeyNaming(t *testing.T) {
	// The key layout is shared with other services; these strings are a wire
	// contract and must never drift.
	assert.Equal(t, "voice:c1:u1", voiceParticipantKey("c1", "u1"))
	assert.Equal(t, "voice:channel:c1", voiceChannelKey("c1"))
	assert.Equal(t, "ring:c1:u1", ringKey("c1", "u1"))
	assert.Equal(t, "ring:channel:c1", ringChannelKey("c1"))
}

func TestVoiceStateStore_SaveGetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewVoiceStateStore(adapter.NewMemoryStore())

	_, err := store.Get(ctx, "c1", "u1")
	assert.ErrorIs(t, err, call.ErrParticipantNotFound)

	p := call.VoiceParticipant{ChannelID: "c1", UserID: "u1", IsMuted: true}
	require.NoError(t, store.Save(ctx, p))

	got, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, p, *got)

	count, err := store.Count(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	remaining, removed, err := store.Remove(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, int64(0), remaining)

	_, err = store.Get(ctx, "c1", "u1")
	assert.ErrorIs(t, err, call.ErrParticipantNotFound)

	// Removing again reports that nothing was there.
	_, removed, err = store.Remove(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestVoiceStateStore_JoinLeaveRestoresMembership(t *testing.T) {
	ctx := context.Background()
	store := NewVoiceStateStore(adapter.NewMemoryStore())

	require.NoError(t, store.Save(ctx, call.VoiceParticipant{ChannelID: "c1", UserID: "existing"}))

	before, err := store.Participants(ctx, "c1")
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, call.VoiceParticipant{ChannelID: "c1", UserID: "joiner"}))
	remaining, removed, err := store.Remove(ctx, "c1", "joiner")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, int64(1), remaining)

	after, err := store.Participants(ctx, "c1")
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after, "join then leave must restore the pre-join membership")
}

func TestVoiceStateStore_Participants(t *testing.T) {
	ctx := context.Background()
	store := NewVoiceStateStore(adapter.NewMemoryStore())

	require.NoError(t, store.Save(ctx, call.VoiceParticipant{ChannelID: "c1", UserID: "u1"}))
	require.NoError(t, store.Save(ctx, call.VoiceParticipant{ChannelID: "c1", UserID: "u2", IsDeafened: true}))
	require.NoError(t, store.Save(ctx, call.VoiceParticipant{ChannelID: "c2", UserID: "u3"}))

	got, err := store.Participants(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	ids := []string{got[0].UserID, got[1].UserID}
	assert.ElementsMatch(t, []string{"u1", "u2"}, ids)
}
