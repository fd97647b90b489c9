package state

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/adapter"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
)

func ringFixture(channelID string, recipients ...string) []call.RingInvitation {
	out := make([]call.RingInvitation, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, call.RingInvitation{
			ChannelID:   channelID,
			RecipientID: r,
			InitiatorID: "caller",
			CreatedAt:   time.Now().UTC(),
		})
	}
	return out
}

func TestRingStateStore_CreateGetRemove(t *testing.T) {
	ctx := context.Background()
	store := NewRingStateStore(adapter.NewMemoryStore(), time.Minute)

	require.NoError(t, store.CreateAll(ctx, ringFixture("c1", "u1", "u2")))

	inv, err := store.Get(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "caller", inv.InitiatorID)

	removed, err := store.Remove(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", removed.RecipientID)

	// Removing twice is a safe no-op signalled as not-found.
	_, err = store.Remove(ctx, "c1", "u1")
	assert.ErrorIs(t, err, call.ErrRingNotFound)

	// The other recipient's ring is untouched.
	_, err = store.Get(ctx, "c1", "u2")
	require.NoError(t, err)
}

func TestRingStateStore_LeaseExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewRingStateStore(adapter.NewMemoryStore(), time.Minute)

	stale := []call.RingInvitation{{
		ChannelID:   "c1",
		RecipientID: "u1",
		InitiatorID: "caller",
		CreatedAt:   time.Now().UTC().Add(-2 * time.Minute),
	}}
	require.NoError(t, store.CreateAll(ctx, stale))

	// Reads treat an expired-but-undeleted record as absent.
	_, err := store.Get(ctx, "c1", "u1")
	assert.ErrorIs(t, err, call.ErrRingNotFound)

	// The lease read also physically deleted it.
	_, err = store.Remove(ctx, "c1", "u1")
	assert.ErrorIs(t, err, call.ErrRingNotFound)
}

func TestRingStateStore_RemoveReturnsExpiredRecords(t *testing.T) {
	// The expiry sweep dismisses via Remove and still needs the record to
	// fan out the dismissal, so Remove does not apply the lease.
	ctx := context.Background()
	store := NewRingStateStore(adapter.NewMemoryStore(), time.Minute)

	stale := []call.RingInvitation{{
		ChannelID:   "c1",
		RecipientID: "u1",
		InitiatorID: "caller",
		CreatedAt:   time.Now().UTC().Add(-2 * time.Minute),
	}}
	require.NoError(t, store.CreateAll(ctx, stale))

	removed, err := store.Remove(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.Equal(t, "caller", removed.InitiatorID)
}

func TestRingStateStore_RemoveAll(t *testing.T) {
	ctx := context.Background()
	store := NewRingStateStore(adapter.NewMemoryStore(), time.Minute)

	require.NoError(t, store.CreateAll(ctx, ringFixture("c1", "u1", "u2", "u3")))
	require.NoError(t, store.CreateAll(ctx, ringFixture("c2", "other")))

	removed, err := store.RemoveAll(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, removed, 3)

	removed, err = store.RemoveAll(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, removed)

	// Clearing channel c1 must not touch c2's ring.
	_, err = store.Get(ctx, "c2", "other")
	require.NoError(t, err)
}
