package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
)

func TestMemoryStore_GetSetDel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, port.ErrMiss)

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	removed, err := store.Del(ctx, "k", "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, port.ErrMiss)
}

func TestMemoryStore_DelCountsKeyOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	// Same key holding both a string value and a set deletes as one key,
	// matching Redis DEL semantics.
	require.NoError(t, store.Set(ctx, "k", "v", 0))
	require.NoError(t, store.SAdd(ctx, "k", "member"))

	removed, err := store.Del(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, port.ErrMiss)
	members, err := store.SMembers(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(ctx, "k", "v", time.Minute))
	_, err := store.Get(ctx, "k")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, port.ErrMiss)
}

func TestMemoryStore_Incr(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for want := int64(1); want <= 3; want++ {
		got, err := store.Incr(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	got, err := store.Get(ctx, "counter")
	require.NoError(t, err)
	assert.Equal(t, "3", got)
}

func TestMemoryStore_Sets(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.SAdd(ctx, "s", "a", "b"))
	require.NoError(t, store.SAdd(ctx, "s", "b", "c"))

	members, err := store.SMembers(ctx, "s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, members)

	card, err := store.SCard(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, int64(3), card)

	require.NoError(t, store.SRem(ctx, "s", "a", "zz"))
	members, err = store.SMembers(ctx, "s")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c"}, members)

	// removing from a missing set is a no-op
	require.NoError(t, store.SRem(ctx, "nope", "a"))
}

func TestMemoryStore_BatchAppliesAllMutations(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "old", "x", 0))

	err := store.Batch(ctx, func(b port.Batch) {
		b.Set("k1", "v1", 0)
		b.SAdd("set", "m1", "m2")
		b.Del("old")
		b.SRem("set", "m2")
	})
	require.NoError(t, err)

	got, err := store.Get(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, "v1", got)

	_, err = store.Get(ctx, "old")
	assert.ErrorIs(t, err, port.ErrMiss)

	members, err := store.SMembers(ctx, "set")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"m1"}, members)
}
