package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/adapter"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/repository/inmem"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/unread/persistence/state"
)

type unreadFixture struct {
	counters *state.UnreadCounterStore
	reads    *inmem.InMemReadStateRepository
	messages *inmem.InMemMessageCounter

	get  *GetUnreadCountUseCase
	incr *IncrementUnreadUseCase
	ack  *AcknowledgeChannelUseCase
}

func newUnreadFixture() *unreadFixture {
	counters := state.NewUnreadCounterStore(adapter.NewMemoryStore())
	reads := inmem.NewInMemReadStateRepository()
	messages := inmem.NewInMemMessageCounter()
	return &unreadFixture{
		counters: counters,
		reads:    reads,
		messages: messages,
		get:      NewGetUnreadCountUseCase(counters, reads, messages),
		incr:     NewIncrementUnreadUseCase(counters),
		ack:      NewAcknowledgeChannelUseCase(counters, reads),
	}
}

func TestIncrementThenGetWarmCache(t *testing.T) {
	f := newUnreadFixture()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := f.incr.Execute(ctx, "user-1", "channel-1")
		require.NoError(t, err)
	}

	count, err := f.get.Execute(ctx, GetUnreadCountInput{UserID: "user-1", ChannelID: "channel-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestGetColdCacheRehydratesFromAuthoritativeCount(t *testing.T) {
	f := newUnreadFixture()
	ctx := context.Background()

	require.NoError(t, f.reads.SetLastRead(ctx, "user-1", "channel-1", "message-40"))
	f.messages.LastReadCounts["channel-1/message-40"] = 7

	count, err := f.get.Execute(ctx, GetUnreadCountInput{UserID: "user-1", ChannelID: "channel-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), count)

	// The rehydrated value is written back; subsequent increments build on it.
	_, err = f.incr.Execute(ctx, "user-1", "channel-1")
	require.NoError(t, err)

	count, err = f.get.Execute(ctx, GetUnreadCountInput{UserID: "user-1", ChannelID: "channel-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(8), count)
}

func TestGetColdCacheWithoutLastReadIsZero(t *testing.T) {
	f := newUnreadFixture()
	f.messages.Totals["channel-1"] = 100

	count, err := f.get.Execute(context.Background(), GetUnreadCountInput{UserID: "new-member", ChannelID: "channel-1"})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestAcknowledgeResetsCounterAndPersistsPointer(t *testing.T) {
	f := newUnreadFixture()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.incr.Execute(ctx, "user-1", "channel-1")
		require.NoError(t, err)
	}

	err := f.ack.Execute(ctx, AcknowledgeChannelInput{UserID: "user-1", ChannelID: "channel-1", MessageID: "message-99"})
	require.NoError(t, err)

	count, err := f.get.Execute(ctx, GetUnreadCountInput{UserID: "user-1", ChannelID: "channel-1"})
	require.NoError(t, err)
	assert.Zero(t, count)

	last, err := f.reads.GetLastRead(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	assert.Equal(t, "message-99", last)
}

func TestCountersAreIsolatedPerUserAndChannel(t *testing.T) {
	f := newUnreadFixture()
	ctx := context.Background()

	_, err := f.incr.Execute(ctx, "user-1", "channel-1")
	require.NoError(t, err)
	_, err = f.incr.Execute(ctx, "user-1", "channel-2")
	require.NoError(t, err)

	count, err := f.get.Execute(ctx, GetUnreadCountInput{UserID: "user-2", ChannelID: "channel-1"})
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = f.get.Execute(ctx, GetUnreadCountInput{UserID: "user-1", ChannelID: "channel-2"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGetRejectsMissingIdentifiers(t *testing.T) {
	f := newUnreadFixture()

	_, err := f.get.Execute(context.Background(), GetUnreadCountInput{UserID: "", ChannelID: "channel-1"})
	assert.Error(t, err)

	_, err = f.incr.Execute(context.Background(), "user-1", "")
	assert.Error(t, err)
}
