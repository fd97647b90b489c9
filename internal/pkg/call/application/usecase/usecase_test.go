package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/adapter"
	qport "github.com/Laevateinn17/viscord-sub000/internal/infrastructure/queue/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/call/persistence/state"
	"github.com/Laevateinn17/viscord-sub000/internal/pkg/event"
)

// stubLister returns a fixed recipient set per channel, minus the excluded user.
type stubLister struct {
	recipients map[string][]string
}

func (s *stubLister) ListRecipients(ctx context.Context, channelID string, excludeUserID string) ([]string, error) {
	var out []string
	for _, id := range s.recipients[channelID] {
		if id != excludeUserID {
			out = append(out, id)
		}
	}
	return out, nil
}

// captureGateway records every publish for assertions.
type captureGateway struct {
	mu        sync.Mutex
	published []publishCall
}

type publishCall struct {
	recipients []string
	event      event.Event
}

func (g *captureGateway) Publish(ctx context.Context, recipientIDs []string, ev event.Event) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.published = append(g.published, publishCall{recipients: recipientIDs, event: ev})
	return nil
}

func (g *captureGateway) byType(t event.Type) []publishCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []publishCall
	for _, p := range g.published {
		if p.event.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// captureQueue records enqueued tasks without a broker.
type captureQueue struct {
	mu    sync.Mutex
	tasks []qport.Task
	opts  []qport.EnqueueOption
}

func (q *captureQueue) Enqueue(ctx context.Context, t qport.Task, opts ...qport.EnqueueOption) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tasks = append(q.tasks, t)
	if len(opts) > 0 {
		q.opts = append(q.opts, opts[0])
	} else {
		q.opts = append(q.opts, qport.EnqueueOption{})
	}
	return "task-id", nil
}

func (q *captureQueue) Close() error { return nil }

type fixture struct {
	voice   *state.VoiceStateStore
	rings   *state.RingStateStore
	lister  *stubLister
	gateway *captureGateway
	queue   *captureQueue

	join    *JoinVoiceUseCase
	leave   *LeaveVoiceUseCase
	update  *UpdateVoiceStateUseCase
	list    *ListVoiceParticipantsUseCase
	ring    *RingChannelUseCase
	dismiss *DismissRingUseCase
	clear   *ClearChannelRingsUseCase
}

func newFixture(recipients map[string][]string) *fixture {
	store := adapter.NewMemoryStore()
	f := &fixture{
		voice:   state.NewVoiceStateStore(store),
		rings:   state.NewRingStateStore(store, time.Minute),
		lister:  &stubLister{recipients: recipients},
		gateway: &captureGateway{},
		queue:   &captureQueue{},
	}
	f.join = NewJoinVoiceUseCase(f.voice, f.rings, f.lister, f.gateway)
	f.clear = NewClearChannelRingsUseCase(f.rings, f.gateway)
	f.leave = NewLeaveVoiceUseCase(f.voice, f.clear, f.lister)
	f.update = NewUpdateVoiceStateUseCase(f.voice, f.lister)
	f.list = NewListVoiceParticipantsUseCase(f.voice)
	f.ring = NewRingChannelUseCase(f.voice, f.rings, f.lister, f.queue)
	f.dismiss = NewDismissRingUseCase(f.rings)
	return f
}

func TestJoinVoice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob", "carol"}})

	res, err := f.join.Execute(ctx, JoinVoiceInput{ChannelID: "c1", UserID: "alice", IsMuted: true})
	require.NoError(t, err)
	assert.True(t, res.Participant.IsMuted)
	assert.ElementsMatch(t, []string{"bob", "carol"}, res.Recipients)

	participants, err := f.list.Execute(ctx, ListVoiceParticipantsInput{ChannelID: "c1"})
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "alice", participants[0].UserID)
}

func TestJoinVoiceCancelsPendingRing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob"}})

	invs, err := f.ring.Execute(ctx, RingChannelInput{ChannelID: "c1", InitiatorID: "alice"})
	require.NoError(t, err)
	require.Len(t, invs, 1)

	_, err = f.join.Execute(ctx, JoinVoiceInput{ChannelID: "c1", UserID: "bob"})
	require.NoError(t, err)

	// The ring was accepted: gone from the store, dismiss fanned out to both
	// parties.
	_, err = f.dismiss.Execute(ctx, DismissRingInput{ChannelID: "c1", UserID: "bob"})
	assert.ErrorIs(t, err, call.ErrRingNotFound)

	dismissed := f.gateway.byType(event.TypeCallDismiss)
	require.Len(t, dismissed, 1)
	assert.ElementsMatch(t, []string{"alice", "bob"}, dismissed[0].recipients)
}

func TestLeaveVoiceClearsRingsWhenChannelEmpties(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{
		"c1": {"alice", "bob", "carol"},
		"d1": {"dave", "erin"},
	})

	_, err := f.join.Execute(ctx, JoinVoiceInput{ChannelID: "c1", UserID: "alice"})
	require.NoError(t, err)

	// Rings pending in c1 (created after the join by direct store write to
	// simulate the documented cross-key race) and in an unrelated channel d1.
	now := time.Now().UTC()
	require.NoError(t, f.rings.CreateAll(ctx, []call.RingInvitation{
		{ChannelID: "c1", RecipientID: "bob", InitiatorID: "alice", CreatedAt: now},
		{ChannelID: "c1", RecipientID: "carol", InitiatorID: "alice", CreatedAt: now},
	}))
	require.NoError(t, f.rings.CreateAll(ctx, []call.RingInvitation{
		{ChannelID: "d1", RecipientID: "erin", InitiatorID: "dave", CreatedAt: now},
	}))

	res, err := f.leave.Execute(ctx, LeaveVoiceInput{ChannelID: "c1", UserID: "alice"})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.ElementsMatch(t, []string{"bob", "carol"}, res.Recipients)

	// One dismiss event per cleared ring in c1, and d1's ring untouched.
	assert.Len(t, f.gateway.byType(event.TypeCallDismiss), 2)
	_, err = f.dismiss.Execute(ctx, DismissRingInput{ChannelID: "d1", UserID: "erin"})
	assert.NoError(t, err)
}

func TestLeaveVoiceByNonParticipantKeepsRings(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob", "mallory"}})

	// Channel is ringing but empty: no one has joined yet.
	invs, err := f.ring.Execute(ctx, RingChannelInput{ChannelID: "c1", InitiatorID: "alice"})
	require.NoError(t, err)
	require.Len(t, invs, 2)

	res, err := f.leave.Execute(ctx, LeaveVoiceInput{ChannelID: "c1", UserID: "mallory"})
	require.NoError(t, err)
	assert.False(t, res.Applied)

	// The pending rings survive the no-op leave.
	assert.Empty(t, f.gateway.byType(event.TypeCallDismiss))
	_, err = f.dismiss.Execute(ctx, DismissRingInput{ChannelID: "c1", UserID: "bob"})
	assert.NoError(t, err)
}

func TestUpdateVoiceState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob"}})

	_, err := f.join.Execute(ctx, JoinVoiceInput{ChannelID: "c1", UserID: "alice"})
	require.NoError(t, err)

	muted := true
	res, err := f.update.Execute(ctx, UpdateVoiceStateInput{ChannelID: "c1", UserID: "alice", IsMuted: &muted})
	require.NoError(t, err)
	assert.True(t, res.Applied)
	assert.True(t, res.Participant.IsMuted)
	assert.False(t, res.Participant.IsDeafened, "unset fields stay untouched")

	// Stale update after a leave: silent no-op, no resurrection.
	_, err = f.leave.Execute(ctx, LeaveVoiceInput{ChannelID: "c1", UserID: "alice"})
	require.NoError(t, err)

	res, err = f.update.Execute(ctx, UpdateVoiceStateInput{ChannelID: "c1", UserID: "alice", IsMuted: &muted})
	require.NoError(t, err)
	assert.False(t, res.Applied)

	participants, err := f.list.Execute(ctx, ListVoiceParticipantsInput{ChannelID: "c1"})
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestRingChannel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob", "carol"}})

	invs, err := f.ring.Execute(ctx, RingChannelInput{ChannelID: "c1", InitiatorID: "alice"})
	require.NoError(t, err)
	assert.Len(t, invs, 2, "one invitation per recipient other than the initiator")

	// One scheduled expiry per invitation, delayed by the ring timeout.
	require.Len(t, f.queue.tasks, 2)
	for i, task := range f.queue.tasks {
		assert.Equal(t, RingExpireTaskType, task.Type)
		assert.Equal(t, time.Minute, f.queue.opts[i].ProcessIn)
	}
}

func TestRingChannelRejectedWhenCallActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob"}})

	_, err := f.join.Execute(ctx, JoinVoiceInput{ChannelID: "c1", UserID: "bob"})
	require.NoError(t, err)

	_, err = f.ring.Execute(ctx, RingChannelInput{ChannelID: "c1", InitiatorID: "alice"})
	assert.ErrorIs(t, err, call.ErrCallActive)
}

func TestDismissRingIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob"}})

	_, err := f.ring.Execute(ctx, RingChannelInput{ChannelID: "c1", InitiatorID: "alice"})
	require.NoError(t, err)

	inv, err := f.dismiss.Execute(ctx, DismissRingInput{ChannelID: "c1", UserID: "bob"})
	require.NoError(t, err)
	assert.Equal(t, "alice", inv.InitiatorID)

	_, err = f.dismiss.Execute(ctx, DismissRingInput{ChannelID: "c1", UserID: "bob"})
	assert.ErrorIs(t, err, call.ErrRingNotFound)
}

func TestClearChannelRingsFansOutPerEntry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(map[string][]string{"c1": {"alice", "bob", "carol", "dave"}})

	invs, err := f.ring.Execute(ctx, RingChannelInput{ChannelID: "c1", InitiatorID: "alice"})
	require.NoError(t, err)
	require.Len(t, invs, 3)

	removed, err := f.clear.Execute(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, removed, 3)
	assert.Len(t, f.gateway.byType(event.TypeCallDismiss), 3)
}
