package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
)

// ringRecord is the JSON shape stored at ring:{channelId}:{userId}.
type ringRecord struct {
	ChannelID   string    `json:"channel_id"`
	RecipientID string    `json:"recipient_id"`
	InitiatorID string    `json:"initiator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// RingStateStore is the typed wrapper over the shared key-value store for
// pending call invitations: one record per recipient plus a per-channel ring
// set. Reads apply the ring timeout as a lease: an expired-but-undeleted
// record is treated as absent (and physically deleted best-effort), so a
// crashed instance's lost expiry timer never leaves a ring answerable.
type RingStateStore struct {
	store   port.Store
	timeout time.Duration
	now     func() time.Time
}

func NewRingStateStore(store port.Store, timeout time.Duration) *RingStateStore {
	if timeout <= 0 {
		timeout = call.DefaultRingTimeout
	}
	return &RingStateStore{store: store, timeout: timeout, now: time.Now}
}

// Timeout returns the configured ring lease duration.
func (s *RingStateStore) Timeout() time.Duration { return s.timeout }

// CreateAll writes every invitation and its set membership in one atomic
// batch: either all per-recipient records exist afterwards or none do.
func (s *RingStateStore) CreateAll(ctx context.Context, invitations []call.RingInvitation) error {
	if len(invitations) == 0 {
		return nil
	}
	encoded := make(map[string]string, len(invitations))
	for _, inv := range invitations {
		raw, err := json.Marshal(ringRecord{
			ChannelID:   inv.ChannelID,
			RecipientID: inv.RecipientID,
			InitiatorID: inv.InitiatorID,
			CreatedAt:   inv.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("ring state: encode invitation: %w", err)
		}
		encoded[inv.RecipientID] = string(raw)
	}
	channelID := invitations[0].ChannelID
	return s.store.Batch(ctx, func(b port.Batch) {
		for recipientID, raw := range encoded {
			b.Set(ringKey(channelID, recipientID), raw, 0)
			b.SAdd(ringChannelKey(channelID), recipientID)
		}
	})
}

// Get returns the pending invitation for (channelID, userID), applying the
// expiry lease. Expired records come back as call.ErrRingNotFound after a
// best-effort physical delete.
func (s *RingStateStore) Get(ctx context.Context, channelID string, userID string) (*call.RingInvitation, error) {
	inv, err := s.read(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	if inv.Expired(s.now(), s.timeout) {
		_ = s.delete(ctx, channelID, userID)
		return nil, call.ErrRingNotFound
	}
	return inv, nil
}

// Remove deletes the invitation and returns the removed record, expired or
// not: the expiry sweep still needs the record to fan out its dismissal.
// Removing a missing invitation yields call.ErrRingNotFound, never an error
// state, so dismiss is idempotent.
func (s *RingStateStore) Remove(ctx context.Context, channelID string, userID string) (*call.RingInvitation, error) {
	inv, err := s.read(ctx, channelID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.delete(ctx, channelID, userID); err != nil {
		return nil, err
	}
	return inv, nil
}

// RemoveAll deletes every invitation in the channel's ring set and returns
// the removed records. Used when the last voice participant leaves.
func (s *RingStateStore) RemoveAll(ctx context.Context, channelID string) ([]call.RingInvitation, error) {
	recipientIDs, err := s.store.SMembers(ctx, ringChannelKey(channelID))
	if err != nil {
		return nil, err
	}
	out := make([]call.RingInvitation, 0, len(recipientIDs))
	for _, recipientID := range recipientIDs {
		inv, err := s.Remove(ctx, channelID, recipientID)
		if errors.Is(err, call.ErrRingNotFound) {
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, *inv)
	}
	_, _ = s.store.Del(ctx, ringChannelKey(channelID))
	return out, nil
}

func (s *RingStateStore) read(ctx context.Context, channelID string, userID string) (*call.RingInvitation, error) {
	raw, err := s.store.Get(ctx, ringKey(channelID, userID))
	if err != nil {
		if errors.Is(err, port.ErrMiss) {
			return nil, call.ErrRingNotFound
		}
		return nil, err
	}
	var rec ringRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("ring state: decode invitation: %w", err)
	}
	return &call.RingInvitation{
		ChannelID:   rec.ChannelID,
		RecipientID: rec.RecipientID,
		InitiatorID: rec.InitiatorID,
		CreatedAt:   rec.CreatedAt,
	}, nil
}

func (s *RingStateStore) delete(ctx context.Context, channelID string, userID string) error {
	return s.store.Batch(ctx, func(b port.Batch) {
		b.Del(ringKey(channelID, userID))
		b.SRem(ringChannelKey(channelID), userID)
	})
}
