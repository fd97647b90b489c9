package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Laevateinn17/viscord-sub000/internal/infrastructure/cache/port"
	call "github.com/Laevateinn17/viscord-sub000/internal/pkg/call/application/domain"
)

// voiceParticipantRecord is the JSON shape stored at voice:{channelId}:{userId}.
// Kept separate from the domain type to avoid JSON tags on domain structs.
type voiceParticipantRecord struct {
	ChannelID  string `json:"channel_id"`
	UserID     string `json:"user_id"`
	IsMuted    bool   `json:"is_muted"`
	IsDeafened bool   `json:"is_deafened"`
}

// VoiceStateStore is the typed wrapper over the shared key-value store for
// voice presence: one record per participant plus a per-channel membership
// set. Record writes and set mutations for one participant go through a
// single atomic batch.
type VoiceStateStore struct {
	store port.Store
}

func NewVoiceStateStore(store port.Store) *VoiceStateStore {
	return &VoiceStateStore{store: store}
}

// Save writes the participant record and registers the user in the channel's
// membership set atomically.
func (s *VoiceStateStore) Save(ctx context.Context, p call.VoiceParticipant) error {
	raw, err := json.Marshal(voiceParticipantRecord{
		ChannelID:  p.ChannelID,
		UserID:     p.UserID,
		IsMuted:    p.IsMuted,
		IsDeafened: p.IsDeafened,
	})
	if err != nil {
		return fmt.Errorf("voice state: encode participant: %w", err)
	}
	return s.store.Batch(ctx, func(b port.Batch) {
		b.Set(voiceParticipantKey(p.ChannelID, p.UserID), string(raw), 0)
		b.SAdd(voiceChannelKey(p.ChannelID), p.UserID)
	})
}

// Get returns the participant record, or call.ErrParticipantNotFound.
func (s *VoiceStateStore) Get(ctx context.Context, channelID string, userID string) (*call.VoiceParticipant, error) {
	raw, err := s.store.Get(ctx, voiceParticipantKey(channelID, userID))
	if err != nil {
		if errors.Is(err, port.ErrMiss) {
			return nil, call.ErrParticipantNotFound
		}
		return nil, err
	}
	var rec voiceParticipantRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("voice state: decode participant: %w", err)
	}
	return &call.VoiceParticipant{
		ChannelID:  rec.ChannelID,
		UserID:     rec.UserID,
		IsMuted:    rec.IsMuted,
		IsDeafened: rec.IsDeafened,
	}, nil
}

// Remove deletes the participant record and set membership atomically and
// returns how many participants remain in the channel, plus whether a record
// actually existed: a leave for a user who never joined must not trigger the
// caller's empty-channel cleanup. When the set empties it is deleted outright
// so the whole channel leaves the store.
func (s *VoiceStateStore) Remove(ctx context.Context, channelID string, userID string) (remaining int64, removed bool, err error) {
	_, err = s.store.Get(ctx, voiceParticipantKey(channelID, userID))
	switch {
	case errors.Is(err, port.ErrMiss):
		removed = false
	case err != nil:
		return 0, false, err
	default:
		removed = true
	}

	err = s.store.Batch(ctx, func(b port.Batch) {
		b.Del(voiceParticipantKey(channelID, userID))
		b.SRem(voiceChannelKey(channelID), userID)
	})
	if err != nil {
		return 0, false, err
	}
	remaining, err = s.store.SCard(ctx, voiceChannelKey(channelID))
	if err != nil {
		return 0, false, err
	}
	if remaining == 0 {
		// Best-effort cleanup; an empty or missing set reads the same.
		_, _ = s.store.Del(ctx, voiceChannelKey(channelID))
	}
	return remaining, removed, nil
}

// Participants returns all current participants of the channel. Members whose
// record vanished between the set read and the record read are skipped.
func (s *VoiceStateStore) Participants(ctx context.Context, channelID string) ([]call.VoiceParticipant, error) {
	userIDs, err := s.store.SMembers(ctx, voiceChannelKey(channelID))
	if err != nil {
		return nil, err
	}
	out := make([]call.VoiceParticipant, 0, len(userIDs))
	for _, userID := range userIDs {
		p, err := s.Get(ctx, channelID, userID)
		if errors.Is(err, call.ErrParticipantNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

// Count returns the size of the channel's participant set.
func (s *VoiceStateStore) Count(ctx context.Context, channelID string) (int64, error) {
	return s.store.SCard(ctx, voiceChannelKey(channelID))
}
