package call

import "errors"

// Domain-level errors for call behaviors
var (
	ErrParticipantNotFound = errors.New("call: voice participant not found")
	ErrRingNotFound        = errors.New("call: ring invitation not found")
	ErrCallActive          = errors.New("call: channel already has active voice participants")
)

// VoiceParticipant is a user's presence in a voice channel.
// Primary key: (ChannelID, UserID). Created on join, mutated on state
// update, deleted on leave.
type VoiceParticipant struct {
	ChannelID  string `json:"channel_id"`
	UserID     string `json:"user_id"`
	IsMuted    bool   `json:"is_muted"`
	IsDeafened bool   `json:"is_deafened"`
}

// VoiceStateUpdate is a partial mute/deafen change; nil fields are left
// untouched by Merge.
type VoiceStateUpdate struct {
	IsMuted    *bool
	IsDeafened *bool
}

// Merge returns the participant with the update's non-nil fields applied.
func (p VoiceParticipant) Merge(u VoiceStateUpdate) VoiceParticipant {
	if u.IsMuted != nil {
		p.IsMuted = *u.IsMuted
	}
	if u.IsDeafened != nil {
		p.IsDeafened = *u.IsDeafened
	}
	return p
}
