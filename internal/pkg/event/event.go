package event

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Type tags an event crossing the fanout boundary. Every tag has exactly one
// payload shape; Decode rejects anything it does not know.
type Type string

const (
	TypeVoiceJoin        Type = "VOICE_JOIN"
	TypeVoiceLeave       Type = "VOICE_LEAVE"
	TypeVoiceStateUpdate Type = "VOICE_STATE_UPDATE"
	TypeCallRing         Type = "CALL_RING"
	TypeCallDismiss      Type = "CALL_DISMISS"
	TypeMessageCreate    Type = "MESSAGE_CREATE"
)

var ErrUnknownType = errors.New("event: unknown event type")

// Event is the wire envelope: a tag plus the raw payload for that tag.
type Event struct {
	Type    Type            `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// VoiceJoinPayload announces a user entering a voice channel.
type VoiceJoinPayload struct {
	ChannelID  string `json:"channel_id"`
	UserID     string `json:"user_id"`
	IsMuted    bool   `json:"is_muted"`
	IsDeafened bool   `json:"is_deafened"`
}

// VoiceLeavePayload announces a user leaving a voice channel.
type VoiceLeavePayload struct {
	ChannelID string `json:"channel_id"`
	UserID    string `json:"user_id"`
}

// VoiceStateUpdatePayload carries the merged state after a mute/deafen change.
type VoiceStateUpdatePayload struct {
	ChannelID  string `json:"channel_id"`
	UserID     string `json:"user_id"`
	IsMuted    bool   `json:"is_muted"`
	IsDeafened bool   `json:"is_deafened"`
}

// CallRingPayload notifies a recipient that a call is ringing.
type CallRingPayload struct {
	ChannelID   string `json:"channel_id"`
	InitiatorID string `json:"initiator_id"`
	RecipientID string `json:"recipient_id"`
}

// CallDismissPayload notifies both parties that a ring ended (decline,
// accept, timeout, or channel cleanup).
type CallDismissPayload struct {
	ChannelID   string `json:"channel_id"`
	InitiatorID string `json:"initiator_id"`
	RecipientID string `json:"recipient_id"`
}

// MessageCreatePayload announces a newly persisted message.
type MessageCreatePayload struct {
	MessageID string  `json:"message_id"`
	ChannelID string  `json:"channel_id"`
	AuthorID  string  `json:"author_id"`
	Body      *string `json:"body,omitempty"`
	CreatedAt string  `json:"created_at"`
}

// New builds a tagged Event from a concrete payload. The tag is derived from
// the payload type, so an event can never carry a mismatched payload.
func New(payload any) (Event, error) {
	var t Type
	switch payload.(type) {
	case VoiceJoinPayload:
		t = TypeVoiceJoin
	case VoiceLeavePayload:
		t = TypeVoiceLeave
	case VoiceStateUpdatePayload:
		t = TypeVoiceStateUpdate
	case CallRingPayload:
		t = TypeCallRing
	case CallDismissPayload:
		t = TypeCallDismiss
	case MessageCreatePayload:
		t = TypeMessageCreate
	default:
		return Event{}, fmt.Errorf("event: unsupported payload type %T", payload)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("event: encode payload: %w", err)
	}
	return Event{Type: t, Payload: raw}, nil
}

// Decode returns the concrete payload for the event's tag. The switch is
// exhaustive over all known tags; unknown tags fail with ErrUnknownType.
func (e Event) Decode() (any, error) {
	switch e.Type {
	case TypeVoiceJoin:
		var p VoiceJoinPayload
		return p, json.Unmarshal(e.Payload, &p)
	case TypeVoiceLeave:
		var p VoiceLeavePayload
		return p, json.Unmarshal(e.Payload, &p)
	case TypeVoiceStateUpdate:
		var p VoiceStateUpdatePayload
		return p, json.Unmarshal(e.Payload, &p)
	case TypeCallRing:
		var p CallRingPayload
		return p, json.Unmarshal(e.Payload, &p)
	case TypeCallDismiss:
		var p CallDismissPayload
		return p, json.Unmarshal(e.Payload, &p)
	case TypeMessageCreate:
		var p MessageCreatePayload
		return p, json.Unmarshal(e.Payload, &p)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, e.Type)
	}
}
