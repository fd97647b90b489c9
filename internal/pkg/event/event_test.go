package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDerivesTagFromPayload(t *testing.T) {
	ev, err := New(VoiceJoinPayload{ChannelID: "channel-1", UserID: "alice", IsMuted: true})
	require.NoError(t, err)
	assert.Equal(t, TypeVoiceJoin, ev.Type)

	decoded, err := ev.Decode()
	require.NoError(t, err)
	p := decoded.(VoiceJoinPayload)
	assert.Equal(t, "alice", p.UserID)
	assert.True(t, p.IsMuted)
}

func TestNewRejectsUnknownPayload(t *testing.T) {
	_, err := New(struct{ X int }{1})
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownTag(t *testing.T) {
	ev := Event{Type: "PRESENCE_SYNC", Payload: json.RawMessage(`{}`)}
	_, err := ev.Decode()
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestEventSurvivesWireRoundTrip(t *testing.T) {
	ev, err := New(CallRingPayload{ChannelID: "channel-1", InitiatorID: "alice", RecipientID: "bob"})
	require.NoError(t, err)

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var back Event
	require.NoError(t, json.Unmarshal(raw, &back))

	decoded, err := back.Decode()
	require.NoError(t, err)
	assert.Equal(t, "bob", decoded.(CallRingPayload).RecipientID)
}
