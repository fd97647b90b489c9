package call

import "time"

// DefaultRingTimeout is how long a ring stays answerable before it is
// auto-dismissed.
const DefaultRingTimeout = 60 * time.Second

// RingInvitation is the ephemeral record of a pending voice-call invitation.
// Primary key: (ChannelID, RecipientID). Deleted on dismiss, on accept
// (recipient joins voice), on timeout, or en masse when the channel's voice
// participant set empties.
type RingInvitation struct {
	ChannelID   string    `json:"channel_id"`
	RecipientID string    `json:"recipient_id"`
	InitiatorID string    `json:"initiator_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the invitation has outlived timeout at the given
// instant. Expiry is a lease: an expired-but-undeleted record is treated as
// absent by readers, so a crashed instance's lost timer cannot leave a ring
// answerable forever.
func (r RingInvitation) Expired(now time.Time, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = DefaultRingTimeout
	}
	return now.Sub(r.CreatedAt) >= timeout
}
