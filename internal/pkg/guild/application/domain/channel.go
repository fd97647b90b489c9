package guild

// ChannelType distinguishes guild channels from direct-message channels.
// 0=text, 1=voice, 2=category, 3=dm, 4=group dm
type ChannelType int16

const (
	ChannelTypeText     ChannelType = 0
	ChannelTypeVoice    ChannelType = 1
	ChannelTypeCategory ChannelType = 2
	ChannelTypeDM       ChannelType = 3
	ChannelTypeGroupDM  ChannelType = 4
)

// OverwriteTarget disambiguates what a permission overwrite's TargetID names.
type OverwriteTarget int16

const (
	OverwriteTargetRole   OverwriteTarget = 0
	OverwriteTargetMember OverwriteTarget = 1
)

// PermissionOverwrite adjusts base permissions for one target (a role or a
// member) within one channel. Allow and Deny should be disjoint by
// construction; resolution tolerates violation by treating deny as
// authoritative (see ApplyOverwrite).
type PermissionOverwrite struct {
	ChannelID  string
	TargetID   string
	TargetType OverwriteTarget
	Allow      Permissions
	Deny       Permissions
}

// Channel is the channel view permission resolution reads: identity, parent
// linkage for category sync, the overwrite rows, and the recipient list for
// direct-message channels. Parent is hydrated (with its own overwrites) when
// ParentID is set.
type Channel struct {
	ID           string
	GuildID      string // empty for DM channels
	OwnerID      string // empty unless the channel has an owner
	ParentID     *string
	IsSynced     bool
	Type         ChannelType
	Overwrites   []PermissionOverwrite
	Parent       *Channel
	RecipientIDs []string // DM/group channels only
}

// IsDirect tells whether this channel is a DM or group DM, i.e. recipient
// membership replaces permission math.
func (c *Channel) IsDirect() bool {
	return c != nil && (c.Type == ChannelTypeDM || c.Type == ChannelTypeGroupDM)
}

// HasRecipient tells whether userID is in the direct channel's recipient list.
func (c *Channel) HasRecipient(userID string) bool {
	if c == nil {
		return false
	}
	for _, id := range c.RecipientIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// EffectiveOverwrites returns the overwrite set resolution must read: the
// parent's rows when the channel is synced to its category, otherwise the
// channel's own. A synced channel's own rows are orphaned and ignored until
// it is un-synced. A channel flagged synced without a hydrated parent falls
// back to its own rows (the writer enforces that a parentless channel cannot
// be synced).
func (c *Channel) EffectiveOverwrites() []PermissionOverwrite {
	if c == nil {
		return nil
	}
	if c.IsSynced && c.Parent != nil {
		return c.Parent.Overwrites
	}
	return c.Overwrites
}
