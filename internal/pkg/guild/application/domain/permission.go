package guild

// Permissions is a wide bitmask gating channel actions.
type Permissions uint64

const (
	PermissionViewChannels Permissions = 1 << iota
	PermissionSendMessages
	PermissionManageMessages
	PermissionManageChannels
	PermissionManageRoles
	PermissionCreateInvites
	PermissionConnect
	PermissionSpeak
	PermissionMuteMembers
	PermissionDeafenMembers
	PermissionManageGuild
)

// Has reports whether every bit in need is present.
func (p Permissions) Has(need Permissions) bool {
	return p&need == need
}

// ApplyOverwrite layers one allow/deny pair onto a running bitmask. Deny is
// applied last so that it stays authoritative should a writer ever store an
// overwrite where allow and deny overlap (they are disjoint by construction).
func ApplyOverwrite(p Permissions, allow Permissions, deny Permissions) Permissions {
	return (p | allow) &^ deny
}

// ResolveChannelPermissions computes the effective permission bitmask for a
// (user, channel) pair. It is pure: everything it reads is in the hydrated
// aggregates, and results are never cached across calls.
//
// Precedence, later layers winning ties:
//
//	base roles < everyone overwrite < merged role overwrites < member overwrite
//
// The channel owner short-circuits to the guild-level effective permission
// and is never narrowed by overwrites. A channel that does not belong to the
// given guild, or a missing channel, resolves to zero.
func ResolveChannelPermissions(g *Guild, ch *Channel, userID string) Permissions {
	if g == nil || ch == nil || ch.GuildID != g.ID {
		return 0
	}

	effective := g.BasePermissions(userID)

	if ch.OwnerID != "" && ch.OwnerID == userID {
		return effective
	}

	overwrites := ch.EffectiveOverwrites()
	member := g.Member(userID)

	// Everyone overwrite: targets the implicit role whose id is the guild id.
	for _, ow := range overwrites {
		if ow.TargetType == OverwriteTargetRole && ow.TargetID == g.ID {
			effective = ApplyOverwrite(effective, ow.Allow, ow.Deny)
		}
	}

	// Role overwrites: union all rows targeting roles the member holds, then
	// apply once. No per-role ordering.
	var allow, deny Permissions
	for _, ow := range overwrites {
		if ow.TargetType != OverwriteTargetRole || ow.TargetID == g.ID {
			continue
		}
		if member.HasRole(ow.TargetID) {
			allow |= ow.Allow
			deny |= ow.Deny
		}
	}
	if allow != 0 || deny != 0 {
		effective = ApplyOverwrite(effective, allow, deny)
	}

	// Member overwrite wins over everything above.
	for _, ow := range overwrites {
		if ow.TargetType == OverwriteTargetMember && ow.TargetID == userID {
			effective = ApplyOverwrite(effective, ow.Allow, ow.Deny)
		}
	}

	return effective
}
