package guild

import "errors"

// Domain-level errors for guild lookups and authorization
var (
	ErrGuildNotFound     = errors.New("guild: guild not found")
	ErrChannelNotFound   = errors.New("guild: channel not found")
	ErrMissingPermission = errors.New("guild: missing permission")
)

// Role carries a guild-wide permission grant. Position resolves precedence
// only for display purposes; all held roles contribute their bits equally
// during resolution.
type Role struct {
	ID          string
	Name        string
	Permissions Permissions
	Position    int
}

// Member is a user's membership in a guild together with the roles they hold.
// The "everyone" role (id == guild id) is implicit and never listed here.
type Member struct {
	UserID  string
	RoleIDs []string
}

// HasRole tells whether the member explicitly holds the given role.
func (m *Member) HasRole(roleID string) bool {
	if m == nil {
		return false
	}
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// Guild aggregates the data permission resolution reads: the role list and
// the member list. Invariant: exactly one role has id == guild id (the
// "everyone" role); every member implicitly has it.
type Guild struct {
	ID      string
	OwnerID string
	Roles   []Role
	Members []Member
}

// EveryoneRole returns the guild's implicit base role, or nil if the guild
// data is malformed.
func (g *Guild) EveryoneRole() *Role {
	if g == nil {
		return nil
	}
	for i := range g.Roles {
		if g.Roles[i].ID == g.ID {
			return &g.Roles[i]
		}
	}
	return nil
}

// Member returns the membership record for userID, or nil if the user does
// not belong to this guild.
func (g *Guild) Member(userID string) *Member {
	if g == nil {
		return nil
	}
	for i := range g.Members {
		if g.Members[i].UserID == userID {
			return &g.Members[i]
		}
	}
	return nil
}

// Role returns the role with the given id, or nil.
func (g *Guild) Role(roleID string) *Role {
	if g == nil {
		return nil
	}
	for i := range g.Roles {
		if g.Roles[i].ID == roleID {
			return &g.Roles[i]
		}
	}
	return nil
}

// BasePermissions computes the guild-level effective permission for userID:
// the "everyone" role's bits OR'd with every other role the member holds.
// There is no per-role deny at the guild level; only overwrites deny.
// A user who is not a member resolves to zero.
func (g *Guild) BasePermissions(userID string) Permissions {
	member := g.Member(userID)
	if member == nil {
		return 0
	}

	var effective Permissions
	if everyone := g.EveryoneRole(); everyone != nil {
		effective = everyone.Permissions
	}
	for _, roleID := range member.RoleIDs {
		if role := g.Role(roleID); role != nil {
			effective |= role.Permissions
		}
	}
	return effective
}
