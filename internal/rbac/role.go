// Package rbac holds the canonical authorization roles, the normalization of
// raw account role strings into them, and the mutation guard consulted before
// every administrative write.
package rbac

// Role is the canonical authorization role of an administrator.
type Role string

const (
	// RoleAdmin covers routine moderation and configuration work.
	RoleAdmin Role = "admin"
	// RoleSuperAdmin additionally grants visibility into the platform-wide
	// audit log.
	RoleSuperAdmin Role = "super_admin"
)

// rawKind classifies a raw role string before normalization. The
// classification never leaves this package; callers only see the canonical
// Role, so legacy sub-roles cannot be compared against anywhere else.
type rawKind int

const (
	rawKnown rawKind = iota
	rawLegacy
	rawOther
)

// legacyAdminRoles are pre-consolidation sub-roles that all fold into the
// single admin tier. They must never act as distinct authorization classes.
var legacyAdminRoles = map[string]struct{}{
	"content_admin":   {},
	"community_admin": {},
	"analyst":         {},
}

func classify(raw string) rawKind {
	switch raw {
	case string(RoleAdmin), string(RoleSuperAdmin):
		return rawKnown
	}
	if _, ok := legacyAdminRoles[raw]; ok {
		return rawLegacy
	}
	return rawOther
}

// Normalize maps a raw account role string to its canonical Role.
// ok is false when the string grants no administrative privilege (empty,
// "author", "reader", free-form user strings, anything unrecognized).
// This is the only place raw role strings become authorization roles.
func Normalize(raw string) (Role, bool) {
	switch classify(raw) {
	case rawKnown:
		return Role(raw), true
	case rawLegacy:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Valid reports whether r is one of the canonical roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}
