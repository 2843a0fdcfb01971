package auth

import "github.com/CoaxnTechnology/Betogether-API/internal/domain"

// PrincipalKind tags the resolved identity variant.
type PrincipalKind string

const (
	PrincipalGuest PrincipalKind = "guest"
	PrincipalUser  PrincipalKind = "user"
	PrincipalAdmin PrincipalKind = "admin"
)

// Principal is the identity resolved from a valid token. It is decided once
// at resolution time; downstream guards branch on the variant instead of
// re-inspecting raw claims. Principals are never persisted.
type Principal struct {
	Kind PrincipalKind

	// GuestID is the opaque subject of a guest token. Guests have no
	// backing record.
	GuestID string

	// User and SubRole are set for the user variant. SubRole preserves the
	// access/refresh distinction so call sites can reject long-lived
	// refresh credentials for state-changing operations.
	User    *domain.User
	SubRole domain.TokenKind

	// Admin, Role and IsAdmin are set for the admin variant. Role may be
	// empty on older tokens that only carry is_admin.
	Admin   *domain.Admin
	Role    string
	IsAdmin bool
}

// IsGuest reports whether the principal is a guest session.
func (p *Principal) IsGuest() bool {
	return p != nil && p.Kind == PrincipalGuest
}

// IsUser reports whether the principal is a registered user, regardless of
// access/refresh sub-role.
func (p *Principal) IsUser() bool {
	return p != nil && p.Kind == PrincipalUser
}

// IsAccessUser reports whether the principal is a user holding a short-lived
// access credential.
func (p *Principal) IsAccessUser() bool {
	return p.IsUser() && p.SubRole == domain.TokenKindUserAccess
}

// HasAdminAccess reports whether the principal may perform admin operations:
// either the admin variant or any principal whose token carried is_admin.
func (p *Principal) HasAdminAccess() bool {
	if p == nil {
		return false
	}
	return p.Kind == PrincipalAdmin || p.IsAdmin
}
