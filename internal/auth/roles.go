package auth

import "github.com/accumanage/portal/internal/domain"

// RoleSet is the set of roles an operation accepts.
type RoleSet map[domain.Role]struct{}

// NewRoleSet builds a set from roles.
func NewRoleSet(roles ...domain.Role) RoleSet {
	set := make(RoleSet, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return set
}

var (
	// AnyRole accepts every known role.
	AnyRole = NewRoleSet(domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleUser)
	// PrivilegedRoles gates the admin console and general admin endpoints.
	PrivilegedRoles = NewRoleSet(domain.RoleSuperadmin, domain.RoleAdmin)
	// SuperadminOnly gates direct data mutations.
	SuperadminOnly = NewRoleSet(domain.RoleSuperadmin)
)

// HasRole reports whether claims carry a known role contained in required.
func HasRole(claims *Claims, required RoleSet) bool {
	if claims == nil || !claims.Role.Valid() {
		return false
	}
	_, ok := required[claims.Role]
	return ok
}
