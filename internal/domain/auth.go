package domain

import "github.com/google/uuid"

// Role represents the caller's role within an organization
type Role string

// Role constants
const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// AuthContext carries the caller's identity for authorization checks.
// A nil AuthContext means an outer layer has already authorized the
// request and organization checks are skipped.
type AuthContext struct {
	UserID          uuid.UUID
	OrganizationIDs []uuid.UUID
	Role            Role
}

// HasOrganization reports whether the caller belongs to the given organization
func (a *AuthContext) HasOrganization(orgID uuid.UUID) bool {
	for _, id := range a.OrganizationIDs {
		if id == orgID {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller has the admin role.
// An empty role means no role was supplied with the token.
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}
