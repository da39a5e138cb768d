// Package domain defines actors, roles and the access authorizer.
package domain

import (
	"github.com/google/uuid"
)

// Role is the sole authorization axis of staff accounts.
type Role string

const (
	// RoleAdmin bypasses ownership checks and may manage staff.
	RoleAdmin Role = "ADMIN"
	// RoleUser may only act on resources it created.
	RoleUser Role = "USER"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID    uuid.UUID
	Email string
	Role  Role
}

// IsAdmin reports whether the actor holds the ADMIN role.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// OwnershipTag returns "admin" when the actor acts through the admin bypass and
// "owner" otherwise. Recorded on decrypt audit entries as decryptedBy.
func (a *Actor) OwnershipTag(ownerID uuid.UUID) string {
	if a.ID != ownerID && a.IsAdmin() {
		return "admin"
	}
	return "owner"
}
