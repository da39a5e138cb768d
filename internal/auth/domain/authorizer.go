package domain

import (
	"github.com/google/uuid"
)

// The authorizer is a set of pure decisions over an actor and a resource owner.
// Composite rules, such as refusing to delete one's own staff account, are
// applied by the services that call these functions.

// CanRead reports whether actor may read a resource created by ownerID.
func CanRead(actor *Actor, ownerID uuid.UUID) bool {
	return isAdminOrOwner(actor, ownerID)
}

// CanDecrypt reports whether actor may see the plaintext of a resource created by ownerID.
func CanDecrypt(actor *Actor, ownerID uuid.UUID) bool {
	return isAdminOrOwner(actor, ownerID)
}

// CanMutate reports whether actor may update or delete a resource created by ownerID.
func CanMutate(actor *Actor, ownerID uuid.UUID) bool {
	return isAdminOrOwner(actor, ownerID)
}

// CanExport reports whether actor may export data. Any authenticated actor may;
// the exported set is filtered to the records the actor can read.
func CanExport(actor *Actor) bool {
	return actor != nil && actor.Role.IsValid()
}

// CanManageStaff reports whether actor may list, create, modify or delete staff accounts.
func CanManageStaff(actor *Actor) bool {
	return actor.IsAdmin()
}

func isAdminOrOwner(actor *Actor, ownerID uuid.UUID) bool {
	if actor == nil {
		return false
	}
	return actor.Role == RoleAdmin || (actor.ID != uuid.Nil && actor.ID == ownerID)
}
