package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Staff errors.
var (
	// ErrStaffNotFound indicates the staff account does not exist.
	ErrStaffNotFound = errors.Wrap(errors.ErrNotFound, "staff not found")

	// ErrStaffAlreadyExists indicates an account with the same email already exists.
	ErrStaffAlreadyExists = errors.Wrap(errors.ErrConflict, "staff already exists")

	// ErrCannotDeleteSelf indicates an admin deleting their own account.
	ErrCannotDeleteSelf = errors.Wrap(errors.ErrForbidden, "Cannot delete your own account")

	// ErrInvalidRole indicates a role other than ADMIN or USER.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "role must be ADMIN or USER")
)
