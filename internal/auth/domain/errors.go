package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrInvalidCredentials indicates a login with an unknown email or a wrong password.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid email or password")

	// ErrInvalidToken indicates a malformed, expired or wrongly signed session token.
	ErrInvalidToken = errors.Wrap(errors.ErrUnauthorized, "invalid or expired token")

	// ErrNotOwner indicates an actor acting on a resource created by someone else.
	ErrNotOwner = errors.Wrap(errors.ErrForbidden, "you may only act on resources you created")

	// ErrAdminRequired indicates an operation reserved to administrators.
	ErrAdminRequired = errors.Wrap(errors.ErrForbidden, "administrator role required")
)
