package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Client errors.
var (
	// ErrClientNotFound indicates the client does not exist.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrNotCreator indicates a non-admin actor changing a client created by someone else.
	ErrNotCreator = errors.Wrap(errors.ErrForbidden, "you may only modify clients you created")
)
