package domain

import (
	"github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/validation"
)

// Audit errors.
var (
	// ErrLimitExceeded indicates a query limit above MaxQueryLimit.
	ErrLimitExceeded = validation.ErrLimitExceeded

	// ErrInvalidPagination indicates a non-positive limit or a negative offset.
	ErrInvalidPagination = validation.ErrInvalidPagination

	// ErrSignatureInvalid indicates an entry whose signature does not match its content.
	ErrSignatureInvalid = errors.New("audit log signature is invalid")
)
