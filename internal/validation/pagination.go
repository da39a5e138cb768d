package validation

import (
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MaxPageLimit is the largest page size any list operation accepts.
const MaxPageLimit = 1000

var (
	// ErrLimitExceeded indicates a page size above MaxPageLimit. Oversized limits
	// are rejected, never clamped.
	ErrLimitExceeded = apperrors.Wrap(apperrors.ErrInvalidRange, "Limit cannot exceed 1000")

	// ErrInvalidPagination indicates a non-positive limit or a negative offset.
	ErrInvalidPagination = apperrors.Wrap(
		apperrors.ErrInvalidRange,
		"limit must be positive and offset non-negative",
	)
)

// ValidatePagination checks offset and limit against the accepted bounds.
func ValidatePagination(offset, limit int) error {
	if limit > MaxPageLimit {
		return ErrLimitExceeded
	}
	if limit < 1 || offset < 0 {
		return ErrInvalidPagination
	}
	return nil
}
