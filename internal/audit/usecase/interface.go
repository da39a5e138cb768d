// Package usecase implements recording, querying and verification of audit entries.
package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
)

// AuditSink is the append-only destination of audit entries.
type AuditSink interface {
	// Append persists entry. The error is returned to the caller, which decides
	// whether a failure matters; the Recorder deliberately discards it.
	Append(ctx context.Context, entry *auditDomain.Entry) error
}

// AuditLogRepository defines the interface for audit log persistence.
type AuditLogRepository interface {
	// Create stores a new entry. Implementations must not join a caller transaction.
	Create(ctx context.Context, entry *auditDomain.Entry) error

	// List returns entries matching filter ordered newest first.
	List(ctx context.Context, filter auditDomain.Filter, offset, limit int) ([]*auditDomain.Entry, error)

	// Count returns the number of entries matching filter.
	Count(ctx context.Context, filter auditDomain.Filter) (int, error)

	// DeleteOlderThan removes entries created before the cutoff, or only counts
	// them when dryRun is true. Returns the affected number of entries.
	DeleteOlderThan(ctx context.Context, before time.Time, dryRun bool) (int64, error)
}

// AuditSigner signs and verifies entries.
type AuditSigner interface {
	KeyID() string
	Sign(entry *auditDomain.Entry) ([]byte, error)
	Verify(entry *auditDomain.Entry) error
}

// AuditLogUseCase defines the audit operations exposed to handlers and commands.
type AuditLogUseCase interface {
	AuditSink

	// List returns one page of entries matching filter and the total number of matches.
	// A limit above MaxQueryLimit fails with ErrLimitExceeded.
	List(
		ctx context.Context,
		filter auditDomain.Filter,
		offset, limit int,
	) ([]*auditDomain.Entry, int, error)

	// VerifyIntegrity checks the signatures of the entries created within [from, to].
	VerifyIntegrity(ctx context.Context, from, to time.Time) (*auditDomain.IntegrityReport, error)

	// DeleteOlderThan removes entries older than the given number of days.
	DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error)
}
