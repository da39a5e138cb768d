package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/validation"
)

// verifyBatchSize is the page size used while walking entries during verification.
const verifyBatchSize = auditDomain.MaxQueryLimit

// auditLogUseCase implements AuditLogUseCase.
type auditLogUseCase struct {
	auditLogRepo AuditLogRepository
	signer       AuditSigner
}

// Append completes and stores an entry: it assigns a UUIDv7 identifier, a
// microsecond-precision UTC timestamp and the request metadata found in ctx,
// then signs the result.
func (a *auditLogUseCase) Append(ctx context.Context, entry *auditDomain.Entry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.Must(uuid.NewV7())
	}
	if entry.Timestamp.IsZero() {
		// Databases keep microseconds; truncate so signatures survive the round trip.
		entry.Timestamp = time.Now().UTC().Truncate(time.Microsecond)
	}

	meta := auditDomain.RequestMetaFromContext(ctx)
	if entry.IPAddress == "" {
		entry.IPAddress = meta.IPAddress
	}
	if entry.UserAgent == "" {
		entry.UserAgent = meta.UserAgent
	}
	if entry.RequestID == "" {
		entry.RequestID = meta.RequestID
	}

	entry.KeyID = a.signer.KeyID()
	signature, err := a.signer.Sign(entry)
	if err != nil {
		return apperrors.Wrap(err, "failed to sign audit log")
	}
	entry.Signature = signature

	if err := a.auditLogRepo.Create(ctx, entry); err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}
	return nil
}

// List validates the range, then queries a page and the total count.
func (a *auditLogUseCase) List(
	ctx context.Context,
	filter auditDomain.Filter,
	offset, limit int,
) ([]*auditDomain.Entry, int, error) {
	if err := validation.ValidatePagination(offset, limit); err != nil {
		return nil, 0, err
	}

	entries, err := a.auditLogRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to list audit logs")
	}

	total, err := a.auditLogRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "failed to count audit logs")
	}

	return entries, total, nil
}

// VerifyIntegrity walks every entry in the range. Entries signed under another
// key id cannot be checked with the current key and are reported as unverifiable.
func (a *auditLogUseCase) VerifyIntegrity(
	ctx context.Context,
	from, to time.Time,
) (*auditDomain.IntegrityReport, error) {
	filter := auditDomain.Filter{CreatedAtFrom: &from, CreatedAtTo: &to}
	report := &auditDomain.IntegrityReport{InvalidIDs: make([]uuid.UUID, 0)}

	for offset := 0; ; offset += verifyBatchSize {
		entries, err := a.auditLogRepo.List(ctx, filter, offset, verifyBatchSize)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to list audit logs")
		}

		for _, entry := range entries {
			report.Total++
			switch {
			case len(entry.Signature) == 0:
				report.Unsigned++
			case entry.KeyID != a.signer.KeyID():
				report.Unverifiable++
			case a.signer.Verify(entry) != nil:
				report.Invalid++
				report.InvalidIDs = append(report.InvalidIDs, entry.ID)
			default:
				report.Valid++
			}
		}

		if len(entries) < verifyBatchSize {
			return report, nil
		}
	}
}

// DeleteOlderThan removes entries created more than days ago.
func (a *auditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	if days < 0 {
		return 0, apperrors.Wrap(apperrors.ErrInvalidInput, "days must be zero or positive")
	}

	before := time.Now().UTC().AddDate(0, 0, -days)
	count, err := a.auditLogRepo.DeleteOlderThan(ctx, before, dryRun)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}
	return count, nil
}

// NewAuditLogUseCase creates a new AuditLogUseCase with the provided dependencies.
func NewAuditLogUseCase(auditLogRepo AuditLogRepository, signer AuditSigner) AuditLogUseCase {
	return &auditLogUseCase{
		auditLogRepo: auditLogRepo,
		signer:       signer,
	}
}
