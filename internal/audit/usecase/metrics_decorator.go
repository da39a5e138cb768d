package usecase

import (
	"context"
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/metrics"
)

// auditLogUseCaseWithMetrics decorates AuditLogUseCase with metrics instrumentation.
type auditLogUseCaseWithMetrics struct {
	next    AuditLogUseCase
	metrics metrics.BusinessMetrics
}

// NewAuditLogUseCaseWithMetrics wraps an AuditLogUseCase with metrics recording.
func NewAuditLogUseCaseWithMetrics(useCase AuditLogUseCase, m metrics.BusinessMetrics) AuditLogUseCase {
	return &auditLogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *auditLogUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, a.metrics, metrics.DomainAudit, operation, start, err)
}

// Append records metrics for audit log writes.
func (a *auditLogUseCaseWithMetrics) Append(ctx context.Context, entry *auditDomain.Entry) error {
	start := time.Now()
	err := a.next.Append(ctx, entry)
	a.record(ctx, "audit_log_append", start, err)
	return err
}

// List records metrics for audit log queries.
func (a *auditLogUseCaseWithMetrics) List(
	ctx context.Context,
	filter auditDomain.Filter,
	offset, limit int,
) ([]*auditDomain.Entry, int, error) {
	start := time.Now()
	entries, total, err := a.next.List(ctx, filter, offset, limit)
	a.record(ctx, "audit_log_list", start, err)
	return entries, total, err
}

// VerifyIntegrity records metrics for signature verification runs.
func (a *auditLogUseCaseWithMetrics) VerifyIntegrity(
	ctx context.Context,
	from, to time.Time,
) (*auditDomain.IntegrityReport, error) {
	start := time.Now()
	report, err := a.next.VerifyIntegrity(ctx, from, to)
	a.record(ctx, "audit_log_verify", start, err)
	return report, err
}

// DeleteOlderThan records metrics for retention cleanup.
func (a *auditLogUseCaseWithMetrics) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	start := time.Now()
	count, err := a.next.DeleteOlderThan(ctx, days, dryRun)
	a.record(ctx, "audit_log_delete", start, err)
	return count, err
}
