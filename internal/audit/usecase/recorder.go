package usecase

import (
	"context"
	"log/slog"
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
)

// DefaultRecordTimeout bounds a single audit append.
const DefaultRecordTimeout = 3 * time.Second

// Recorder records audit entries on a best-effort basis.
//
// Audit failures must never abort or roll back the operation they describe, so
// Record has no return value. This is the single place where the error returned
// by AuditSink.Append is dropped, after being logged.
//
// Each append runs under its own deadline, detached from the caller's
// cancellation, so a slow or exhausted audit store delays the operation by at
// most timeout and a disconnected client still leaves its trail.
type Recorder struct {
	sink    AuditSink
	logger  *slog.Logger
	timeout time.Duration
}

// NewRecorder creates a Recorder over sink using DefaultRecordTimeout.
func NewRecorder(sink AuditSink, logger *slog.Logger) *Recorder {
	return &Recorder{sink: sink, logger: logger, timeout: DefaultRecordTimeout}
}

// Record appends entry and logs any failure locally.
func (r *Recorder) Record(ctx context.Context, entry *auditDomain.Entry) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
	defer cancel()

	if err := r.sink.Append(ctx, entry); err != nil {
		r.logger.Warn("failed to record audit log",
			slog.String("action", string(entry.Action)),
			slog.String("resource", string(entry.Resource)),
			slog.String("resource_id", entry.ResourceID),
			slog.Any("error", err),
		)
	}
}
