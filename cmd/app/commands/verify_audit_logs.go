package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
)

// RunVerifyAuditLogs checks the HMAC signatures of the audit logs created
// within the given range. Any invalid signature makes the command fail.
func RunVerifyAuditLogs(
	ctx context.Context,
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
	writer io.Writer,
	startDate, endDate string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	start, err := parseDate(startDate)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	end, err := parseDate(endDate)
	if err != nil {
		return fmt.Errorf("invalid end date: %w", err)
	}

	if !end.After(start) {
		return fmt.Errorf("end date must be after start date")
	}

	logger.Info("verifying audit logs",
		slog.Time("start_date", start),
		slog.Time("end_date", end),
	)

	report, err := auditLogUseCase.VerifyIntegrity(ctx, start, end)
	if err != nil {
		return fmt.Errorf("failed to verify audit logs: %w", err)
	}

	if format == formatJSON {
		if err := outputVerifyJSON(writer, report); err != nil {
			return err
		}
	} else {
		outputVerifyText(writer, report, start, end)
	}

	logger.Info("verification completed",
		slog.Int("total_checked", report.Total),
		slog.Int("valid", report.Valid),
		slog.Int("invalid", report.Invalid),
		slog.Int("unsigned", report.Unsigned),
		slog.Int("unverifiable", report.Unverifiable),
	)

	if !report.Passed() {
		return fmt.Errorf("integrity check failed: %d invalid signature(s)", report.Invalid)
	}

	return nil
}

// parseDate accepts "YYYY-MM-DD" or "YYYY-MM-DD HH:MM:SS", interpreted as UTC.
func parseDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.DateTime, dateStr)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf(
			"invalid date format (expected YYYY-MM-DD or YYYY-MM-DD HH:MM:SS): %s",
			dateStr,
		)
	}

	return t, nil
}

func outputVerifyText(writer io.Writer, report *auditDomain.IntegrityReport, start, end time.Time) {
	_, _ = fmt.Fprintf(writer, "Audit Log Integrity Verification\n")
	_, _ = fmt.Fprintf(writer, "=================================\n\n")
	_, _ = fmt.Fprintf(writer,
		"Time Range: %s to %s\n\n",
		start.Format(time.DateTime),
		end.Format(time.DateTime),
	)

	_, _ = fmt.Fprintf(writer, "Total Checked:  %d\n", report.Total)
	_, _ = fmt.Fprintf(writer, "Valid:          %d\n", report.Valid)
	_, _ = fmt.Fprintf(writer, "Invalid:        %d\n", report.Invalid)
	_, _ = fmt.Fprintf(writer, "Unsigned:       %d (legacy)\n", report.Unsigned)
	_, _ = fmt.Fprintf(writer, "Unverifiable:   %d (unknown key)\n\n", report.Unverifiable)

	switch {
	case !report.Passed():
		_, _ = fmt.Fprintf(writer, "WARNING: %d log(s) failed integrity check!\n\n", report.Invalid)
		_, _ = fmt.Fprintf(writer, "Invalid Log IDs:\n")
		for _, id := range report.InvalidIDs {
			_, _ = fmt.Fprintf(writer, "  - %s\n", id)
		}
		_, _ = fmt.Fprintf(writer, "\nStatus: FAILED\n")
	case report.Total == 0:
		_, _ = fmt.Fprintf(writer, "Status: No logs found in specified time range\n")
	default:
		_, _ = fmt.Fprintf(writer, "Status: PASSED\n")
	}
}

func outputVerifyJSON(writer io.Writer, report *auditDomain.IntegrityReport) error {
	invalidIDs := make([]string, 0, len(report.InvalidIDs))
	for _, id := range report.InvalidIDs {
		invalidIDs = append(invalidIDs, id.String())
	}

	return writeJSON(writer, map[string]any{
		"total_checked":      report.Total,
		"valid_count":        report.Valid,
		"invalid_count":      report.Invalid,
		"unsigned_count":     report.Unsigned,
		"unverifiable_count": report.Unverifiable,
		"invalid_logs":       invalidIDs,
		"passed":             report.Passed(),
	})
}
