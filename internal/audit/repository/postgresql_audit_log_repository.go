package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// PostgreSQLAuditLogRepository implements audit log persistence for PostgreSQL.
type PostgreSQLAuditLogRepository struct {
	db *sql.DB
}

func postgresPlaceholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func postgresUUIDArg(id uuid.UUID) (any, error) {
	return id, nil
}

// Create inserts a new entry. A nil user id is stored as NULL.
func (p *PostgreSQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}

	query := `INSERT INTO audit_logs (id, user_id, user_email, user_role, action, resource, resource_id,
			  details, ip_address, user_agent, request_id, created_at, success, error_message, signature, kid)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = p.db.ExecContext(
		ctx,
		query,
		entry.ID,
		uuid.NullUUID{UUID: entry.UserID, Valid: entry.UserID != uuid.Nil},
		entry.UserEmail,
		entry.UserRole,
		string(entry.Action),
		string(entry.Resource),
		nullString(entry.ResourceID),
		details,
		nullString(entry.IPAddress),
		nullString(entry.UserAgent),
		nullString(entry.RequestID),
		entry.Timestamp,
		entry.Success,
		nullString(entry.ErrorMessage),
		entry.Signature,
		entry.KeyID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create audit log")
	}

	return nil
}

// List retrieves entries matching filter ordered by created_at descending.
func (p *PostgreSQLAuditLogRepository) List(
	ctx context.Context,
	filter auditDomain.Filter,
	offset, limit int,
) ([]*auditDomain.Entry, error) {
	where, args, err := whereClause(filter, postgresPlaceholder, postgresUUIDArg)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM audit_logs%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		auditColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := p.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.Entry, 0)
	for rows.Next() {
		var entry auditDomain.Entry
		var userID uuid.NullUUID
		var action, resource string
		var scanned scannedEntry

		err := rows.Scan(
			&entry.ID,
			&userID,
			&entry.UserEmail,
			&entry.UserRole,
			&action,
			&resource,
			&scanned.resourceID,
			&scanned.details,
			&scanned.ipAddress,
			&scanned.userAgent,
			&scanned.requestID,
			&entry.Timestamp,
			&entry.Success,
			&scanned.errorMessage,
			&entry.Signature,
			&entry.KeyID,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan audit log")
		}

		entry.UserID = userID.UUID
		entry.Action = auditDomain.Action(action)
		entry.Resource = auditDomain.Resource(resource)
		if err := scanned.apply(&entry); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate audit logs")
	}

	return entries, nil
}

// Count returns the number of entries matching filter.
func (p *PostgreSQLAuditLogRepository) Count(ctx context.Context, filter auditDomain.Filter) (int, error) {
	where, args, err := whereClause(filter, postgresPlaceholder, postgresUUIDArg)
	if err != nil {
		return 0, err
	}

	var count int
	if err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit logs")
	}
	return count, nil
}

// DeleteOlderThan removes entries created before the cutoff, or counts them in dry-run mode.
func (p *PostgreSQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	before time.Time,
	dryRun bool,
) (int64, error) {
	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM audit_logs WHERE created_at < $1`
		if err := p.db.QueryRowContext(ctx, query, before.UTC()).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit logs")
		}
		return count, nil
	}

	result, err := p.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < $1`, before.UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

// NewPostgreSQLAuditLogRepository creates a new PostgreSQL audit log repository.
func NewPostgreSQLAuditLogRepository(db *sql.DB) *PostgreSQLAuditLogRepository {
	return &PostgreSQLAuditLogRepository{db: db}
}
