package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MySQLAuditLogRepository implements audit log persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLAuditLogRepository struct {
	db *sql.DB
}

func mysqlPlaceholder(int) string {
	return "?"
}

func mysqlUUIDArg(id uuid.UUID) (any, error) {
	return id.MarshalBinary()
}

// Create inserts a new entry. A nil user id is stored as NULL.
func (m *MySQLAuditLogRepository) Create(ctx context.Context, entry *auditDomain.Entry) error {
	details, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}

	id, err := entry.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal audit log id")
	}

	var userID any
	if entry.UserID != uuid.Nil {
		userID, err = entry.UserID.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal audit log user_id")
		}
	}

	query := `INSERT INTO audit_logs (id, user_id, user_email, user_role, action, resource, resource_id,
			  details, ip_address, user_agent, request_id, created_at, success, error_message, signature, kid)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = m.db.ExecContext(
		ctx,
		query,
		id,
		userID,
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
func (m *MySQLAuditLogRepository) List(
	ctx context.Context,
	filter auditDomain.Filter,
	offset, limit int,
) ([]*auditDomain.Entry, error) {
	where, args, err := whereClause(filter, mysqlPlaceholder, mysqlUUIDArg)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + auditColumns + ` FROM audit_logs` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := m.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list audit logs")
	}
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*auditDomain.Entry, 0)
	for rows.Next() {
		var entry auditDomain.Entry
		var id, userID []byte
		var action, resource string
		var scanned scannedEntry

		err := rows.Scan(
			&id,
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

		if err := entry.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal audit log id")
		}
		if len(userID) > 0 {
			if err := entry.UserID.UnmarshalBinary(userID); err != nil {
				return nil, apperrors.Wrap(err, "failed to unmarshal audit log user_id")
			}
		}
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
func (m *MySQLAuditLogRepository) Count(ctx context.Context, filter auditDomain.Filter) (int, error) {
	where, args, err := whereClause(filter, mysqlPlaceholder, mysqlUUIDArg)
	if err != nil {
		return 0, err
	}

	var count int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM audit_logs`+where, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count audit logs")
	}
	return count, nil
}

// DeleteOlderThan removes entries created before the cutoff, or counts them in dry-run mode.
func (m *MySQLAuditLogRepository) DeleteOlderThan(
	ctx context.Context,
	before time.Time,
	dryRun bool,
) (int64, error) {
	if dryRun {
		var count int64
		query := `SELECT COUNT(*) FROM audit_logs WHERE created_at < ?`
		if err := m.db.QueryRowContext(ctx, query, before.UTC()).Scan(&count); err != nil {
			return 0, apperrors.Wrap(err, "failed to count audit logs")
		}
		return count, nil
	}

	result, err := m.db.ExecContext(ctx, `DELETE FROM audit_logs WHERE created_at < ?`, before.UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete audit logs")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

// NewMySQLAuditLogRepository creates a new MySQL audit log repository.
func NewMySQLAuditLogRepository(db *sql.DB) *MySQLAuditLogRepository {
	return &MySQLAuditLogRepository{db: db}
}
