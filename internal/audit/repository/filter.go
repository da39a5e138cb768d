// Package repository implements audit log persistence for PostgreSQL and MySQL.
//
// Audit repositories always write through the plain *sql.DB handle and never
// join a transaction found in the context, so a failing audit insert cannot
// abort the operation it describes.
package repository

import (
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// auditColumns lists the selected columns in scan order.
const auditColumns = `id, user_id, user_email, user_role, action, resource, resource_id, details,
	ip_address, user_agent, request_id, created_at, success, error_message, signature, kid`

// whereClause builds the WHERE fragment for filter. placeholder renders the
// n-th bind parameter and uuidArg converts a UUID into its driver value.
func whereClause(
	filter auditDomain.Filter,
	placeholder func(n int) string,
	uuidArg func(id uuid.UUID) (any, error),
) (string, []any, error) {
	conditions := make([]string, 0, 5)
	args := make([]any, 0, 5)

	add := func(column, op string, value any) {
		args = append(args, value)
		conditions = append(conditions, column+" "+op+" "+placeholder(len(args)))
	}

	if filter.UserID != nil {
		value, err := uuidArg(*filter.UserID)
		if err != nil {
			return "", nil, apperrors.Wrap(err, "failed to marshal user_id filter")
		}
		add("user_id", "=", value)
	}
	if filter.Action != "" {
		add("action", "=", string(filter.Action))
	}
	if filter.Resource != "" {
		add("resource", "=", string(filter.Resource))
	}
	if filter.CreatedAtFrom != nil {
		add("created_at", ">=", filter.CreatedAtFrom.UTC())
	}
	if filter.CreatedAtTo != nil {
		add("created_at", "<=", filter.CreatedAtTo.UTC())
	}

	if len(conditions) == 0 {
		return "", args, nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// nullString stores empty strings as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// marshalDetails encodes details, storing an empty map as NULL.
func marshalDetails(details map[string]any) (any, error) {
	if len(details) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(details)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal audit log details")
	}
	return string(data), nil
}

// scannedEntry holds the nullable columns of one row before they are applied to an Entry.
type scannedEntry struct {
	resourceID   sql.NullString
	details      []byte
	ipAddress    sql.NullString
	userAgent    sql.NullString
	requestID    sql.NullString
	errorMessage sql.NullString
}

// apply copies the nullable columns onto entry.
func (s *scannedEntry) apply(entry *auditDomain.Entry) error {
	entry.ResourceID = s.resourceID.String
	entry.IPAddress = s.ipAddress.String
	entry.UserAgent = s.userAgent.String
	entry.RequestID = s.requestID.String
	entry.ErrorMessage = s.errorMessage.String
	entry.Timestamp = entry.Timestamp.UTC()

	if len(s.details) > 0 {
		if err := json.Unmarshal(s.details, &entry.Details); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal audit log details")
		}
	}
	return nil
}
