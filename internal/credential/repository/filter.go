// Package repository implements credential persistence for PostgreSQL and MySQL.
package repository

import (
	"database/sql"
	"strings"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

const credentialColumns = `id, client_id, service_name, username, password, url, notes, credential_type,
	created_by, created_by_id, created_at, updated_at, last_accessed_at`

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// whereClause renders filter with driver-specific placeholders starting at 1.
func whereClause(
	filter credentialDomain.Filter,
	placeholder func(int) string,
	uuidArg func(uuid.UUID) (any, error),
) (string, []any, error) {
	var conditions []string
	var args []any

	add := func(column string, value uuid.UUID) error {
		arg, err := uuidArg(value)
		if err != nil {
			return err
		}
		args = append(args, arg)
		conditions = append(conditions, column+" = "+placeholder(len(args)))
		return nil
	}

	if filter.ClientID != nil {
		if err := add("client_id", *filter.ClientID); err != nil {
			return "", nil, err
		}
	}
	if filter.CreatedByID != nil {
		if err := add("created_by_id", *filter.CreatedByID); err != nil {
			return "", nil, err
		}
	}

	if len(conditions) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args, nil
}

// inClause renders "col IN (p1, p2, ...)" for n values with placeholders starting at first.
func inClause(column string, n, first int, placeholder func(int) string) string {
	placeholders := make([]string, n)
	for i := range placeholders {
		placeholders[i] = placeholder(first + i)
	}
	return column + " IN (" + strings.Join(placeholders, ", ") + ")"
}

// requireAffected maps an update or delete that touched no row to ErrCredentialNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return credentialDomain.ErrCredentialNotFound
	}
	return nil
}

func applyLastAccessed(credential *credentialDomain.Credential, lastAccessed sql.NullTime) {
	if lastAccessed.Valid {
		at := lastAccessed.Time
		credential.LastAccessedAt = &at
	}
}
