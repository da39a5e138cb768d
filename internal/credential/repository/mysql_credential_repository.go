package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// MySQLCredentialRepository implements credential persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLCredentialRepository struct {
	db *sql.DB
}

func mysqlPlaceholder(int) string {
	return "?"
}

func mysqlUUID(id uuid.UUID) (any, error) {
	return id.MarshalBinary()
}

// Create inserts a new credential.
func (m *MySQLCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}
	clientID, err := credential.ClientID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential client_id")
	}
	createdByID, err := credential.CreatedByID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential created_by_id")
	}

	query := `INSERT INTO credentials (` + credentialColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		clientID,
		credential.ServiceName,
		credential.Username,
		credential.Password,
		credential.URL,
		credential.Notes,
		string(credential.CredentialType),
		credential.CreatedBy,
		createdByID,
		credential.CreatedAt,
		credential.UpdatedAt,
		credential.LastAccessedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create credential")
	}
	return nil
}

// GetByID retrieves a credential by id. Returns ErrCredentialNotFound when absent.
func (m *MySQLCredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*credentialDomain.Credential, error) {
	return m.get(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE id = ?`, id)
}

// GetByIDForUpdate retrieves a credential and locks its row for the current transaction.
func (m *MySQLCredentialRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	return m.get(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE id = ? FOR UPDATE`, id)
}

func (m *MySQLCredentialRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal credential id")
	}

	credential, err := scanMySQLCredential(querier.QueryRowContext(ctx, query, idBytes))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}
	return credential, nil
}

func scanMySQLCredential(row scanner) (*credentialDomain.Credential, error) {
	var credential credentialDomain.Credential
	var id, clientID, createdByID []byte
	var credentialType string
	var lastAccessed sql.NullTime

	if err := row.Scan(
		&id,
		&clientID,
		&credential.ServiceName,
		&credential.Username,
		&credential.Password,
		&credential.URL,
		&credential.Notes,
		&credentialType,
		&credential.CreatedBy,
		&createdByID,
		&credential.CreatedAt,
		&credential.UpdatedAt,
		&lastAccessed,
	); err != nil {
		return nil, err
	}

	if err := credential.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential id")
	}
	if err := credential.ClientID.UnmarshalBinary(clientID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential client_id")
	}
	if err := credential.CreatedByID.UnmarshalBinary(createdByID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal credential created_by_id")
	}

	credential.CredentialType = credentialDomain.CredentialType(credentialType)
	applyLastAccessed(&credential, lastAccessed)
	return &credential, nil
}

// Update persists the mutable fields of credential.
func (m *MySQLCredentialRepository) Update(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, m.db)

	id, err := credential.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	query := `UPDATE credentials SET service_name = ?, username = ?, password = ?, url = ?,
			  notes = ?, credential_type = ?, updated_at = ? WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		credential.ServiceName,
		credential.Username,
		credential.Password,
		credential.URL,
		credential.Notes,
		string(credential.CredentialType),
		credential.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}
	return requireAffected(result)
}

// UpdateLastAccessed stamps last_accessed_at on every credential in ids.
func (m *MySQLCredentialRepository) UpdateLastAccessed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, m.db)

	args := make([]any, 0, len(ids)+1)
	args = append(args, at)
	for _, id := range ids {
		idBytes, err := id.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal credential id")
		}
		args = append(args, idBytes)
	}

	query := `UPDATE credentials SET last_accessed_at = ? WHERE ` + inClause("id", len(ids), 2, mysqlPlaceholder)
	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to update credential last access")
	}
	return nil
}

// Delete removes a credential.
func (m *MySQLCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal credential id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE id = ?`, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}
	return requireAffected(result)
}

// List retrieves credentials matching filter ordered by created_at descending.
func (m *MySQLCredentialRepository) List(
	ctx context.Context,
	filter credentialDomain.Filter,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, m.db)

	where, args, err := whereClause(filter, mysqlPlaceholder, mysqlUUID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build credential filter")
	}

	query := `SELECT ` + credentialColumns + ` FROM credentials` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := querier.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list credentials")
	}
	defer func() {
		_ = rows.Close()
	}()

	credentials := make([]*credentialDomain.Credential, 0)
	for rows.Next() {
		credential, err := scanMySQLCredential(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan credential")
		}
		credentials = append(credentials, credential)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate credentials")
	}
	return credentials, nil
}

// Count returns the number of credentials matching filter.
func (m *MySQLCredentialRepository) Count(ctx context.Context, filter credentialDomain.Filter) (int, error) {
	querier := database.GetTx(ctx, m.db)

	where, args, err := whereClause(filter, mysqlPlaceholder, mysqlUUID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to build credential filter")
	}

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`+where, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count credentials")
	}
	return count, nil
}

// NewMySQLCredentialRepository creates a new MySQL credential repository.
func NewMySQLCredentialRepository(db *sql.DB) *MySQLCredentialRepository {
	return &MySQLCredentialRepository{db: db}
}
