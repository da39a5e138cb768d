package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// PostgreSQLCredentialRepository implements credential persistence for PostgreSQL.
type PostgreSQLCredentialRepository struct {
	db *sql.DB
}

func postgresPlaceholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func postgresUUID(id uuid.UUID) (any, error) {
	return id, nil
}

// Create inserts a new credential.
func (p *PostgreSQLCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO credentials (` + credentialColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	_, err := querier.ExecContext(
		ctx,
		query,
		credential.ID,
		credential.ClientID,
		credential.ServiceName,
		credential.Username,
		credential.Password,
		credential.URL,
		credential.Notes,
		string(credential.CredentialType),
		credential.CreatedBy,
		credential.CreatedByID,
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
func (p *PostgreSQLCredentialRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	return p.get(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a credential and locks its row for the current transaction.
func (p *PostgreSQLCredentialRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	return p.get(ctx, `SELECT `+credentialColumns+` FROM credentials WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLCredentialRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	credential, err := scanPostgreSQLCredential(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, credentialDomain.ErrCredentialNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get credential")
	}
	return credential, nil
}

func scanPostgreSQLCredential(row scanner) (*credentialDomain.Credential, error) {
	var credential credentialDomain.Credential
	var credentialType string
	var lastAccessed sql.NullTime

	if err := row.Scan(
		&credential.ID,
		&credential.ClientID,
		&credential.ServiceName,
		&credential.Username,
		&credential.Password,
		&credential.URL,
		&credential.Notes,
		&credentialType,
		&credential.CreatedBy,
		&credential.CreatedByID,
		&credential.CreatedAt,
		&credential.UpdatedAt,
		&lastAccessed,
	); err != nil {
		return nil, err
	}

	credential.CredentialType = credentialDomain.CredentialType(credentialType)
	applyLastAccessed(&credential, lastAccessed)
	return &credential, nil
}

// Update persists the mutable fields of credential.
func (p *PostgreSQLCredentialRepository) Update(ctx context.Context, credential *credentialDomain.Credential) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE credentials SET service_name = $1, username = $2, password = $3, url = $4,
			  notes = $5, credential_type = $6, updated_at = $7 WHERE id = $8`

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
		credential.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update credential")
	}
	return requireAffected(result)
}

// UpdateLastAccessed stamps last_accessed_at on every credential in ids.
func (p *PostgreSQLCredentialRepository) UpdateLastAccessed(
	ctx context.Context,
	ids []uuid.UUID,
	at time.Time,
) error {
	if len(ids) == 0 {
		return nil
	}
	querier := database.GetTx(ctx, p.db)

	args := make([]any, 0, len(ids)+1)
	args = append(args, at)
	for _, id := range ids {
		args = append(args, id)
	}

	query := `UPDATE credentials SET last_accessed_at = $1 WHERE ` + inClause("id", len(ids), 2, postgresPlaceholder)
	if _, err := querier.ExecContext(ctx, query, args...); err != nil {
		return apperrors.Wrap(err, "failed to update credential last access")
	}
	return nil
}

// Delete removes a credential.
func (p *PostgreSQLCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM credentials WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete credential")
	}
	return requireAffected(result)
}

// List retrieves credentials matching filter ordered by created_at descending.
func (p *PostgreSQLCredentialRepository) List(
	ctx context.Context,
	filter credentialDomain.Filter,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	querier := database.GetTx(ctx, p.db)

	where, args, err := whereClause(filter, postgresPlaceholder, postgresUUID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build credential filter")
	}

	query := `SELECT ` + credentialColumns + ` FROM credentials` + where +
		` ORDER BY created_at DESC, id DESC LIMIT ` + postgresPlaceholder(len(args)+1) +
		` OFFSET ` + postgresPlaceholder(len(args)+2)
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
		credential, err := scanPostgreSQLCredential(rows)
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
func (p *PostgreSQLCredentialRepository) Count(ctx context.Context, filter credentialDomain.Filter) (int, error) {
	querier := database.GetTx(ctx, p.db)

	where, args, err := whereClause(filter, postgresPlaceholder, postgresUUID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to build credential filter")
	}

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM credentials`+where, args...).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count credentials")
	}
	return count, nil
}

// NewPostgreSQLCredentialRepository creates a new PostgreSQL credential repository.
func NewPostgreSQLCredentialRepository(db *sql.DB) *PostgreSQLCredentialRepository {
	return &PostgreSQLCredentialRepository{db: db}
}
