// Package repository implements client persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	clientDomain "github.com/allisson/credvault/internal/client/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
)

const clientColumns = `id, client_name, contact_person, address, email, phone, notes,
	created_by, created_by_id, created_at, updated_at`

// PostgreSQLClientRepository implements client persistence for PostgreSQL.
type PostgreSQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client.
func (p *PostgreSQLClientRepository) Create(ctx context.Context, client *clientDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO clients (` + clientColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(
		ctx,
		query,
		client.ID,
		client.ClientName,
		client.ContactPerson,
		client.Address,
		client.Email,
		client.Phone,
		client.Notes,
		client.CreatedBy,
		client.CreatedByID,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// GetByID retrieves a client by id. Returns ErrClientNotFound when absent.
func (p *PostgreSQLClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	return p.get(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a client and locks its row for the current transaction.
func (p *PostgreSQLClientRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*clientDomain.Client, error) {
	return p.get(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = $1 FOR UPDATE`, id)
}

func (p *PostgreSQLClientRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*clientDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	var client clientDomain.Client
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&client.ID,
		&client.ClientName,
		&client.ContactPerson,
		&client.Address,
		&client.Email,
		&client.Phone,
		&client.Notes,
		&client.CreatedBy,
		&client.CreatedByID,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clientDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}
	return &client, nil
}

// Update persists the mutable fields of client.
func (p *PostgreSQLClientRepository) Update(ctx context.Context, client *clientDomain.Client) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE clients SET client_name = $1, contact_person = $2, address = $3, email = $4,
			  phone = $5, notes = $6, updated_at = $7 WHERE id = $8`

	result, err := querier.ExecContext(
		ctx,
		query,
		client.ClientName,
		client.ContactPerson,
		client.Address,
		client.Email,
		client.Phone,
		client.Notes,
		client.UpdatedAt,
		client.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}
	return requireAffected(result)
}

// Delete removes a client. Its credentials are removed by ON DELETE CASCADE.
func (p *PostgreSQLClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete client")
	}
	return requireAffected(result)
}

// List retrieves clients ordered by created_at descending with their credential counts.
func (p *PostgreSQLClientRepository) List(ctx context.Context, offset, limit int) ([]*clientDomain.Client, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + clientColumns + `,
			  (SELECT COUNT(*) FROM credentials cr WHERE cr.client_id = clients.id) AS credential_count
			  FROM clients ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() {
		_ = rows.Close()
	}()

	clients := make([]*clientDomain.Client, 0)
	for rows.Next() {
		var client clientDomain.Client
		if err := rows.Scan(
			&client.ID,
			&client.ClientName,
			&client.ContactPerson,
			&client.Address,
			&client.Email,
			&client.Phone,
			&client.Notes,
			&client.CreatedBy,
			&client.CreatedByID,
			&client.CreatedAt,
			&client.UpdatedAt,
			&client.CredentialCount,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan client")
		}
		clients = append(clients, &client)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clients")
	}
	return clients, nil
}

// Count returns the total number of clients.
func (p *PostgreSQLClientRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, p.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count clients")
	}
	return count, nil
}

// requireAffected maps an update or delete that touched no row to ErrClientNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return clientDomain.ErrClientNotFound
	}
	return nil
}

// NewPostgreSQLClientRepository creates a new PostgreSQL client repository.
func NewPostgreSQLClientRepository(db *sql.DB) *PostgreSQLClientRepository {
	return &PostgreSQLClientRepository{db: db}
}
