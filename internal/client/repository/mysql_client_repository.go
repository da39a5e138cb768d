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

// MySQLClientRepository implements client persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLClientRepository struct {
	db *sql.DB
}

// Create inserts a new client.
func (m *MySQLClientRepository) Create(ctx context.Context, client *clientDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}
	createdByID, err := client.CreatedByID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client created_by_id")
	}

	query := `INSERT INTO clients (` + clientColumns + `)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		client.ClientName,
		client.ContactPerson,
		client.Address,
		client.Email,
		client.Phone,
		client.Notes,
		client.CreatedBy,
		createdByID,
		client.CreatedAt,
		client.UpdatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create client")
	}
	return nil
}

// GetByID retrieves a client by id. Returns ErrClientNotFound when absent.
func (m *MySQLClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	return m.get(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)
}

// GetByIDForUpdate retrieves a client and locks its row for the current transaction.
func (m *MySQLClientRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	return m.get(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ? FOR UPDATE`, id)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMySQLClient(row scanner, extra ...any) (*clientDomain.Client, error) {
	var client clientDomain.Client
	var id, createdByID []byte

	dest := []any{
		&id,
		&client.ClientName,
		&client.ContactPerson,
		&client.Address,
		&client.Email,
		&client.Phone,
		&client.Notes,
		&client.CreatedBy,
		&createdByID,
		&client.CreatedAt,
		&client.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	if err := client.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client id")
	}
	if err := client.CreatedByID.UnmarshalBinary(createdByID); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal client created_by_id")
	}
	return &client, nil
}

func (m *MySQLClientRepository) get(
	ctx context.Context,
	query string,
	id uuid.UUID,
) (*clientDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	binID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal client id")
	}

	client, err := scanMySQLClient(querier.QueryRowContext(ctx, query, binID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clientDomain.ErrClientNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get client")
	}
	return client, nil
}

// Update persists the mutable fields of client.
func (m *MySQLClientRepository) Update(ctx context.Context, client *clientDomain.Client) error {
	querier := database.GetTx(ctx, m.db)

	id, err := client.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	query := `UPDATE clients SET client_name = ?, contact_person = ?, address = ?, email = ?,
			  phone = ?, notes = ?, updated_at = ? WHERE id = ?`

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
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update client")
	}
	return requireAffected(result)
}

// Delete removes a client. Its credentials are removed by ON DELETE CASCADE.
func (m *MySQLClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	binID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal client id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, binID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete client")
	}
	return requireAffected(result)
}

// List retrieves clients ordered by created_at descending with their credential counts.
func (m *MySQLClientRepository) List(ctx context.Context, offset, limit int) ([]*clientDomain.Client, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + clientColumns + `,
			  (SELECT COUNT(*) FROM credentials cr WHERE cr.client_id = clients.id) AS credential_count
			  FROM clients ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clients")
	}
	defer func() {
		_ = rows.Close()
	}()

	clients := make([]*clientDomain.Client, 0)
	for rows.Next() {
		var count int
		client, err := scanMySQLClient(rows, &count)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan client")
		}
		client.CredentialCount = count
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clients")
	}
	return clients, nil
}

// Count returns the total number of clients.
func (m *MySQLClientRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, m.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count clients")
	}
	return count, nil
}

// NewMySQLClientRepository creates a new MySQL client repository.
func NewMySQLClientRepository(db *sql.DB) *MySQLClientRepository {
	return &MySQLClientRepository{db: db}
}
