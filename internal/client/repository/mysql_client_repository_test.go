package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clientDomain "github.com/allisson/credvault/internal/client/domain"
)

func TestMySQLClientRepository_CreateAndGet(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLClientRepository(db)
	client := newTestClient()

	id, _ := client.ID.MarshalBinary()
	createdByID, _ := client.CreatedByID.MarshalBinary()

	mock.ExpectExec(`INSERT INTO clients`).
		WithArgs(
			id, client.ClientName, client.ContactPerson, client.Address, client.Email,
			client.Phone, client.Notes, client.CreatedBy, createdByID, client.CreatedAt, client.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery(`SELECT .+ FROM clients WHERE id = \?$`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(clientColumnNames).AddRow(
			id, client.ClientName, client.ContactPerson, client.Address, client.Email,
			client.Phone, client.Notes, client.CreatedBy, createdByID, client.CreatedAt, client.UpdatedAt,
		))

	require.NoError(t, repo.Create(context.Background(), client))
	result, err := repo.GetByID(context.Background(), client.ID)

	require.NoError(t, err)
	assert.Equal(t, client, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLClientRepository_Update_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLClientRepository(db)

	mock.ExpectExec(`UPDATE clients SET`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), newTestClient())

	assert.ErrorIs(t, err, clientDomain.ErrClientNotFound)
}

func TestMySQLClientRepository_List(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLClientRepository(db)
	client := newTestClient()

	id, _ := client.ID.MarshalBinary()
	createdByID, _ := client.CreatedByID.MarshalBinary()
	columns := append(append([]string{}, clientColumnNames...), "credential_count")

	mock.ExpectQuery(`SELECT .+ FROM clients ORDER BY created_at DESC, id DESC LIMIT \? OFFSET \?`).
		WithArgs(10, 20).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			id, client.ClientName, client.ContactPerson, client.Address, client.Email,
			client.Phone, client.Notes, client.CreatedBy, createdByID, client.CreatedAt, client.UpdatedAt, 2,
		))

	clients, err := repo.List(context.Background(), 20, 10)

	require.NoError(t, err)
	require.Len(t, clients, 1)
	assert.Equal(t, client.ID, clients[0].ID)
	assert.Equal(t, 2, clients[0].CredentialCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}
