package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
)

func binaryID(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
}

func TestMySQLCredentialRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCredentialRepository(db)
	credential := newTestCredential()

	mock.ExpectExec(`INSERT INTO credentials`).
		WithArgs(
			binaryID(t, credential.ID), binaryID(t, credential.ClientID), credential.ServiceName,
			credential.Username, credential.Password, credential.URL, credential.Notes, "general",
			credential.CreatedBy, binaryID(t, credential.CreatedByID), credential.CreatedAt,
			credential.UpdatedAt, nil,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Create(context.Background(), credential))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLCredentialRepository_GetByID(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMySQLCredentialRepository(db)
		credential := newTestCredential()

		mock.ExpectQuery(`SELECT .+ FROM credentials WHERE id = \?$`).
			WithArgs(binaryID(t, credential.ID)).
			WillReturnRows(sqlmock.NewRows(credentialColumnNames).AddRow(
				binaryID(t, credential.ID), binaryID(t, credential.ClientID), credential.ServiceName,
				credential.Username, credential.Password, credential.URL, credential.Notes, "email",
				credential.CreatedBy, binaryID(t, credential.CreatedByID), credential.CreatedAt,
				credential.UpdatedAt, nil,
			))

		got, err := repo.GetByID(context.Background(), credential.ID)
		require.NoError(t, err)
		assert.Equal(t, credential.ID, got.ID)
		assert.Equal(t, credential.ClientID, got.ClientID)
		assert.Equal(t, credential.CreatedByID, got.CreatedByID)
		assert.Equal(t, credentialDomain.CredentialTypeEmail, got.CredentialType)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewMySQLCredentialRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM credentials`).WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, credentialDomain.ErrCredentialNotFound)
	})
}

func TestMySQLCredentialRepository_ListFilter(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCredentialRepository(db)
	owner := uuid.New()

	mock.ExpectQuery(`SELECT .+ FROM credentials WHERE created_by_id = \? ORDER BY .+ LIMIT \? OFFSET \?`).
		WithArgs(binaryID(t, owner), 100, 0).
		WillReturnRows(sqlmock.NewRows(credentialColumnNames))

	credentials, err := repo.List(context.Background(), credentialDomain.Filter{CreatedByID: &owner}, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, credentials)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLCredentialRepository_UpdateLastAccessed(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCredentialRepository(db)
	id := uuid.New()

	mock.ExpectExec(`UPDATE credentials SET last_accessed_at = \? WHERE id IN \(\?\)`).
		WithArgs(sqlmock.AnyArg(), binaryID(t, id)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.UpdateLastAccessed(context.Background(), []uuid.UUID{id}, newTestCredential().UpdatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLCredentialRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewMySQLCredentialRepository(db)
	id := uuid.New()

	mock.ExpectExec(`DELETE FROM credentials WHERE id = \?`).
		WithArgs(binaryID(t, id)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), credentialDomain.ErrCredentialNotFound)
}
