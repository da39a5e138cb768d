package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var staffColumnNames = []string{"id", "name", "email", "password_hash", "role", "created_at", "updated_at"}

func newTestStaff() *staffDomain.Staff {
	now := time.Now().UTC()
	return &staffDomain.Staff{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         "Jane",
		Email:        "jane@example.com",
		PasswordHash: "$argon2id$v=19$m=65536,t=3,p=4$c2FsdA$aGFzaA",
		Role:         authDomain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPostgreSQLStaffRepository_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)
		staff := newTestStaff()

		mock.ExpectExec(`INSERT INTO staff`).
			WithArgs(staff.ID, staff.Name, staff.Email, staff.PasswordHash, "ADMIN", staff.CreatedAt, staff.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, repo.Create(context.Background(), staff))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)

		mock.ExpectExec(`INSERT INTO staff`).WillReturnError(&pq.Error{Code: "23505"})

		err := repo.Create(context.Background(), newTestStaff())
		assert.ErrorIs(t, err, staffDomain.ErrStaffAlreadyExists)
	})

	t.Run("Error_Other", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)

		mock.ExpectExec(`INSERT INTO staff`).WillReturnError(errors.New("connection reset"))

		err := repo.Create(context.Background(), newTestStaff())
		require.Error(t, err)
		assert.NotErrorIs(t, err, staffDomain.ErrStaffAlreadyExists)
	})
}

func TestPostgreSQLStaffRepository_GetByEmail(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)
		staff := newTestStaff()

		mock.ExpectQuery(`SELECT .+ FROM staff WHERE email = \$1`).
			WithArgs(staff.Email).
			WillReturnRows(sqlmock.NewRows(staffColumnNames).AddRow(
				staff.ID.String(), staff.Name, staff.Email, staff.PasswordHash, "ADMIN",
				staff.CreatedAt, staff.UpdatedAt,
			))

		result, err := repo.GetByEmail(context.Background(), staff.Email)

		require.NoError(t, err)
		assert.Equal(t, staff, result)
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)

		mock.ExpectQuery(`SELECT .+ FROM staff WHERE email = \$1`).
			WithArgs("missing@example.com").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByEmail(context.Background(), "missing@example.com")
		assert.ErrorIs(t, err, staffDomain.ErrStaffNotFound)
	})
}

func TestPostgreSQLStaffRepository_GetByIDForUpdate(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLStaffRepository(db)
	staff := newTestStaff()

	mock.ExpectQuery(`SELECT .+ FROM staff WHERE id = \$1 FOR UPDATE`).
		WithArgs(staff.ID).
		WillReturnRows(sqlmock.NewRows(staffColumnNames).AddRow(
			staff.ID.String(), staff.Name, staff.Email, staff.PasswordHash, "ADMIN",
			staff.CreatedAt, staff.UpdatedAt,
		))

	result, err := repo.GetByIDForUpdate(context.Background(), staff.ID)

	require.NoError(t, err)
	assert.Equal(t, authDomain.RoleAdmin, result.Role)
}

func TestPostgreSQLStaffRepository_Update(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)
		staff := newTestStaff()

		mock.ExpectExec(`UPDATE staff SET name = \$1, role = \$2, updated_at = \$3 WHERE id = \$4`).
			WithArgs(staff.Name, "ADMIN", staff.UpdatedAt, staff.ID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Update(context.Background(), staff))
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewPostgreSQLStaffRepository(db)

		mock.ExpectExec(`UPDATE staff`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(context.Background(), newTestStaff())
		assert.ErrorIs(t, err, staffDomain.ErrStaffNotFound)
	})
}

func TestPostgreSQLStaffRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLStaffRepository(db)
	id := uuid.Must(uuid.NewV7())

	mock.ExpectExec(`DELETE FROM staff WHERE id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), id))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStaffRepository_ListAndCount(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostgreSQLStaffRepository(db)
	staff := newTestStaff()

	mock.ExpectQuery(`SELECT .+ FROM staff ORDER BY name ASC, id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows(staffColumnNames).AddRow(
			staff.ID.String(), staff.Name, staff.Email, staff.PasswordHash, "ADMIN",
			staff.CreatedAt, staff.UpdatedAt,
		))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM staff`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	result, err := repo.List(context.Background(), 0, 10)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, staff.Email, result[0].Email)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
