// Package repository implements staff persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

const staffColumns = `id, name, email, password_hash, role, created_at, updated_at`

// postgresUniqueViolation is the SQLSTATE of a unique constraint violation.
const postgresUniqueViolation = "23505"

// PostgreSQLStaffRepository implements staff persistence for PostgreSQL.
type PostgreSQLStaffRepository struct {
	db *sql.DB
}

// Create inserts a new staff account.
func (p *PostgreSQLStaffRepository) Create(ctx context.Context, staff *staffDomain.Staff) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO staff (` + staffColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		staff.ID,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		string(staff.Role),
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == postgresUniqueViolation {
			return staffDomain.ErrStaffAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create staff")
	}
	return nil
}

// GetByID retrieves a staff account by id.
func (p *PostgreSQLStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	return p.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
}

// GetByIDForUpdate retrieves a staff account and locks its row for the current transaction.
func (p *PostgreSQLStaffRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	return p.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1 FOR UPDATE`, id)
}

// GetByEmail retrieves a staff account by its normalized email.
func (p *PostgreSQLStaffRepository) GetByEmail(ctx context.Context, email string) (*staffDomain.Staff, error) {
	return p.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = $1`, email)
}

func (p *PostgreSQLStaffRepository) get(ctx context.Context, query string, arg any) (*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, p.db)

	var staff staffDomain.Staff
	err := querier.QueryRowContext(ctx, query, arg).Scan(
		&staff.ID,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, staffDomain.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get staff")
	}
	return &staff, nil
}

// Update persists the name and role of staff.
func (p *PostgreSQLStaffRepository) Update(ctx context.Context, staff *staffDomain.Staff) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE staff SET name = $1, role = $2, updated_at = $3 WHERE id = $4`,
		staff.Name,
		string(staff.Role),
		staff.UpdatedAt,
		staff.ID,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update staff")
	}
	return requireAffected(result)
}

// Delete removes a staff account.
func (p *PostgreSQLStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM staff WHERE id = $1`, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete staff")
	}
	return requireAffected(result)
}

// List retrieves staff accounts ordered by name.
func (p *PostgreSQLStaffRepository) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name ASC, id ASC LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list staff")
	}
	defer func() {
		_ = rows.Close()
	}()

	staff := make([]*staffDomain.Staff, 0)
	for rows.Next() {
		var s staffDomain.Staff
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Email,
			&s.PasswordHash,
			&s.Role,
			&s.CreatedAt,
			&s.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan staff")
		}
		staff = append(staff, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate staff")
	}
	return staff, nil
}

// Count returns the total number of staff accounts.
func (p *PostgreSQLStaffRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, p.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count staff")
	}
	return count, nil
}

// requireAffected maps an update or delete that touched no row to ErrStaffNotFound.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return staffDomain.ErrStaffNotFound
	}
	return nil
}

// NewPostgreSQLStaffRepository creates a new PostgreSQL staff repository.
func NewPostgreSQLStaffRepository(db *sql.DB) *PostgreSQLStaffRepository {
	return &PostgreSQLStaffRepository{db: db}
}
