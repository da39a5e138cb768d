package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// mysqlDuplicateEntry is the MySQL error number for ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLStaffRepository implements staff persistence for MySQL.
// UUIDs are stored as BINARY(16).
type MySQLStaffRepository struct {
	db *sql.DB
}

// Create inserts a new staff account.
func (m *MySQLStaffRepository) Create(ctx context.Context, staff *staffDomain.Staff) error {
	querier := database.GetTx(ctx, m.db)

	id, err := staff.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	query := `INSERT INTO staff (` + staffColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		staff.Name,
		staff.Email,
		staff.PasswordHash,
		string(staff.Role),
		staff.CreatedAt,
		staff.UpdatedAt,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return staffDomain.ErrStaffAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create staff")
	}
	return nil
}

// GetByID retrieves a staff account by id.
func (m *MySQLStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	binID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal staff id")
	}
	return m.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ?`, binID)
}

// GetByIDForUpdate retrieves a staff account and locks its row for the current transaction.
func (m *MySQLStaffRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	binID, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal staff id")
	}
	return m.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = ? FOR UPDATE`, binID)
}

// GetByEmail retrieves a staff account by its normalized email.
func (m *MySQLStaffRepository) GetByEmail(ctx context.Context, email string) (*staffDomain.Staff, error) {
	return m.get(ctx, `SELECT `+staffColumns+` FROM staff WHERE email = ?`, email)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMySQLStaff(row scanner) (*staffDomain.Staff, error) {
	var staff staffDomain.Staff
	var id []byte

	if err := row.Scan(
		&id,
		&staff.Name,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if err := staff.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal staff id")
	}
	return &staff, nil
}

func (m *MySQLStaffRepository) get(ctx context.Context, query string, arg any) (*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, m.db)

	staff, err := scanMySQLStaff(querier.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, staffDomain.ErrStaffNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get staff")
	}
	return staff, nil
}

// Update persists the name and role of staff.
func (m *MySQLStaffRepository) Update(ctx context.Context, staff *staffDomain.Staff) error {
	querier := database.GetTx(ctx, m.db)

	id, err := staff.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	result, err := querier.ExecContext(
		ctx,
		`UPDATE staff SET name = ?, role = ?, updated_at = ? WHERE id = ?`,
		staff.Name,
		string(staff.Role),
		staff.UpdatedAt,
		id,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update staff")
	}
	return requireAffected(result)
}

// Delete removes a staff account.
func (m *MySQLStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	binID, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal staff id")
	}

	result, err := querier.ExecContext(ctx, `DELETE FROM staff WHERE id = ?`, binID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete staff")
	}
	return requireAffected(result)
}

// List retrieves staff accounts ordered by name.
func (m *MySQLStaffRepository) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + staffColumns + ` FROM staff ORDER BY name ASC, id ASC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list staff")
	}
	defer func() {
		_ = rows.Close()
	}()

	staff := make([]*staffDomain.Staff, 0)
	for rows.Next() {
		s, err := scanMySQLStaff(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan staff")
		}
		staff = append(staff, s)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate staff")
	}
	return staff, nil
}

// Count returns the total number of staff accounts.
func (m *MySQLStaffRepository) Count(ctx context.Context) (int, error) {
	querier := database.GetTx(ctx, m.db)

	var count int
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM staff`).Scan(&count); err != nil {
		return 0, apperrors.Wrap(err, "failed to count staff")
	}
	return count, nil
}

// NewMySQLStaffRepository creates a new MySQL staff repository.
func NewMySQLStaffRepository(db *sql.DB) *MySQLStaffRepository {
	return &MySQLStaffRepository{db: db}
}
