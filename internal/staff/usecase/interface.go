// Package usecase implements staff account management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// StaffRepository defines the interface for staff persistence.
type StaffRepository interface {
	// Create inserts a new account. A duplicate email fails with ErrStaffAlreadyExists.
	Create(ctx context.Context, staff *staffDomain.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error)
	GetByEmail(ctx context.Context, email string) (*staffDomain.Staff, error)
	Update(ctx context.Context, staff *staffDomain.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error)
	Count(ctx context.Context) (int, error)
}

// PasswordHasher hashes staff passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// StaffUseCase defines the staff management operations. Every operation taking
// an actor requires the admin role.
type StaffUseCase interface {
	List(ctx context.Context, actor *authDomain.Actor, offset, limit int) ([]*staffDomain.Staff, int, error)

	Create(
		ctx context.Context,
		actor *authDomain.Actor,
		input *staffDomain.CreateStaffInput,
	) (*staffDomain.Staff, error)

	// Provision creates an account without an acting admin. Used by the
	// create-staff command to bootstrap the first administrator.
	Provision(ctx context.Context, input *staffDomain.CreateStaffInput) (*staffDomain.Staff, error)

	UpdateRole(
		ctx context.Context,
		actor *authDomain.Actor,
		id uuid.UUID,
		role authDomain.Role,
	) (*staffDomain.Staff, error)

	// Delete removes an account. Admins cannot delete themselves.
	Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error
}
