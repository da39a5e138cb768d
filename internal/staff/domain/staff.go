// Package domain defines staff accounts, the people who sign in to the vault.
package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	customValidation "github.com/allisson/credvault/internal/validation"
)

const (
	maxNameLength     = 255
	maxEmailLength    = 255
	maxPasswordLength = 128
)

// Staff is an account allowed to sign in. PasswordHash is a PHC-formatted Argon2id string.
type Staff struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         authDomain.Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor returns the identity this account acts as once authenticated.
func (s *Staff) Actor() *authDomain.Actor {
	return &authDomain.Actor{ID: s.ID, Email: s.Email, Role: s.Role}
}

// CreateStaffInput contains the fields of a new staff account.
type CreateStaffInput struct {
	Name     string
	Email    string
	Password string
	Role     authDomain.Role
}

// Normalize trims the name and lower-cases the email.
func (i *CreateStaffInput) Normalize() {
	i.Name = strings.TrimSpace(i.Name)
	i.Email = NormalizeEmail(i.Email)
}

// Validate checks the account fields and the password policy.
func (i *CreateStaffInput) Validate() error {
	err := validation.ValidateStruct(i,
		validation.Field(&i.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxNameLength),
		),
		validation.Field(&i.Email,
			validation.Required,
			customValidation.Email,
			validation.Length(5, maxEmailLength),
		),
		validation.Field(&i.Password,
			validation.Required,
			validation.Length(1, maxPasswordLength),
			customValidation.StaffPasswordPolicy,
		),
		validation.Field(&i.Role, validation.Required, validation.By(validateRole)),
	)
	return customValidation.WrapValidationError(err)
}

// NormalizeEmail is the canonical form emails are stored and looked up in.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateRole(value any) error {
	role, _ := value.(authDomain.Role)
	if role != "" && !role.IsValid() {
		return validation.NewError("validation_role", "role must be ADMIN or USER")
	}
	return nil
}
