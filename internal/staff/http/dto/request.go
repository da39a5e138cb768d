// Package dto provides data transfer objects for staff HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
	customValidation "github.com/allisson/credvault/internal/validation"
)

var roles = []any{string(authDomain.RoleAdmin), string(authDomain.RoleUser)}

// CreateStaffRequest contains the parameters for creating a staff account.
type CreateStaffRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate checks the request shape. The password policy is enforced by the use case.
func (r *CreateStaffRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Role, validation.In(roles...).Error("role must be ADMIN or USER")),
	)
}

// ToInput converts the request to a domain input. An empty role defaults to USER.
func (r *CreateStaffRequest) ToInput() *staffDomain.CreateStaffInput {
	role := authDomain.Role(r.Role)
	if role == "" {
		role = authDomain.RoleUser
	}
	return &staffDomain.CreateStaffInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Role:     role,
	}
}

// UpdateRoleRequest contains the new role of a staff account.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// Validate checks the role value.
func (r *UpdateRoleRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Role,
			validation.Required,
			validation.In(roles...).Error("role must be ADMIN or USER"),
		),
	)
}
