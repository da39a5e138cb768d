// Package dto provides data transfer objects for authentication requests and responses.
package dto

import (
	"time"

	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/credvault/internal/validation"
)

// LoginRequest contains the staff credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the request shape.
func (r *LoginRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Email, validation.Required, customValidation.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginStaff is the signed-in account returned with a session token.
type LoginStaff struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResponse contains the session token.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
	Staff     LoginStaff `json:"staff"`
}
