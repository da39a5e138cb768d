// Package dto provides data transfer objects for client HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	clientDomain "github.com/allisson/credvault/internal/client/domain"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// CreateClientRequest contains the parameters for creating a client.
type CreateClientRequest struct {
	ClientName    string `json:"clientName"`
	ContactPerson string `json:"contactPerson"`
	Address       string `json:"address"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Notes         string `json:"notes"`
}

// Validate checks the request shape. Length limits are enforced by the use case.
func (r *CreateClientRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientName, validation.Required, customValidation.NotBlank),
		validation.Field(&r.ContactPerson, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Address, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Email, customValidation.Email),
	)
}

// ToInput converts the request to a domain input.
func (r *CreateClientRequest) ToInput() *clientDomain.CreateClientInput {
	return &clientDomain.CreateClientInput{
		ClientName:    r.ClientName,
		ContactPerson: r.ContactPerson,
		Address:       r.Address,
		Email:         r.Email,
		Phone:         r.Phone,
		Notes:         r.Notes,
	}
}

// UpdateClientRequest contains the fields to change. Omitted fields are left untouched.
type UpdateClientRequest struct {
	ClientName    *string `json:"clientName"`
	ContactPerson *string `json:"contactPerson"`
	Address       *string `json:"address"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	Notes         *string `json:"notes"`
}

// ToInput converts the request to a domain input.
func (r *UpdateClientRequest) ToInput() *clientDomain.UpdateClientInput {
	return &clientDomain.UpdateClientInput{
		ClientName:    r.ClientName,
		ContactPerson: r.ContactPerson,
		Address:       r.Address,
		Email:         r.Email,
		Phone:         r.Phone,
		Notes:         r.Notes,
	}
}
