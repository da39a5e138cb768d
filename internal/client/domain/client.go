// Package domain defines clients, the tenants that own credentials.
package domain

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/credvault/internal/validation"
)

// Field length ceilings.
const (
	maxNameLength  = 200
	maxPhoneLength = 50
)

// Client is a tenant. Clients are visible to every authenticated actor; only
// their creator or an admin may change them.
type Client struct {
	ID            uuid.UUID
	ClientName    string
	ContactPerson string
	Address       string
	Email         string
	Phone         string
	Notes         string
	CreatedBy     string
	CreatedByID   uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// CredentialCount is populated by list queries only.
	CredentialCount int
}

// CreateClientInput contains the fields of a new client.
type CreateClientInput struct {
	ClientName    string
	ContactPerson string
	Address       string
	Email         string
	Phone         string
	Notes         string
}

// UpdateClientInput contains the fields to change. Nil fields are left untouched.
type UpdateClientInput struct {
	ClientName    *string
	ContactPerson *string
	Address       *string
	Email         *string
	Phone         *string
	Notes         *string
}

// Validate checks the client fields. Email is optional but must be well formed
// when present.
func (c *Client) Validate() error {
	err := validation.ValidateStruct(c,
		validation.Field(&c.ClientName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxNameLength),
		),
		validation.Field(&c.ContactPerson,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxNameLength),
		),
		validation.Field(&c.Address,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, maxNameLength),
		),
		validation.Field(&c.Email, customValidation.Email),
		validation.Field(&c.Phone, validation.Length(0, maxPhoneLength)),
	)
	return customValidation.WrapValidationError(err)
}

// Apply copies the supplied fields of input onto c and returns their names.
func (c *Client) Apply(input *UpdateClientInput) []string {
	updated := make([]string, 0, 6)
	set := func(name string, dst *string, src *string) {
		if src != nil {
			*dst = *src
			updated = append(updated, name)
		}
	}

	set("clientName", &c.ClientName, input.ClientName)
	set("contactPerson", &c.ContactPerson, input.ContactPerson)
	set("address", &c.Address, input.Address)
	set("email", &c.Email, input.Email)
	set("phone", &c.Phone, input.Phone)
	set("notes", &c.Notes, input.Notes)

	return updated
}
