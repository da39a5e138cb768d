// Package dto provides data transfer objects for credential HTTP requests and responses.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
)

// CreateCredentialRequest contains the parameters for creating a credential.
// General credentials use username, password and url; email credentials use the
// incoming and outgoing server blocks.
type CreateCredentialRequest struct {
	ClientID       string `json:"clientId"`
	ServiceName    string `json:"serviceName"`
	CredentialType string `json:"credentialType"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	URL            string `json:"url"`
	Notes          string `json:"notes"`

	IncomingServer   string `json:"incomingServer"`
	IncomingPort     int    `json:"incomingPort"`
	IncomingUsername string `json:"incomingUsername"`
	IncomingPassword string `json:"incomingPassword"`
	IncomingSSL      bool   `json:"incomingSSL"`
	OutgoingServer   string `json:"outgoingServer"`
	OutgoingPort     int    `json:"outgoingPort"`
	OutgoingUsername string `json:"outgoingUsername"`
	OutgoingPassword string `json:"outgoingPassword"`
	OutgoingSSL      bool   `json:"outgoingSSL"`
}

// Validate checks the request envelope. Field rules are enforced by the use case
// so that rejected attempts are audited.
func (r *CreateCredentialRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ClientID, validation.Required, validation.By(uuidString)),
		validation.Field(&r.CredentialType, validation.In(
			string(credentialDomain.CredentialTypeGeneral),
			string(credentialDomain.CredentialTypeEmail),
		)),
	)
}

// ToInput converts the request to a domain input. Call Validate first.
func (r *CreateCredentialRequest) ToInput() *credentialDomain.CreateCredentialInput {
	input := &credentialDomain.CreateCredentialInput{
		ClientID:       uuid.MustParse(r.ClientID),
		CredentialType: credentialDomain.CredentialType(r.CredentialType),
		Fields: credentialDomain.Fields{
			ServiceName: r.ServiceName,
			Username:    r.Username,
			Password:    r.Password,
			URL:         r.URL,
			Notes:       r.Notes,
		},
	}
	if input.CredentialType == "" {
		input.CredentialType = credentialDomain.CredentialTypeGeneral
	}

	if input.CredentialType == credentialDomain.CredentialTypeEmail {
		input.Username = r.IncomingUsername
		input.Password = r.IncomingPassword
		input.URL = ""
		input.Email = credentialDomain.EmailServers{
			IncomingServer:   r.IncomingServer,
			IncomingPort:     r.IncomingPort,
			IncomingSSL:      r.IncomingSSL,
			OutgoingServer:   r.OutgoingServer,
			OutgoingPort:     r.OutgoingPort,
			OutgoingUser:     r.OutgoingUsername,
			OutgoingPassword: r.OutgoingPassword,
			OutgoingSSL:      r.OutgoingSSL,
		}
	}
	return input
}

// UpdateCredentialRequest contains the fields to change. Omitted fields are left
// untouched. For email credentials incomingUsername and incomingPassword take
// precedence over username and password.
type UpdateCredentialRequest struct {
	ServiceName *string `json:"serviceName"`
	Username    *string `json:"username"`
	Password    *string `json:"password"`
	URL         *string `json:"url"`
	Notes       *string `json:"notes"`

	IncomingServer   *string `json:"incomingServer"`
	IncomingPort     *int    `json:"incomingPort"`
	IncomingUsername *string `json:"incomingUsername"`
	IncomingPassword *string `json:"incomingPassword"`
	IncomingSSL      *bool   `json:"incomingSSL"`
	OutgoingServer   *string `json:"outgoingServer"`
	OutgoingPort     *int    `json:"outgoingPort"`
	OutgoingUsername *string `json:"outgoingUsername"`
	OutgoingPassword *string `json:"outgoingPassword"`
	OutgoingSSL      *bool   `json:"outgoingSSL"`
}

// ToInput converts the request to a domain input.
func (r *UpdateCredentialRequest) ToInput() *credentialDomain.UpdateCredentialInput {
	input := &credentialDomain.UpdateCredentialInput{
		ServiceName:      r.ServiceName,
		Username:         r.Username,
		Password:         r.Password,
		URL:              r.URL,
		Notes:            r.Notes,
		IncomingServer:   r.IncomingServer,
		IncomingPort:     r.IncomingPort,
		IncomingSSL:      r.IncomingSSL,
		OutgoingServer:   r.OutgoingServer,
		OutgoingPort:     r.OutgoingPort,
		OutgoingUser:     r.OutgoingUsername,
		OutgoingPassword: r.OutgoingPassword,
		OutgoingSSL:      r.OutgoingSSL,
	}
	if r.IncomingUsername != nil {
		input.Username = r.IncomingUsername
	}
	if r.IncomingPassword != nil {
		input.Password = r.IncomingPassword
	}
	return input
}

func uuidString(value interface{}) error {
	s, _ := value.(string)
	if _, err := uuid.Parse(s); err != nil {
		return validation.NewError("validation_uuid", "must be a valid UUID")
	}
	return nil
}
