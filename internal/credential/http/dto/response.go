package dto

import (
	"time"

	"github.com/samber/lo"

	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	"github.com/allisson/credvault/internal/httputil"
)

// EmailConfigResponse represents the server settings of an email credential.
// OutgoingPassword is encoded except in decrypt and export responses.
type EmailConfigResponse struct {
	IncomingServer   string `json:"incomingServer"`
	IncomingPort     int    `json:"incomingPort"`
	IncomingUsername string `json:"incomingUsername"`
	IncomingSSL      bool   `json:"incomingSSL"`
	OutgoingServer   string `json:"outgoingServer"`
	OutgoingPort     int    `json:"outgoingPort"`
	OutgoingUsername string `json:"outgoingUsername"`
	OutgoingPassword string `json:"outgoingPassword"`
	OutgoingSSL      bool   `json:"outgoingSSL"`
	AdditionalNotes  string `json:"additionalNotes"`
}

func mapEmailConfig(cfg *credentialDomain.EmailConfig) *EmailConfigResponse {
	if cfg == nil {
		return nil
	}
	return &EmailConfigResponse{
		IncomingServer:   cfg.IncomingServer,
		IncomingPort:     int(cfg.IncomingPort),
		IncomingUsername: cfg.IncomingUsername,
		IncomingSSL:      cfg.IncomingSSL,
		OutgoingServer:   cfg.OutgoingServer,
		OutgoingPort:     int(cfg.OutgoingPort),
		OutgoingUsername: cfg.OutgoingUsername,
		OutgoingPassword: cfg.OutgoingPassword,
		OutgoingSSL:      cfg.OutgoingSSL,
		AdditionalNotes:  cfg.AdditionalNotes,
	}
}

// CredentialResponse represents a stored credential. Password is the encoded blob.
type CredentialResponse struct {
	ID             string               `json:"id"`
	ClientID       string               `json:"clientId"`
	ServiceName    string               `json:"serviceName"`
	Username       string               `json:"username"`
	Password       string               `json:"password"`
	URL            string               `json:"url"`
	Notes          string               `json:"notes"`
	CredentialType string               `json:"credentialType"`
	EmailConfig    *EmailConfigResponse `json:"emailConfig,omitempty"`
	CreatedBy      string               `json:"createdBy"`
	CreatedByID    string               `json:"createdById"`
	CreatedAt      time.Time            `json:"createdAt"`
	UpdatedAt      time.Time            `json:"updatedAt"`
	LastAccessedAt *time.Time           `json:"lastAccessedAt,omitempty"`
}

// MapCredentialToResponse converts a domain credential to an API response.
func MapCredentialToResponse(credential *credentialDomain.Credential) CredentialResponse {
	response := CredentialResponse{
		ID:             credential.ID.String(),
		ClientID:       credential.ClientID.String(),
		ServiceName:    credential.ServiceName,
		Username:       credential.Username,
		Password:       credential.Password,
		URL:            credential.URL,
		Notes:          credential.Notes,
		CredentialType: string(credential.ResolveType()),
		CreatedBy:      credential.CreatedBy,
		CreatedByID:    credential.CreatedByID.String(),
		CreatedAt:      credential.CreatedAt,
		UpdatedAt:      credential.UpdatedAt,
		LastAccessedAt: credential.LastAccessedAt,
	}
	if response.CredentialType == string(credentialDomain.CredentialTypeEmail) {
		if cfg, ok := credentialDomain.DeserializeEmailConfig(credential.Notes); ok {
			response.EmailConfig = mapEmailConfig(cfg)
			response.Notes = cfg.AdditionalNotes
		}
	}
	return response
}

// ListCredentialsResponse represents a page of credentials in API responses.
type ListCredentialsResponse struct {
	Credentials []CredentialResponse `json:"credentials"`
	Pagination  httputil.Pagination  `json:"pagination"`
}

// MapCredentialsToListResponse converts a page of credentials.
func MapCredentialsToListResponse(
	credentials []*credentialDomain.Credential,
	offset, limit, total int,
) ListCredentialsResponse {
	return ListCredentialsResponse{
		Credentials: lo.Map(credentials, func(credential *credentialDomain.Credential, _ int) CredentialResponse {
			return MapCredentialToResponse(credential)
		}),
		Pagination: httputil.Pagination{Limit: limit, Offset: offset, Total: total},
	}
}

// DecryptedCredentialResponse represents the plaintext form of a credential.
type DecryptedCredentialResponse struct {
	ID             string               `json:"id"`
	ServiceName    string               `json:"serviceName"`
	Username       string               `json:"username"`
	Password       string               `json:"password"`
	URL            string               `json:"url,omitempty"`
	CredentialType string               `json:"credentialType"`
	EmailConfig    *EmailConfigResponse `json:"emailConfig,omitempty"`
}

// MapDecryptedToResponse converts a decrypted credential to an API response.
func MapDecryptedToResponse(decrypted *credentialDomain.DecryptedCredential) DecryptedCredentialResponse {
	return DecryptedCredentialResponse{
		ID:             decrypted.ID.String(),
		ServiceName:    decrypted.ServiceName,
		Username:       decrypted.Username,
		Password:       decrypted.Password,
		URL:            decrypted.URL,
		CredentialType: string(decrypted.CredentialType),
		EmailConfig:    mapEmailConfig(decrypted.EmailConfig),
	}
}

// ExportedCredentialResponse is one row of an export.
type ExportedCredentialResponse struct {
	DecryptedCredentialResponse
	Notes     string    `json:"notes"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExportResponse represents the decrypted credentials of a client.
type ExportResponse struct {
	ClientID      string                       `json:"clientId"`
	ClientName    string                       `json:"clientName"`
	ContactPerson string                       `json:"contactPerson"`
	GeneratedBy   string                       `json:"generatedBy"`
	GeneratedAt   time.Time                    `json:"generatedAt"`
	Credentials   []ExportedCredentialResponse `json:"credentials"`
}

// MapExportToResponse converts an export to an API response.
func MapExportToResponse(export *credentialDomain.Export) ExportResponse {
	return ExportResponse{
		ClientID:      export.ClientID.String(),
		ClientName:    export.ClientName,
		ContactPerson: export.ContactPerson,
		GeneratedBy:   export.GeneratedBy,
		GeneratedAt:   export.GeneratedAt,
		Credentials: lo.Map(
			export.Credentials,
			func(credential *credentialDomain.ExportedCredential, _ int) ExportedCredentialResponse {
				return ExportedCredentialResponse{
					DecryptedCredentialResponse: MapDecryptedToResponse(&credential.DecryptedCredential),
					Notes:                       credential.Notes,
					CreatedBy:                   credential.CreatedBy,
					CreatedAt:                   credential.CreatedAt,
				}
			},
		),
	}
}
