// Package domain defines credential records, their email server sub-document
// and the validation rules for both credential types.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CredentialType discriminates the shape of a credential.
type CredentialType string

const (
	// CredentialTypeGeneral is a login for a web service or application.
	CredentialTypeGeneral CredentialType = "general"
	// CredentialTypeEmail is a mailbox with its incoming and outgoing servers.
	CredentialTypeEmail CredentialType = "email"
)

// IsValid reports whether t is a known credential type.
func (t CredentialType) IsValid() bool {
	return t == CredentialTypeGeneral || t == CredentialTypeEmail
}

// Credential is a stored record. Password always holds an EncodedBlob; for email
// credentials it is the incoming password and Notes holds the serialized EmailConfig.
type Credential struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	ServiceName    string
	Username       string
	Password       string
	URL            string
	Notes          string
	CredentialType CredentialType
	CreatedBy      string
	CreatedByID    uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
	LastAccessedAt *time.Time
}

// ResolveType returns the persisted type. Rows written before the type column
// existed have it empty and are classified by the shape of their notes.
func (c *Credential) ResolveType() CredentialType {
	if c.CredentialType.IsValid() {
		return c.CredentialType
	}
	if _, ok := DeserializeEmailConfig(c.Notes); ok {
		return CredentialTypeEmail
	}
	return CredentialTypeGeneral
}

// Fields returns the plaintext view of the record used to apply and validate
// updates. Stored passwords are left empty and marked as present. cfg is the
// deserialized email sub-document and is ignored for general credentials.
func (c *Credential) Fields(cfg *EmailConfig) *Fields {
	f := &Fields{
		ServiceName:    c.ServiceName,
		Username:       c.Username,
		URL:            c.URL,
		Notes:          c.Notes,
		storedPassword: c.Password != "",
	}
	if c.ResolveType() == CredentialTypeEmail && cfg != nil {
		f.URL = ""
		f.Notes = cfg.AdditionalNotes
		f.Email = EmailServers{
			IncomingServer: cfg.IncomingServer,
			IncomingPort:   int(cfg.IncomingPort),
			IncomingSSL:    cfg.IncomingSSL,
			OutgoingServer: cfg.OutgoingServer,
			OutgoingPort:   int(cfg.OutgoingPort),
			OutgoingUser:   cfg.OutgoingUsername,
			OutgoingSSL:    cfg.OutgoingSSL,
		}
		f.storedOutgoingPassword = cfg.OutgoingPassword != ""
	}
	return f
}

// Fields is the plaintext content of a credential. For email credentials
// Username and Password are the incoming mailbox login and Notes is the
// additional notes of the email sub-document.
type Fields struct {
	ServiceName string
	Username    string
	Password    string
	URL         string
	Notes       string
	Email       EmailServers

	storedPassword         bool
	storedOutgoingPassword bool
}

// EmailServers holds the server settings of an email credential.
type EmailServers struct {
	IncomingServer   string
	IncomingPort     int
	IncomingSSL      bool
	OutgoingServer   string
	OutgoingPort     int
	OutgoingUser     string
	OutgoingPassword string
	OutgoingSSL      bool
}

// CreateCredentialInput contains the fields of a new credential.
type CreateCredentialInput struct {
	ClientID       uuid.UUID
	CredentialType CredentialType
	Fields
}

// Validate applies the rules of the input's credential type.
func (i *CreateCredentialInput) Validate() error {
	switch i.CredentialType {
	case CredentialTypeGeneral:
		return ValidateGeneral(&i.Fields)
	case CredentialTypeEmail:
		return ValidateEmail(&i.Fields)
	default:
		return ErrInvalidCredentialType
	}
}

// UpdateCredentialInput contains the fields to change. Nil fields are left untouched.
type UpdateCredentialInput struct {
	ServiceName *string
	Username    *string
	Password    *string
	URL         *string
	Notes       *string

	IncomingServer   *string
	IncomingPort     *int
	IncomingSSL      *bool
	OutgoingServer   *string
	OutgoingPort     *int
	OutgoingUser     *string
	OutgoingPassword *string
	OutgoingSSL      *bool
}

// Filter narrows credential listings. Nil fields match everything.
type Filter struct {
	ClientID    *uuid.UUID
	CreatedByID *uuid.UUID
}

// DecryptedCredential is the plaintext form returned by a decrypt. It is never persisted.
type DecryptedCredential struct {
	ID             uuid.UUID
	ServiceName    string
	Username       string
	Password       string
	URL            string
	CredentialType CredentialType

	// EmailConfig carries the outgoing password in plaintext.
	EmailConfig *EmailConfig
}

// DecryptionFailedPlaceholder replaces passwords that cannot be decrypted in exports.
const DecryptionFailedPlaceholder = "[decryption failed]"

// ExportedCredential is one decrypted row of an export.
type ExportedCredential struct {
	DecryptedCredential
	Notes     string
	CreatedBy string
	CreatedAt time.Time
}

// Export is the decrypted credential set of one client.
type Export struct {
	ClientID      uuid.UUID
	ClientName    string
	ContactPerson string
	GeneratedBy   string
	GeneratedAt   time.Time
	Credentials   []*ExportedCredential
}
