// Package domain defines audit entries, their actions and resources, and the
// request metadata attached to them.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/validation"
)

// Action is the security-relevant operation an entry describes.
type Action string

const (
	ActionLogin       Action = "LOGIN"
	ActionLogout      Action = "LOGOUT"
	ActionLoginFailed Action = "LOGIN_FAILED"

	ActionCreateUser     Action = "CREATE_USER"
	ActionUpdateUser     Action = "UPDATE_USER"
	ActionDeleteUser     Action = "DELETE_USER"
	ActionUpdateUserRole Action = "UPDATE_USER_ROLE"

	ActionCreateClient Action = "CREATE_CLIENT"
	ActionUpdateClient Action = "UPDATE_CLIENT"
	ActionDeleteClient Action = "DELETE_CLIENT"
	ActionViewClient   Action = "VIEW_CLIENT"

	ActionCreateCredential  Action = "CREATE_CREDENTIAL"
	ActionUpdateCredential  Action = "UPDATE_CREDENTIAL"
	ActionDeleteCredential  Action = "DELETE_CREDENTIAL"
	ActionViewCredential    Action = "VIEW_CREDENTIAL"
	ActionDecryptCredential Action = "DECRYPT_CREDENTIAL"

	ActionExportPDF  Action = "EXPORT_PDF"
	ActionExportData Action = "EXPORT_DATA"

	ActionSystemError       Action = "SYSTEM_ERROR"
	ActionSecurityViolation Action = "SECURITY_VIOLATION"
)

// Resource is the kind of object an entry refers to.
type Resource string

const (
	ResourceUser       Resource = "USER"
	ResourceClient     Resource = "CLIENT"
	ResourceCredential Resource = "CREDENTIAL"
	ResourceSystem     Resource = "SYSTEM"
	ResourceAuth       Resource = "AUTH"
)

// Query limits. Limits above MaxQueryLimit are rejected, not clamped.
const (
	DefaultQueryLimit = 100
	MaxQueryLimit     = validation.MaxPageLimit
)

// Entry is an immutable audit record. Details never carry secret values.
type Entry struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	UserEmail    string
	UserRole     string
	Action       Action
	Resource     Resource
	ResourceID   string
	Details      map[string]any
	IPAddress    string
	UserAgent    string
	RequestID    string
	Timestamp    time.Time
	Success      bool
	ErrorMessage string
	Signature    []byte
	KeyID        string
}

// NewEntry starts a successful entry for actor. A nil actor yields an anonymous entry.
func NewEntry(
	actor *authDomain.Actor,
	action Action,
	resource Resource,
	resourceID string,
	details map[string]any,
) *Entry {
	entry := &Entry{
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Details:    details,
		Success:    true,
	}
	if actor != nil {
		entry.UserID = actor.ID
		entry.UserEmail = actor.Email
		entry.UserRole = string(actor.Role)
	}
	return entry
}

// Fail marks the entry as a failed attempt with the given message.
func (e *Entry) Fail(message string) *Entry {
	e.Success = false
	e.ErrorMessage = message
	return e
}

// Filter narrows audit queries. Zero values match everything.
type Filter struct {
	UserID        *uuid.UUID
	Action        Action
	Resource      Resource
	CreatedAtFrom *time.Time
	CreatedAtTo   *time.Time
}

// IntegrityReport summarizes a signature verification run.
type IntegrityReport struct {
	Total        int
	Valid        int
	Invalid      int
	Unsigned     int
	Unverifiable int
	InvalidIDs   []uuid.UUID
}

// Passed reports whether no entry failed verification.
func (r *IntegrityReport) Passed() bool {
	return r.Invalid == 0
}
