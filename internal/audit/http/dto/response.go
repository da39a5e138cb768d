// Package dto provides data transfer objects for audit log HTTP responses.
package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/httputil"
)

// AuditLogResponse represents an audit log entry in API responses.
// Signatures are not exposed; integrity is checked with the verify-audit-logs command.
type AuditLogResponse struct {
	ID           string         `json:"id"`
	UserID       *string        `json:"userId"`
	UserEmail    string         `json:"userEmail"`
	UserRole     string         `json:"userRole"`
	Action       string         `json:"action"`
	Resource     string         `json:"resource"`
	ResourceID   string         `json:"resourceId,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
	RequestID    string         `json:"requestId,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	Success      bool           `json:"success"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
}

// MapAuditLogToResponse converts a domain audit entry to an API response.
func MapAuditLogToResponse(entry *auditDomain.Entry) AuditLogResponse {
	var userID *string
	if entry.UserID != uuid.Nil {
		userID = lo.ToPtr(entry.UserID.String())
	}

	return AuditLogResponse{
		ID:           entry.ID.String(),
		UserID:       userID,
		UserEmail:    entry.UserEmail,
		UserRole:     entry.UserRole,
		Action:       string(entry.Action),
		Resource:     string(entry.Resource),
		ResourceID:   entry.ResourceID,
		Details:      entry.Details,
		IPAddress:    entry.IPAddress,
		UserAgent:    entry.UserAgent,
		RequestID:    entry.RequestID,
		Timestamp:    entry.Timestamp,
		Success:      entry.Success,
		ErrorMessage: entry.ErrorMessage,
	}
}

// ListAuditLogsResponse represents a page of audit logs in API responses.
type ListAuditLogsResponse struct {
	Logs       []AuditLogResponse  `json:"logs"`
	Pagination httputil.Pagination `json:"pagination"`
}

// MapAuditLogsToListResponse converts a page of domain entries to a list API response.
func MapAuditLogsToListResponse(
	entries []*auditDomain.Entry,
	offset, limit, total int,
) ListAuditLogsResponse {
	return ListAuditLogsResponse{
		Logs: lo.Map(entries, func(entry *auditDomain.Entry, _ int) AuditLogResponse {
			return MapAuditLogToResponse(entry)
		}),
		Pagination: httputil.Pagination{Limit: limit, Offset: offset, Total: total},
	}
}
