// Package http provides HTTP handlers for audit log queries.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/audit/http/dto"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	"github.com/allisson/credvault/internal/httputil"
)

// AuditLogHandler handles HTTP requests for audit log operations.
type AuditLogHandler struct {
	auditLogUseCase auditUseCase.AuditLogUseCase
	logger          *slog.Logger
}

// NewAuditLogHandler creates a new audit log handler with required dependencies.
func NewAuditLogHandler(
	auditLogUseCase auditUseCase.AuditLogUseCase,
	logger *slog.Logger,
) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUseCase: auditLogUseCase,
		logger:          logger,
	}
}

// ListHandler retrieves audit logs with pagination and optional filters.
// GET /v1/audit-logs?user_id=&action=&resource=&created_at_from=&created_at_to=&offset=0&limit=100
// Admin only. Limits above 1000 are rejected with 400. Timestamps are RFC3339.
func (h *AuditLogHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c, auditDomain.DefaultQueryLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter, err := parseFilter(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	entries, total, err := h.auditLogUseCase.List(c.Request.Context(), filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapAuditLogsToListResponse(entries, offset, limit, total))
}

func parseFilter(c *gin.Context) (auditDomain.Filter, error) {
	filter := auditDomain.Filter{
		Action:   auditDomain.Action(c.Query("action")),
		Resource: auditDomain.Resource(c.Query("resource")),
	}

	if raw := c.Query("user_id"); raw != "" {
		userID, err := uuid.Parse(raw)
		if err != nil {
			return filter, fmt.Errorf("invalid user_id parameter: must be a UUID")
		}
		filter.UserID = &userID
	}

	var err error
	if filter.CreatedAtFrom, err = parseTimeQuery(c, "created_at_from"); err != nil {
		return filter, err
	}
	if filter.CreatedAtTo, err = parseTimeQuery(c, "created_at_to"); err != nil {
		return filter, err
	}

	if filter.CreatedAtFrom != nil && filter.CreatedAtTo != nil && filter.CreatedAtFrom.After(*filter.CreatedAtTo) {
		return filter, fmt.Errorf("created_at_from must be before or equal to created_at_to")
	}

	return filter, nil
}

func parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: must be RFC3339 (e.g., 2026-02-01T00:00:00Z)", name)
	}
	utc := parsed.UTC()
	return &utc, nil
}
