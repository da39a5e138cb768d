// Package http provides HTTP handlers for staff management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/httputil"
	"github.com/allisson/credvault/internal/staff/http/dto"
	staffUseCase "github.com/allisson/credvault/internal/staff/usecase"
	customValidation "github.com/allisson/credvault/internal/validation"
)

const defaultListLimit = 50

// StaffHandler handles HTTP requests for staff management operations.
// Routes are mounted behind the admin-only middleware; the use case checks the role again.
type StaffHandler struct {
	staffUseCase staffUseCase.StaffUseCase
	logger       *slog.Logger
}

// NewStaffHandler creates a new staff handler with required dependencies.
func NewStaffHandler(staffUseCase staffUseCase.StaffUseCase, logger *slog.Logger) *StaffHandler {
	return &StaffHandler{
		staffUseCase: staffUseCase,
		logger:       logger,
	}
}

// ListHandler lists staff accounts.
// GET /v1/staff?offset=&limit=
func (h *StaffHandler) ListHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c, defaultListLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	staff, total, err := h.staffUseCase.List(c.Request.Context(), actor, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStaffToListResponse(staff, offset, limit, total))
}

// CreateHandler creates a staff account.
// POST /v1/staff - Returns 201 Created.
func (h *StaffHandler) CreateHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	staff, err := h.staffUseCase.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapStaffToResponse(staff))
}

// UpdateRoleHandler changes the role of a staff account.
// PATCH /v1/staff/:id/role
func (h *StaffHandler) UpdateRoleHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	staff, err := h.staffUseCase.UpdateRole(c.Request.Context(), actor, id, authDomain.Role(req.Role))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStaffToResponse(staff))
}

// DeleteHandler deletes a staff account.
// DELETE /v1/staff/:id - Returns 204 No Content.
func (h *StaffHandler) DeleteHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.staffUseCase.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *StaffHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid staff ID format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
