// Package http provides HTTP handlers for client management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	"github.com/allisson/credvault/internal/client/http/dto"
	clientUseCase "github.com/allisson/credvault/internal/client/usecase"
	"github.com/allisson/credvault/internal/httputil"
	customValidation "github.com/allisson/credvault/internal/validation"
)

const defaultListLimit = 50

// ClientHandler handles HTTP requests for client management operations.
type ClientHandler struct {
	clientUseCase clientUseCase.ClientUseCase
	logger        *slog.Logger
}

// NewClientHandler creates a new client handler with required dependencies.
func NewClientHandler(clientUseCase clientUseCase.ClientUseCase, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		clientUseCase: clientUseCase,
		logger:        logger,
	}
}

// CreateHandler creates a new client owned by the caller.
// POST /v1/clients - Returns 201 Created with the client.
func (h *ClientHandler) CreateHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	client, err := h.clientUseCase.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapClientToResponse(client))
}

// GetHandler retrieves a client by ID.
// GET /v1/clients/:id
func (h *ClientHandler) GetHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	clientID, ok := h.parseID(c)
	if !ok {
		return
	}

	client, err := h.clientUseCase.Get(c.Request.Context(), actor, clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// ListHandler retrieves clients with pagination.
// GET /v1/clients?offset=0&limit=50
func (h *ClientHandler) ListHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c, defaultListLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	clients, total, err := h.clientUseCase.List(c.Request.Context(), actor, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientsToListResponse(clients, offset, limit, total))
}

// UpdateHandler applies a partial update to a client.
// PATCH /v1/clients/:id - Only the creator or an admin may update.
func (h *ClientHandler) UpdateHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	clientID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	client, err := h.clientUseCase.Update(c.Request.Context(), actor, clientID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClientToResponse(client))
}

// DeleteHandler deletes a client and its credentials.
// DELETE /v1/clients/:id - Returns 204 No Content.
func (h *ClientHandler) DeleteHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	clientID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.clientUseCase.Delete(c.Request.Context(), actor, clientID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

func (h *ClientHandler) parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid client ID format: must be a valid UUID"), h.logger)
		return uuid.Nil, false
	}
	return id, true
}
