// Package http provides HTTP handlers for credential management.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/credvault/internal/auth/http"
	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	"github.com/allisson/credvault/internal/credential/http/dto"
	credentialUseCase "github.com/allisson/credvault/internal/credential/usecase"
	"github.com/allisson/credvault/internal/httputil"
	customValidation "github.com/allisson/credvault/internal/validation"
)

const defaultListLimit = 50

// CredentialHandler handles HTTP requests for credential operations.
type CredentialHandler struct {
	credentialUseCase credentialUseCase.CredentialUseCase
	logger            *slog.Logger
}

// NewCredentialHandler creates a new credential handler with required dependencies.
func NewCredentialHandler(
	credentialUseCase credentialUseCase.CredentialUseCase,
	logger *slog.Logger,
) *CredentialHandler {
	return &CredentialHandler{
		credentialUseCase: credentialUseCase,
		logger:            logger,
	}
}

// CreateHandler stores a new credential owned by the caller.
// POST /v1/credentials - Returns 201 Created with the encoded credential.
func (h *CredentialHandler) CreateHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	var req dto.CreateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	credential, err := h.credentialUseCase.Create(c.Request.Context(), actor, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCredentialToResponse(credential))
}

// GetHandler retrieves a credential with its password still encoded.
// GET /v1/credentials/:id
func (h *CredentialHandler) GetHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.parseID(c, "credential")
	if !ok {
		return
	}

	credential, err := h.credentialUseCase.Get(c.Request.Context(), actor, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// DecryptHandler returns the plaintext of a credential.
// POST /v1/credentials/:id/decrypt - Only the creator or an admin may decrypt.
func (h *CredentialHandler) DecryptHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.parseID(c, "credential")
	if !ok {
		return
	}

	decrypted, err := h.credentialUseCase.Decrypt(c.Request.Context(), actor, id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapDecryptedToResponse(decrypted))
}

// ListHandler retrieves credentials with pagination and an optional client filter.
// GET /v1/credentials?client_id=<uuid>&offset=0&limit=50
func (h *CredentialHandler) ListHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c, defaultListLimit)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	var filter credentialDomain.Filter
	if raw := c.Query("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid client_id parameter: must be a valid UUID"), h.logger)
			return
		}
		filter.ClientID = &clientID
	}

	credentials, total, err := h.credentialUseCase.List(c.Request.Context(), actor, filter, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialsToListResponse(credentials, offset, limit, total))
}

// UpdateHandler applies a partial update to a credential.
// PATCH /v1/credentials/:id - Only supplied passwords are re-encrypted.
func (h *CredentialHandler) UpdateHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.parseID(c, "credential")
	if !ok {
		return
	}

	var req dto.UpdateCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	credential, err := h.credentialUseCase.Update(c.Request.Context(), actor, id, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapCredentialToResponse(credential))
}

// DeleteHandler deletes a credential.
// DELETE /v1/credentials/:id - Returns 204 No Content.
func (h *CredentialHandler) DeleteHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	id, ok := h.parseID(c, "credential")
	if !ok {
		return
	}

	if err := h.credentialUseCase.Delete(c.Request.Context(), actor, id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Data(http.StatusNoContent, "application/json", nil)
}

// ExportHandler returns the decrypted credentials of a client.
// GET /v1/clients/:id/export - Non-admins only receive the credentials they created.
func (h *CredentialHandler) ExportHandler(c *gin.Context) {
	actor, ok := authHTTP.RequireActor(c, h.logger)
	if !ok {
		return
	}

	clientID, ok := h.parseID(c, "client")
	if !ok {
		return
	}

	export, err := h.credentialUseCase.Export(c.Request.Context(), actor, clientID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.MapExportToResponse(export))
}

func (h *CredentialHandler) parseID(c *gin.Context, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(
			c,
			fmt.Errorf("invalid %s ID format: must be a valid UUID", resource),
			h.logger,
		)
		return uuid.Nil, false
	}
	return id, true
}
