package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/credvault/internal/auth/http/dto"
	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	"github.com/allisson/credvault/internal/httputil"
	customValidation "github.com/allisson/credvault/internal/validation"
)

// LoginHandler handles staff sign-in and sign-out.
type LoginHandler struct {
	loginUseCase authUseCase.LoginUseCase
	logger       *slog.Logger
}

// NewLoginHandler creates a new login handler with required dependencies.
func NewLoginHandler(loginUseCase authUseCase.LoginUseCase, logger *slog.Logger) *LoginHandler {
	return &LoginHandler{
		loginUseCase: loginUseCase,
		logger:       logger,
	}
}

// LoginHandler exchanges staff credentials for a session token.
// POST /v1/auth/login - No authentication required. Rate limited per IP.
func (h *LoginHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.loginUseCase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		Staff: dto.LoginStaff{
			ID:    output.Staff.ID.String(),
			Name:  output.Staff.Name,
			Email: output.Staff.Email,
			Role:  string(output.Staff.Role),
		},
	})
}

// LogoutHandler records the end of the caller's session.
// POST /v1/auth/logout - Returns 204 No Content.
func (h *LoginHandler) LogoutHandler(c *gin.Context) {
	actor, ok := RequireActor(c, h.logger)
	if !ok {
		return
	}

	h.loginUseCase.Logout(c.Request.Context(), actor)
	c.Data(http.StatusNoContent, "application/json", nil)
}
