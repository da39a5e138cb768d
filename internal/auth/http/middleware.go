package http

import (
	"log/slog"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/httputil"
)

// TokenParser resolves a session token to the actor it was issued for.
type TokenParser interface {
	Parse(token string) (*authDomain.Actor, error)
}

// AuthenticationMiddleware resolves the actor from an "Authorization: Bearer <jwt>"
// header (the scheme is case-insensitive) and stores it in the request context.
//
// Missing, malformed, expired or wrongly signed tokens get 401 Unauthorized.
func AuthenticationMiddleware(tokens TokenParser, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		actor, err := tokens.Parse(token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// AdminOnlyMiddleware rejects actors that may not manage staff with 403 Forbidden
// and records the attempt as a SECURITY_VIOLATION. Must run after AuthenticationMiddleware.
func AdminOnlyMiddleware(auditSink auditUseCase.AuditSink, logger *slog.Logger) gin.HandlerFunc {
	recorder := auditUseCase.NewRecorder(auditSink, logger)

	return func(c *gin.Context) {
		actor, ok := RequireActor(c, logger)
		if !ok {
			c.Abort()
			return
		}

		if !authDomain.CanManageStaff(actor) {
			recorder.Record(c.Request.Context(), auditDomain.NewEntry(
				actor, auditDomain.ActionSecurityViolation, auditDomain.ResourceSystem, "",
				map[string]any{"method": c.Request.Method, "path": c.FullPath()},
			).Fail(apperrors.Message(authDomain.ErrAdminRequired)))

			httputil.HandleErrorGin(c, authDomain.ErrAdminRequired, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequestMetaMiddleware copies the client IP, user agent and request id into
// the request context so audit entries can carry them. Must run after requestid.New().
func RequestMetaMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := auditDomain.WithRequestMeta(c.Request.Context(), auditDomain.RequestMeta{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			RequestID: requestid.Get(c),
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
