// Package http provides authentication middleware, the login endpoint and
// the request context helpers that carry the authenticated actor.
package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/httputil"
)

// actorKey is a context key type for storing the authenticated actor.
type actorKey struct{}

// WithActor stores the authenticated actor in the context.
// This is typically called by the authentication middleware after successful token validation.
func WithActor(ctx context.Context, actor *authDomain.Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// GetActor retrieves the authenticated actor from the context.
// Returns (actor, true) if an actor is present, or (nil, false) otherwise.
func GetActor(ctx context.Context) (*authDomain.Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(*authDomain.Actor)
	return actor, ok && actor != nil
}

// RequireActor returns the authenticated actor of the request. When none is
// present it writes a 401 response and returns false.
func RequireActor(c *gin.Context, logger *slog.Logger) (*authDomain.Actor, bool) {
	actor, ok := GetActor(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
		return nil, false
	}
	return actor, true
}
