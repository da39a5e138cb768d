// Package service provides session tokens and password hashing for staff authentication.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
)

// DevFallbackSecret signs tokens when JWT_SECRET is unset. Never use it outside development.
const DevFallbackSecret = "credvault-insecure-development-secret"

// sessionClaims are the claims carried by a session token. The subject is the staff id.
type sessionClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and parses HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret. Tokens expire after ttl.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for actor and returns it with its expiration time.
func (s *TokenService) Issue(actor *authDomain.Actor) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl)

	claims := sessionClaims{
		Email: actor.Email,
		Role:  string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}
	return signed, expiresAt, nil
}

// Parse verifies token and returns the actor it was issued for. Tokens signed
// with another algorithm, expired tokens and tokens without a valid subject or
// role fail with ErrInvalidToken.
func (s *TokenService) Parse(token string) (*authDomain.Actor, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}

	role := authDomain.Role(claims.Role)
	if !role.IsValid() {
		return nil, authDomain.ErrInvalidToken
	}

	return &authDomain.Actor{ID: id, Email: claims.Email, Role: role}, nil
}
