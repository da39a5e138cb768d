// Package usecase implements staff login and logout.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// StaffReader looks up staff accounts by email.
type StaffReader interface {
	GetByEmail(ctx context.Context, email string) (*staffDomain.Staff, error)
}

// PasswordVerifier checks passwords against stored hashes.
type PasswordVerifier interface {
	Verify(password, hash string) bool
	// DummyHash is verified against when the account does not exist.
	DummyHash() string
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(actor *authDomain.Actor) (string, time.Time, error)
}

// LoginOutput is the result of a successful login.
type LoginOutput struct {
	Token     string
	ExpiresAt time.Time
	Staff     *staffDomain.Staff
}

// LoginUseCase defines the authentication operations.
type LoginUseCase interface {
	// Login exchanges an email and password for a session token. Unknown emails
	// and wrong passwords both fail with ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*LoginOutput, error)

	// Logout records the end of a session. Tokens are stateless and stay valid until they expire.
	Logout(ctx context.Context, actor *authDomain.Actor)
}
