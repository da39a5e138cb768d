package usecase

import (
	"context"
	"log/slog"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	apperrors "github.com/allisson/credvault/internal/errors"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// loginUseCase implements LoginUseCase.
type loginUseCase struct {
	staffReader StaffReader
	verifier    PasswordVerifier
	tokens      TokenIssuer
	recorder    *auditUseCase.Recorder
	logger      *slog.Logger
}

func (l *loginUseCase) Login(ctx context.Context, email, password string) (*LoginOutput, error) {
	email = staffDomain.NormalizeEmail(email)

	staff, err := l.staffReader.GetByEmail(ctx, email)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if staff == nil {
		l.verifier.Verify(password, l.verifier.DummyHash())
		l.recordFailure(ctx, nil, email, "unknown email")
		return nil, authDomain.ErrInvalidCredentials
	}

	if !l.verifier.Verify(password, staff.PasswordHash) {
		l.recordFailure(ctx, staff.Actor(), email, "invalid password")
		return nil, authDomain.ErrInvalidCredentials
	}

	token, expiresAt, err := l.tokens.Issue(staff.Actor())
	if err != nil {
		return nil, err
	}

	l.recorder.Record(ctx, auditDomain.NewEntry(
		staff.Actor(), auditDomain.ActionLogin, auditDomain.ResourceAuth, staff.ID.String(), nil,
	))

	l.logger.Info("staff logged in", slog.String("staff_id", staff.ID.String()))

	return &LoginOutput{Token: token, ExpiresAt: expiresAt, Staff: staff}, nil
}

func (l *loginUseCase) Logout(ctx context.Context, actor *authDomain.Actor) {
	l.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionLogout, auditDomain.ResourceAuth, actor.ID.String(), nil,
	))
}

// recordFailure records LOGIN_FAILED. The attempted email is kept even when no account matches.
func (l *loginUseCase) recordFailure(ctx context.Context, actor *authDomain.Actor, email, reason string) {
	entry := auditDomain.NewEntry(
		actor, auditDomain.ActionLoginFailed, auditDomain.ResourceAuth, "",
		map[string]any{"email": email},
	).Fail(reason)
	entry.UserEmail = email
	l.recorder.Record(ctx, entry)
}

// NewLoginUseCase creates a new LoginUseCase with the provided dependencies.
func NewLoginUseCase(
	staffReader StaffReader,
	verifier PasswordVerifier,
	tokens TokenIssuer,
	auditSink auditUseCase.AuditSink,
	logger *slog.Logger,
) LoginUseCase {
	return &loginUseCase{
		staffReader: staffReader,
		verifier:    verifier,
		tokens:      tokens,
		recorder:    auditUseCase.NewRecorder(auditSink, logger),
		logger:      logger,
	}
}
