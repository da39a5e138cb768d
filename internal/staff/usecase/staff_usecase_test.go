package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditMocks "github.com/allisson/credvault/internal/audit/usecase/mocks"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	dbMocks "github.com/allisson/credvault/internal/database/mocks"
	apperrors "github.com/allisson/credvault/internal/errors"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
	"github.com/allisson/credvault/internal/staff/usecase/mocks"
)

type staffTestDeps struct {
	txManager *dbMocks.MockTxManager
	repo      *mocks.MockStaffRepository
	hasher    *mocks.MockPasswordHasher
	sink      *auditMocks.MockAuditSink
	useCase   StaffUseCase
}

func setupStaffUseCase(t *testing.T) *staffTestDeps {
	t.Helper()
	deps := &staffTestDeps{
		txManager: &dbMocks.MockTxManager{},
		repo:      &mocks.MockStaffRepository{},
		hasher:    &mocks.MockPasswordHasher{},
		sink:      &auditMocks.MockAuditSink{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	deps.useCase = NewStaffUseCase(deps.txManager, deps.repo, deps.hasher, deps.sink, logger)
	return deps
}

func expectAudit(sink *auditMocks.MockAuditSink, action auditDomain.Action, success bool) {
	sink.On("Append", mock.Anything, mock.MatchedBy(func(e *auditDomain.Entry) bool {
		return e.Action == action && e.Success == success
	})).Return(nil).Once()
}

func newActor(role authDomain.Role) *authDomain.Actor {
	return &authDomain.Actor{ID: uuid.Must(uuid.NewV7()), Email: "admin@example.com", Role: role}
}

func newStaff(role authDomain.Role) *staffDomain.Staff {
	return &staffDomain.Staff{
		ID:    uuid.Must(uuid.NewV7()),
		Name:  "John",
		Email: "john@example.com",
		Role:  role,
	}
}

func validInput() *staffDomain.CreateStaffInput {
	return &staffDomain.CreateStaffInput{
		Name:     " John ",
		Email:    "John@Example.com",
		Password: "Str0ng!pass",
		Role:     authDomain.RoleUser,
	}
}

func TestStaffUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_HashesPasswordAndNormalizes", func(t *testing.T) {
		deps := setupStaffUseCase(t)

		deps.hasher.On("Hash", "Str0ng!pass").Return("$argon2id$hash", nil).Once()
		deps.repo.On("Create", ctx, mock.MatchedBy(func(s *staffDomain.Staff) bool {
			return s.Email == "john@example.com" && s.Name == "John" && s.PasswordHash == "$argon2id$hash"
		})).Return(nil).Once()
		expectAudit(deps.sink, auditDomain.ActionCreateUser, true)

		staff, err := deps.useCase.Create(ctx, newActor(authDomain.RoleAdmin), validInput())

		require.NoError(t, err)
		assert.Equal(t, authDomain.RoleUser, staff.Role)
		assert.NotEqual(t, uuid.Nil, staff.ID)
		deps.repo.AssertExpectations(t)
		deps.sink.AssertExpectations(t)
	})

	t.Run("Error_NonAdminIsSecurityViolation", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		deps.sink.On("Append", mock.Anything, mock.MatchedBy(func(e *auditDomain.Entry) bool {
			return e.Action == auditDomain.ActionSecurityViolation &&
				!e.Success &&
				e.Details["attemptedAction"] == string(auditDomain.ActionCreateUser)
		})).Return(nil).Once()

		_, err := deps.useCase.Create(ctx, newActor(authDomain.RoleUser), validInput())

		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		deps.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		deps.sink.AssertExpectations(t)
	})

	t.Run("Error_WeakPassword", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		input := validInput()
		input.Password = "weakpass"

		_, err := deps.useCase.Create(ctx, newActor(authDomain.RoleAdmin), input)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		deps.hasher.AssertNotCalled(t, "Hash", mock.Anything)
	})

	t.Run("Error_DuplicateEmail", func(t *testing.T) {
		deps := setupStaffUseCase(t)

		deps.hasher.On("Hash", mock.Anything).Return("$argon2id$hash", nil).Once()
		deps.repo.On("Create", ctx, mock.Anything).Return(staffDomain.ErrStaffAlreadyExists).Once()
		expectAudit(deps.sink, auditDomain.ActionCreateUser, false)

		_, err := deps.useCase.Create(ctx, newActor(authDomain.RoleAdmin), validInput())

		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})
}

func TestStaffUseCase_Provision(t *testing.T) {
	ctx := context.Background()
	deps := setupStaffUseCase(t)
	input := validInput()
	input.Role = authDomain.RoleAdmin

	deps.hasher.On("Hash", mock.Anything).Return("$argon2id$hash", nil).Once()
	deps.repo.On("Create", ctx, mock.Anything).Return(nil).Once()
	deps.sink.On("Append", mock.Anything, mock.MatchedBy(func(e *auditDomain.Entry) bool {
		return e.Action == auditDomain.ActionCreateUser && e.UserID == uuid.Nil
	})).Return(nil).Once()

	staff, err := deps.useCase.Provision(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, authDomain.RoleAdmin, staff.Role)
}

func TestStaffUseCase_UpdateRole(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RecordsOldAndNewRole", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		staff := newStaff(authDomain.RoleUser)

		deps.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		deps.repo.On("GetByIDForUpdate", ctx, staff.ID).Return(staff, nil).Once()
		deps.repo.On("Update", ctx, mock.MatchedBy(func(s *staffDomain.Staff) bool {
			return s.Role == authDomain.RoleAdmin && !s.UpdatedAt.IsZero()
		})).Return(nil).Once()
		deps.sink.On("Append", mock.Anything, mock.MatchedBy(func(e *auditDomain.Entry) bool {
			return e.Action == auditDomain.ActionUpdateUserRole &&
				e.Details["oldRole"] == "USER" &&
				e.Details["newRole"] == "ADMIN"
		})).Return(nil).Once()

		result, err := deps.useCase.UpdateRole(ctx, newActor(authDomain.RoleAdmin), staff.ID, authDomain.RoleAdmin)

		require.NoError(t, err)
		assert.Equal(t, authDomain.RoleAdmin, result.Role)
		deps.sink.AssertExpectations(t)
	})

	t.Run("Error_InvalidRole", func(t *testing.T) {
		deps := setupStaffUseCase(t)

		_, err := deps.useCase.UpdateRole(ctx, newActor(authDomain.RoleAdmin), uuid.New(), authDomain.Role("ROOT"))

		assert.ErrorIs(t, err, staffDomain.ErrInvalidRole)
		deps.txManager.AssertNotCalled(t, "WithTx", mock.Anything, mock.Anything)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		id := uuid.New()

		deps.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		deps.repo.On("GetByIDForUpdate", ctx, id).Return(nil, staffDomain.ErrStaffNotFound).Once()

		_, err := deps.useCase.UpdateRole(ctx, newActor(authDomain.RoleAdmin), id, authDomain.RoleUser)

		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		deps.sink.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
	})
}

func TestStaffUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		staff := newStaff(authDomain.RoleUser)

		deps.txManager.On("WithTx", ctx, mock.Anything).Return(nil).Once()
		deps.repo.On("GetByIDForUpdate", ctx, staff.ID).Return(staff, nil).Once()
		deps.repo.On("Delete", ctx, staff.ID).Return(nil).Once()
		expectAudit(deps.sink, auditDomain.ActionDeleteUser, true)

		err := deps.useCase.Delete(ctx, newActor(authDomain.RoleAdmin), staff.ID)

		require.NoError(t, err)
		deps.sink.AssertExpectations(t)
	})

	t.Run("Success_AuditAppendRunsAfterCommit", func(t *testing.T) {
		repo := &mocks.MockStaffRepository{}
		sink := &auditMocks.MockAuditSink{}
		tx := &dbMocks.InlineTxManager{}
		staff := newStaff(authDomain.RoleUser)

		repo.On("GetByIDForUpdate", ctx, staff.ID).Return(staff, nil).Once()
		repo.On("Delete", ctx, staff.ID).Return(nil).Once()
		sink.On("Append", mock.Anything, mock.MatchedBy(func(e *auditDomain.Entry) bool {
			return e.Action == auditDomain.ActionDeleteUser && e.Success && !tx.Active()
		})).Return(nil).Once()

		uc := NewStaffUseCase(tx, repo, &mocks.MockPasswordHasher{}, sink,
			slog.New(slog.NewTextHandler(io.Discard, nil)))
		require.NoError(t, uc.Delete(ctx, newActor(authDomain.RoleAdmin), staff.ID))

		assert.Equal(t, 1, tx.Commits)
		sink.AssertExpectations(t)
	})

	t.Run("Error_CannotDeleteSelf", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		actor := newActor(authDomain.RoleAdmin)
		expectAudit(deps.sink, auditDomain.ActionDeleteUser, false)

		err := deps.useCase.Delete(ctx, actor, actor.ID)

		assert.ErrorIs(t, err, staffDomain.ErrCannotDeleteSelf)
		assert.Equal(t, "Cannot delete your own account", apperrors.Message(err))
		deps.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Error_NonAdmin", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		expectAudit(deps.sink, auditDomain.ActionSecurityViolation, false)

		err := deps.useCase.Delete(ctx, newActor(authDomain.RoleUser), uuid.New())

		assert.ErrorIs(t, err, authDomain.ErrAdminRequired)
	})
}

func TestStaffUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		staff := []*staffDomain.Staff{newStaff(authDomain.RoleAdmin), newStaff(authDomain.RoleUser)}

		deps.repo.On("List", ctx, 0, 50).Return(staff, nil).Once()
		deps.repo.On("Count", ctx).Return(2, nil).Once()

		result, total, err := deps.useCase.List(ctx, newActor(authDomain.RoleAdmin), 0, 50)

		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Equal(t, 2, total)
	})

	t.Run("Error_LimitAboveMaximum", func(t *testing.T) {
		deps := setupStaffUseCase(t)

		_, _, err := deps.useCase.List(ctx, newActor(authDomain.RoleAdmin), 0, 5000)

		assert.ErrorIs(t, err, apperrors.ErrInvalidRange)
	})

	t.Run("AuditFailureDoesNotLeak", func(t *testing.T) {
		deps := setupStaffUseCase(t)
		deps.sink.On("Append", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

		_, _, err := deps.useCase.List(ctx, newActor(authDomain.RoleUser), 0, 50)

		assert.ErrorIs(t, err, authDomain.ErrAdminRequired)
	})
}
