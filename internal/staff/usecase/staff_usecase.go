package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
	"github.com/allisson/credvault/internal/validation"
)

// staffUseCase implements StaffUseCase.
type staffUseCase struct {
	txManager database.TxManager
	staffRepo StaffRepository
	hasher    PasswordHasher
	recorder  *auditUseCase.Recorder
}

// authorize records a SECURITY_VIOLATION and fails with ErrAdminRequired when
// actor may not manage staff.
func (s *staffUseCase) authorize(
	ctx context.Context,
	actor *authDomain.Actor,
	attempted auditDomain.Action,
	resourceID string,
) error {
	if authDomain.CanManageStaff(actor) {
		return nil
	}

	s.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionSecurityViolation, auditDomain.ResourceUser, resourceID,
		map[string]any{"attemptedAction": string(attempted)},
	).Fail(apperrors.Message(authDomain.ErrAdminRequired)))

	return authDomain.ErrAdminRequired
}

func (s *staffUseCase) List(
	ctx context.Context,
	actor *authDomain.Actor,
	offset, limit int,
) ([]*staffDomain.Staff, int, error) {
	if err := s.authorize(ctx, actor, "LIST_USERS", ""); err != nil {
		return nil, 0, err
	}

	if err := validation.ValidatePagination(offset, limit); err != nil {
		return nil, 0, err
	}

	staff, err := s.staffRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.staffRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}

func (s *staffUseCase) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	if err := s.authorize(ctx, actor, auditDomain.ActionCreateUser, ""); err != nil {
		return nil, err
	}
	return s.create(ctx, actor, input)
}

func (s *staffUseCase) Provision(
	ctx context.Context,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	return s.create(ctx, nil, input)
}

func (s *staffUseCase) create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	normalized := *input
	normalized.Normalize()

	if err := normalized.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(normalized.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to hash password")
	}

	now := time.Now().UTC()
	staff := &staffDomain.Staff{
		ID:           uuid.Must(uuid.NewV7()),
		Name:         normalized.Name,
		Email:        normalized.Email,
		PasswordHash: passwordHash,
		Role:         normalized.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.staffRepo.Create(ctx, staff); err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			s.recorder.Record(ctx, auditDomain.NewEntry(
				actor, auditDomain.ActionCreateUser, auditDomain.ResourceUser, "",
				map[string]any{"email": staff.Email},
			).Fail(apperrors.Message(err)))
		}
		return nil, err
	}

	s.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionCreateUser, auditDomain.ResourceUser, staff.ID.String(),
		map[string]any{"email": staff.Email, "role": string(staff.Role)},
	))

	return staff, nil
}

func (s *staffUseCase) UpdateRole(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	role authDomain.Role,
) (*staffDomain.Staff, error) {
	if err := s.authorize(ctx, actor, auditDomain.ActionUpdateUserRole, id.String()); err != nil {
		return nil, err
	}

	if !role.IsValid() {
		return nil, staffDomain.ErrInvalidRole
	}

	var staff *staffDomain.Staff
	var oldRole authDomain.Role

	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		staff, err = s.staffRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		oldRole = staff.Role
		staff.Role = role
		staff.UpdatedAt = time.Now().UTC()
		return s.staffRepo.Update(ctx, staff)
	})
	if err != nil {
		return nil, err
	}

	s.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionUpdateUserRole, auditDomain.ResourceUser, staff.ID.String(),
		map[string]any{"oldRole": string(oldRole), "newRole": string(role)},
	))

	return staff, nil
}

func (s *staffUseCase) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	if err := s.authorize(ctx, actor, auditDomain.ActionDeleteUser, id.String()); err != nil {
		return err
	}

	if actor.ID == id {
		s.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionDeleteUser, auditDomain.ResourceUser, id.String(), nil,
		).Fail(apperrors.Message(staffDomain.ErrCannotDeleteSelf)))
		return staffDomain.ErrCannotDeleteSelf
	}

	var entry *auditDomain.Entry
	err := s.txManager.WithTx(ctx, func(ctx context.Context) error {
		staff, err := s.staffRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if err := s.staffRepo.Delete(ctx, id); err != nil {
			return err
		}

		entry = auditDomain.NewEntry(
			actor, auditDomain.ActionDeleteUser, auditDomain.ResourceUser, staff.ID.String(),
			map[string]any{"email": staff.Email, "role": string(staff.Role)},
		)
		return nil
	})
	if err != nil {
		return err
	}

	s.recorder.Record(ctx, entry)
	return nil
}

// NewStaffUseCase creates a new StaffUseCase with the provided dependencies.
func NewStaffUseCase(
	txManager database.TxManager,
	staffRepo StaffRepository,
	hasher PasswordHasher,
	auditSink auditUseCase.AuditSink,
	logger *slog.Logger,
) StaffUseCase {
	return &staffUseCase{
		txManager: txManager,
		staffRepo: staffRepo,
		hasher:    hasher,
		recorder:  auditUseCase.NewRecorder(auditSink, logger),
	}
}
