package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	"github.com/allisson/credvault/internal/metrics"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// staffUseCaseWithMetrics decorates StaffUseCase with metrics instrumentation.
type staffUseCaseWithMetrics struct {
	next    StaffUseCase
	metrics metrics.BusinessMetrics
}

// NewStaffUseCaseWithMetrics wraps a StaffUseCase with metrics recording.
func NewStaffUseCaseWithMetrics(useCase StaffUseCase, m metrics.BusinessMetrics) StaffUseCase {
	return &staffUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *staffUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, metrics.DomainStaff, operation, start, err)
}

// List records metrics for staff list operations.
func (s *staffUseCaseWithMetrics) List(
	ctx context.Context,
	actor *authDomain.Actor,
	offset, limit int,
) ([]*staffDomain.Staff, int, error) {
	start := time.Now()
	staff, total, err := s.next.List(ctx, actor, offset, limit)
	s.record(ctx, "staff_list", start, err)
	return staff, total, err
}

// Create records metrics for staff creation operations.
func (s *staffUseCaseWithMetrics) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	start := time.Now()
	staff, err := s.next.Create(ctx, actor, input)
	s.record(ctx, "staff_create", start, err)
	return staff, err
}

// Provision records metrics for bootstrap account creation.
func (s *staffUseCaseWithMetrics) Provision(
	ctx context.Context,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	start := time.Now()
	staff, err := s.next.Provision(ctx, input)
	s.record(ctx, "staff_provision", start, err)
	return staff, err
}

// UpdateRole records metrics for role changes.
func (s *staffUseCaseWithMetrics) UpdateRole(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	role authDomain.Role,
) (*staffDomain.Staff, error) {
	start := time.Now()
	staff, err := s.next.UpdateRole(ctx, actor, id, role)
	s.record(ctx, "staff_update_role", start, err)
	return staff, err
}

// Delete records metrics for staff deletion operations.
func (s *staffUseCaseWithMetrics) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	start := time.Now()
	err := s.next.Delete(ctx, actor, id)
	s.record(ctx, "staff_delete", start, err)
	return err
}
