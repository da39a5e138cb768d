package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	"github.com/allisson/credvault/internal/audit/usecase"
	usecaseMocks "github.com/allisson/credvault/internal/audit/usecase/mocks"
)

// mockBusinessMetrics is a local mock for metrics.BusinessMetrics.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "audit", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "audit", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestAuditLogUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("Append error", func(t *testing.T) {
		mockNext := &usecaseMocks.MockAuditLogUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuditLogUseCaseWithMetrics(mockNext, mockMetrics)
		entry := &auditDomain.Entry{Action: auditDomain.ActionLogin}

		mockNext.On("Append", ctx, entry).Return(errors.New("db down")).Once()
		expectMetrics(mockMetrics, ctx, "audit_log_append", "error")

		assert.Error(t, uc.Append(ctx, entry))
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("List success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockAuditLogUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuditLogUseCaseWithMetrics(mockNext, mockMetrics)
		entries := []*auditDomain.Entry{{Action: auditDomain.ActionLogin}}

		mockNext.On("List", ctx, auditDomain.Filter{}, 0, 10).Return(entries, 1, nil).Once()
		expectMetrics(mockMetrics, ctx, "audit_log_list", "success")

		result, total, err := uc.List(ctx, auditDomain.Filter{}, 0, 10)
		assert.NoError(t, err)
		assert.Equal(t, entries, result)
		assert.Equal(t, 1, total)
		mockNext.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("VerifyIntegrity success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockAuditLogUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuditLogUseCaseWithMetrics(mockNext, mockMetrics)
		from, to := time.Now().Add(-time.Hour), time.Now()
		report := &auditDomain.IntegrityReport{Total: 3, Valid: 3}

		mockNext.On("VerifyIntegrity", ctx, from, to).Return(report, nil).Once()
		expectMetrics(mockMetrics, ctx, "audit_log_verify", "success")

		result, err := uc.VerifyIntegrity(ctx, from, to)
		assert.NoError(t, err)
		assert.Equal(t, report, result)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("DeleteOlderThan success", func(t *testing.T) {
		mockNext := &usecaseMocks.MockAuditLogUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewAuditLogUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("DeleteOlderThan", ctx, 90, false).Return(int64(5), nil).Once()
		expectMetrics(mockMetrics, ctx, "audit_log_delete", "success")

		count, err := uc.DeleteOlderThan(ctx, 90, false)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), count)
		mockMetrics.AssertExpectations(t)
	})
}
