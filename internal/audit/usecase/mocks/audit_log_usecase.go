// Package mocks provides mock implementations of the audit use cases for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
)

// MockAuditLogUseCase is a mock implementation of AuditLogUseCase for testing.
type MockAuditLogUseCase struct {
	mock.Mock
}

// Append mocks the Append method of AuditLogUseCase.
func (m *MockAuditLogUseCase) Append(ctx context.Context, entry *auditDomain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// List mocks the List method of AuditLogUseCase.
func (m *MockAuditLogUseCase) List(
	ctx context.Context,
	filter auditDomain.Filter,
	offset, limit int,
) ([]*auditDomain.Entry, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*auditDomain.Entry), args.Int(1), args.Error(2)
}

// VerifyIntegrity mocks the VerifyIntegrity method of AuditLogUseCase.
func (m *MockAuditLogUseCase) VerifyIntegrity(
	ctx context.Context,
	from, to time.Time,
) (*auditDomain.IntegrityReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auditDomain.IntegrityReport), args.Error(1)
}

// DeleteOlderThan mocks the DeleteOlderThan method of AuditLogUseCase.
func (m *MockAuditLogUseCase) DeleteOlderThan(ctx context.Context, days int, dryRun bool) (int64, error) {
	args := m.Called(ctx, days, dryRun)
	return args.Get(0).(int64), args.Error(1)
}

// MockAuditSink is a mock implementation of AuditSink for testing.
type MockAuditSink struct {
	mock.Mock
}

// Append mocks the Append method of AuditSink.
func (m *MockAuditSink) Append(ctx context.Context, entry *auditDomain.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
