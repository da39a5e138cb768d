// Package mocks provides mock implementations of the staff ports for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// MockStaffRepository is a mock implementation of StaffRepository for testing.
type MockStaffRepository struct {
	mock.Mock
}

// Create mocks the Create method of StaffRepository.
func (m *MockStaffRepository) Create(ctx context.Context, staff *staffDomain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

// GetByID mocks the GetByID method of StaffRepository.
func (m *MockStaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// GetByIDForUpdate mocks the GetByIDForUpdate method of StaffRepository.
func (m *MockStaffRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*staffDomain.Staff, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// GetByEmail mocks the GetByEmail method of StaffRepository.
func (m *MockStaffRepository) GetByEmail(ctx context.Context, email string) (*staffDomain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// Update mocks the Update method of StaffRepository.
func (m *MockStaffRepository) Update(ctx context.Context, staff *staffDomain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

// Delete mocks the Delete method of StaffRepository.
func (m *MockStaffRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// List mocks the List method of StaffRepository.
func (m *MockStaffRepository) List(ctx context.Context, offset, limit int) ([]*staffDomain.Staff, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*staffDomain.Staff), args.Error(1)
}

// Count mocks the Count method of StaffRepository.
func (m *MockStaffRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockPasswordHasher is a mock implementation of PasswordHasher for testing.
type MockPasswordHasher struct {
	mock.Mock
}

// Hash mocks the Hash method of PasswordHasher.
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

// MockStaffUseCase is a mock implementation of StaffUseCase for testing.
type MockStaffUseCase struct {
	mock.Mock
}

// List mocks the List method of StaffUseCase.
func (m *MockStaffUseCase) List(
	ctx context.Context,
	actor *authDomain.Actor,
	offset, limit int,
) ([]*staffDomain.Staff, int, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*staffDomain.Staff), args.Int(1), args.Error(2)
}

// Create mocks the Create method of StaffUseCase.
func (m *MockStaffUseCase) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// Provision mocks the Provision method of StaffUseCase.
func (m *MockStaffUseCase) Provision(
	ctx context.Context,
	input *staffDomain.CreateStaffInput,
) (*staffDomain.Staff, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// UpdateRole mocks the UpdateRole method of StaffUseCase.
func (m *MockStaffUseCase) UpdateRole(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	role authDomain.Role,
) (*staffDomain.Staff, error) {
	args := m.Called(ctx, actor, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// Delete mocks the Delete method of StaffUseCase.
func (m *MockStaffUseCase) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
