// Package mocks provides mock implementations of the client ports for testing.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
)

// MockClientRepository is a mock implementation of ClientRepository for testing.
type MockClientRepository struct {
	mock.Mock
}

// Create mocks the Create method of ClientRepository.
func (m *MockClientRepository) Create(ctx context.Context, client *clientDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// GetByID mocks the GetByID method of ClientRepository.
func (m *MockClientRepository) GetByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientDomain.Client), args.Error(1)
}

// GetByIDForUpdate mocks the GetByIDForUpdate method of ClientRepository.
func (m *MockClientRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientDomain.Client), args.Error(1)
}

// Update mocks the Update method of ClientRepository.
func (m *MockClientRepository) Update(ctx context.Context, client *clientDomain.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

// Delete mocks the Delete method of ClientRepository.
func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// List mocks the List method of ClientRepository.
func (m *MockClientRepository) List(ctx context.Context, offset, limit int) ([]*clientDomain.Client, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clientDomain.Client), args.Error(1)
}

// Count mocks the Count method of ClientRepository.
func (m *MockClientRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockClientUseCase is a mock implementation of ClientUseCase for testing.
type MockClientUseCase struct {
	mock.Mock
}

// Create mocks the Create method of ClientUseCase.
func (m *MockClientUseCase) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *clientDomain.CreateClientInput,
) (*clientDomain.Client, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientDomain.Client), args.Error(1)
}

// Get mocks the Get method of ClientUseCase.
func (m *MockClientUseCase) Get(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*clientDomain.Client, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientDomain.Client), args.Error(1)
}

// List mocks the List method of ClientUseCase.
func (m *MockClientUseCase) List(
	ctx context.Context,
	actor *authDomain.Actor,
	offset, limit int,
) ([]*clientDomain.Client, int, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*clientDomain.Client), args.Int(1), args.Error(2)
}

// Update mocks the Update method of ClientUseCase.
func (m *MockClientUseCase) Update(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	input *clientDomain.UpdateClientInput,
) (*clientDomain.Client, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientDomain.Client), args.Error(1)
}

// Delete mocks the Delete method of ClientUseCase.
func (m *MockClientUseCase) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}
