// Package mocks provides mock implementations of the credential ports for testing.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
)

// MockCredentialRepository is a mock implementation of CredentialRepository for testing.
type MockCredentialRepository struct {
	mock.Mock
}

// Create mocks the Create method of CredentialRepository.
func (m *MockCredentialRepository) Create(ctx context.Context, credential *credentialDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// GetByID mocks the GetByID method of CredentialRepository.
func (m *MockCredentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// GetByIDForUpdate mocks the GetByIDForUpdate method of CredentialRepository.
func (m *MockCredentialRepository) GetByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// Update mocks the Update method of CredentialRepository.
func (m *MockCredentialRepository) Update(ctx context.Context, credential *credentialDomain.Credential) error {
	args := m.Called(ctx, credential)
	return args.Error(0)
}

// UpdateLastAccessed mocks the UpdateLastAccessed method of CredentialRepository.
func (m *MockCredentialRepository) UpdateLastAccessed(ctx context.Context, ids []uuid.UUID, at time.Time) error {
	args := m.Called(ctx, ids, at)
	return args.Error(0)
}

// Delete mocks the Delete method of CredentialRepository.
func (m *MockCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// List mocks the List method of CredentialRepository.
func (m *MockCredentialRepository) List(
	ctx context.Context,
	filter credentialDomain.Filter,
	offset, limit int,
) ([]*credentialDomain.Credential, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Error(1)
}

// Count mocks the Count method of CredentialRepository.
func (m *MockCredentialRepository) Count(ctx context.Context, filter credentialDomain.Filter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// MockClientReader is a mock implementation of ClientReader for testing.
type MockClientReader struct {
	mock.Mock
}

// GetByID mocks the GetByID method of ClientReader.
func (m *MockClientReader) GetByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clientDomain.Client), args.Error(1)
}

// MockCredentialUseCase is a mock implementation of CredentialUseCase for testing.
type MockCredentialUseCase struct {
	mock.Mock
}

// Create mocks the Create method of CredentialUseCase.
func (m *MockCredentialUseCase) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *credentialDomain.CreateCredentialInput,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// Get mocks the Get method of CredentialUseCase.
func (m *MockCredentialUseCase) Get(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// Decrypt mocks the Decrypt method of CredentialUseCase.
func (m *MockCredentialUseCase) Decrypt(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*credentialDomain.DecryptedCredential, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.DecryptedCredential), args.Error(1)
}

// Update mocks the Update method of CredentialUseCase.
func (m *MockCredentialUseCase) Update(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	input *credentialDomain.UpdateCredentialInput,
) (*credentialDomain.Credential, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Credential), args.Error(1)
}

// Delete mocks the Delete method of CredentialUseCase.
func (m *MockCredentialUseCase) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

// List mocks the List method of CredentialUseCase.
func (m *MockCredentialUseCase) List(
	ctx context.Context,
	actor *authDomain.Actor,
	filter credentialDomain.Filter,
	offset, limit int,
) ([]*credentialDomain.Credential, int, error) {
	args := m.Called(ctx, actor, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*credentialDomain.Credential), args.Int(1), args.Error(2)
}

// Export mocks the Export method of CredentialUseCase.
func (m *MockCredentialUseCase) Export(
	ctx context.Context,
	actor *authDomain.Actor,
	clientID uuid.UUID,
) (*credentialDomain.Export, error) {
	args := m.Called(ctx, actor, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credentialDomain.Export), args.Error(1)
}
