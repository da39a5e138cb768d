// Package mocks provides mock implementations of the authentication ports for testing.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	staffDomain "github.com/allisson/credvault/internal/staff/domain"
)

// MockStaffReader is a mock implementation of StaffReader for testing.
type MockStaffReader struct {
	mock.Mock
}

// GetByEmail mocks the GetByEmail method of StaffReader.
func (m *MockStaffReader) GetByEmail(ctx context.Context, email string) (*staffDomain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*staffDomain.Staff), args.Error(1)
}

// MockPasswordVerifier is a mock implementation of PasswordVerifier for testing.
type MockPasswordVerifier struct {
	mock.Mock
}

// Verify mocks the Verify method of PasswordVerifier.
func (m *MockPasswordVerifier) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// DummyHash mocks the DummyHash method of PasswordVerifier.
func (m *MockPasswordVerifier) DummyHash() string {
	args := m.Called()
	return args.String(0)
}

// MockTokenIssuer is a mock implementation of TokenIssuer for testing.
type MockTokenIssuer struct {
	mock.Mock
}

// Issue mocks the Issue method of TokenIssuer.
func (m *MockTokenIssuer) Issue(actor *authDomain.Actor) (string, time.Time, error) {
	args := m.Called(actor)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}
