// Package mocks provides a mock TxManager for use case tests.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTxManager is a mock implementation of database.TxManager. When the
// expectation returns nil, fn runs with the given context and its error is returned.
type MockTxManager struct {
	mock.Mock
}

// WithTx mocks the WithTx method of TxManager.
func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}

// InlineTxManager runs fn directly and reports whether a transaction is open,
// for tests that care about what happens inside versus after the transaction.
type InlineTxManager struct {
	active bool
	// Commits counts transactions whose fn returned nil.
	Commits int
}

// WithTx runs fn with the transaction marked active.
func (m *InlineTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.active = true
	err := fn(ctx)
	m.active = false
	if err == nil {
		m.Commits++
	}
	return err
}

// Active reports whether WithTx is currently running fn.
func (m *InlineTxManager) Active() bool {
	return m.active
}
