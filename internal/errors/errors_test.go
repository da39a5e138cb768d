package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("Success_PreservesChain", func(t *testing.T) {
		err := Wrap(ErrNotFound, "credential not found")
		assert.True(t, Is(err, ErrNotFound))
		assert.Equal(t, "credential not found: not found", err.Error())
	})

	t.Run("Success_NilStaysNil", func(t *testing.T) {
		assert.NoError(t, Wrap(nil, "ignored"))
	})
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil", err: nil, expected: ""},
		{name: "sentinel", err: ErrForbidden, expected: "forbidden"},
		{name: "wrapped once", err: Wrap(ErrNotFound, "client not found"), expected: "client not found"},
		{
			name:     "wrapped twice",
			err:      Wrap(Wrap(ErrForbidden, "inner"), "outer"),
			expected: "outer",
		},
		{name: "fmt wrapped", err: fmt.Errorf("limit cannot exceed 1000: %w", ErrInvalidRange), expected: "limit cannot exceed 1000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Message(tt.err))
		})
	}
}
