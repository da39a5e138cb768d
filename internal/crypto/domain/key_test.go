package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZero(t *testing.T) {
	key := make([]byte, KeySize)
	for i := range key {
		key[i] = byte(i + 1)
	}

	Zero(key[:4])
	assert.Equal(t, []byte{0, 0, 0, 0, 5}, key[:5])

	Zero(key)
	assert.Equal(t, make([]byte, KeySize), key)

	assert.NotPanics(t, func() { Zero(nil) })
}
