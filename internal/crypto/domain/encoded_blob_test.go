package domain

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBlob() EncodedBlob {
	return EncodedBlob{
		IV:         []byte("0123456789abcdef"),
		Tag:        []byte("fedcba9876543210"),
		Ciphertext: []byte("ciphertext"),
	}
}

func TestEncodedBlob_String(t *testing.T) {
	blob := newTestBlob()

	raw, err := base64.StdEncoding.DecodeString(blob.String())
	require.NoError(t, err)

	parts := strings.Split(string(raw), ":")
	require.Len(t, parts, 3)
	assert.Len(t, parts[0], 32)
	assert.Len(t, parts[1], 32)
	assert.Equal(t, "63697068657274657874", parts[2])
}

func TestParseEncodedBlob(t *testing.T) {
	encode := func(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }
	validIV := strings.Repeat("ab", 16)
	validTag := strings.Repeat("cd", 16)

	t.Run("Success_RoundTrip", func(t *testing.T) {
		blob := newTestBlob()

		parsed, err := ParseEncodedBlob(blob.String())
		require.NoError(t, err)
		assert.Equal(t, blob, parsed)
	})

	t.Run("Success_EmptyCiphertextSegment", func(t *testing.T) {
		parsed, err := ParseEncodedBlob(encode(validIV + ":" + validTag + ":"))
		require.NoError(t, err)
		assert.Empty(t, parsed.Ciphertext)
	})

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid base64", content: "%%%not-base64%%%"},
		{name: "two segments", content: encode(validIV + ":" + validTag)},
		{name: "four segments", content: encode(validIV + ":" + validTag + ":00:11")},
		{name: "empty string", content: ""},
		{name: "iv not hex", content: encode(strings.Repeat("zz", 16) + ":" + validTag + ":00")},
		{name: "short iv", content: encode("abcd:" + validTag + ":00")},
		{name: "short tag", content: encode(validIV + ":abcd:00")},
		{name: "ciphertext not hex", content: encode(validIV + ":" + validTag + ":xyz")},
	}

	for _, tt := range tests {
		t.Run("Error_"+tt.name, func(t *testing.T) {
			_, err := ParseEncodedBlob(tt.content)
			assert.ErrorIs(t, err, ErrMalformedBlob)
		})
	}
}
