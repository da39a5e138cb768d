package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Cipher error definitions.
//
// ErrMalformedBlob and ErrAuthenticationFailed are kept distinct so callers can tell
// corrupt data apart from a wrong key or tampering. They are not mapped to an HTTP
// status on purpose: the credential service collapses both into a generic decryption
// failure before anything reaches a client.
var (
	// ErrEmptyInput indicates an empty or whitespace-only secret was passed to Encrypt.
	//
	// HTTP Status: 422 Unprocessable Entity
	ErrEmptyInput = errors.Wrap(errors.ErrInvalidInput, "secret must not be empty")

	// ErrMalformedBlob indicates the encoded blob does not decode to
	// exactly three hex segments of the expected sizes.
	ErrMalformedBlob = errors.New("malformed encoded blob")

	// ErrAuthenticationFailed indicates the GCM authentication tag did not verify.
	// Either the blob was modified or it was sealed under a different key.
	ErrAuthenticationFailed = errors.New("authentication tag verification failed")

	// ErrInvalidKeySize indicates key material that is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.New("encryption key must be exactly 32 bytes")
)
