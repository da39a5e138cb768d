package domain

import (
	"github.com/allisson/credvault/internal/errors"
)

// Credential error definitions.
var (
	// ErrCredentialNotFound indicates the credential does not exist.
	ErrCredentialNotFound = errors.Wrap(errors.ErrNotFound, "credential not found")

	// ErrClientNotFound indicates the client a credential refers to does not exist.
	ErrClientNotFound = errors.Wrap(errors.ErrNotFound, "client not found")

	// ErrInvalidCredentialType indicates a credential type other than general or email.
	ErrInvalidCredentialType = errors.Wrap(errors.ErrInvalidInput, "credentialType must be general or email")

	// ErrDecryptionFailed hides which cipher check failed. It maps to 500.
	ErrDecryptionFailed = errors.New("failed to decrypt credential")
)
