// Package service implements the credential cipher, its key providers and
// the KMS integration used to unwrap the encryption key at startup.
package service

import (
	"context"
)

// Cipher is the authenticated encryption primitive used for every stored secret.
type Cipher interface {
	// Encrypt seals a secret and returns its EncodedBlob string form.
	Encrypt(secret string) (string, error)

	// Decrypt opens an EncodedBlob string form and returns the secret.
	Decrypt(blob string) (string, error)
}

// KMSKeeper is the subset of *secrets.Keeper used to wrap and unwrap key material.
type KMSKeeper interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
	Close() error
}

// KMSService opens keepers for a KMS key URI.
type KMSService interface {
	// OpenKeeper opens a keeper for the configured KMS provider.
	// Returns an error if the KMS provider URI is invalid or connection fails.
	OpenKeeper(ctx context.Context, keyURI string) (KMSKeeper, error)
}
