package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"strings"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// AESGCMCipher implements Cipher using AES-256-GCM with a 16-byte IV.
//
// Every call to Encrypt draws a fresh IV from crypto/rand, so encrypting the same
// secret twice yields different blobs. The authentication tag binds the ciphertext
// to the key: any modified byte in the tag or the ciphertext fails Decrypt with
// ErrAuthenticationFailed instead of yielding wrong plaintext.
//
// Thread safety:
//
//	The cipher holds only the initialized AEAD and is safe for concurrent use.
type AESGCMCipher struct {
	aead cipher.AEAD
}

// NewAESGCM creates the cipher from the key supplied by provider.
// Returns ErrInvalidKeySize if the key is not exactly 32 bytes.
func NewAESGCM(provider cryptoDomain.KeyProvider) (*AESGCMCipher, error) {
	key := provider.Key()
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, cryptoDomain.IVSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	return &AESGCMCipher{aead: aead}, nil
}

// Encrypt seals secret and returns base64(hex(iv):hex(tag):hex(ciphertext)).
// Returns ErrEmptyInput if secret is empty or only whitespace.
func (a *AESGCMCipher) Encrypt(secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", cryptoDomain.ErrEmptyInput
	}

	iv := make([]byte, cryptoDomain.IVSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}

	// Seal appends the tag to the ciphertext.
	sealed := a.aead.Seal(nil, iv, []byte(secret), nil)
	split := len(sealed) - a.aead.Overhead()

	blob := cryptoDomain.EncodedBlob{
		IV:         iv,
		Tag:        sealed[split:],
		Ciphertext: sealed[:split],
	}
	return blob.String(), nil
}

// Decrypt opens an encoded blob.
// Returns ErrMalformedBlob for shape errors and ErrAuthenticationFailed when the tag does not verify.
func (a *AESGCMCipher) Decrypt(encoded string) (string, error) {
	blob, err := cryptoDomain.ParseEncodedBlob(encoded)
	if err != nil {
		return "", err
	}

	sealed := make([]byte, 0, len(blob.Ciphertext)+len(blob.Tag))
	sealed = append(sealed, blob.Ciphertext...)
	sealed = append(sealed, blob.Tag...)

	plaintext, err := a.aead.Open(nil, blob.IV, sealed, nil)
	if err != nil {
		return "", cryptoDomain.ErrAuthenticationFailed
	}
	return string(plaintext), nil
}
