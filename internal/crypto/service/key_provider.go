package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/scrypt"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// scrypt cost parameters of the development fallback key.
const (
	devScryptN = 16384
	devScryptR = 8
	devScryptP = 1
)

// staticKeyProvider is a KeyProvider over key material resolved at startup.
type staticKeyProvider struct {
	key      []byte
	id       string
	insecure bool
}

func (p *staticKeyProvider) Key() []byte    { return p.key }
func (p *staticKeyProvider) ID() string     { return p.id }
func (p *staticKeyProvider) Insecure() bool { return p.insecure }

// NewStaticKeyProvider wraps a 32-byte key. The slice is copied.
func NewStaticKeyProvider(key []byte, source string) (cryptoDomain.KeyProvider, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	owned := make([]byte, len(key))
	copy(owned, key)
	return &staticKeyProvider{
		key:      owned,
		id:       keyID(source, owned),
		insecure: source == cryptoDomain.KeySourceDevelopment,
	}, nil
}

// ParseHexKey decodes a hex encoded key and checks that it is exactly 32 bytes.
func ParseHexKey(hexKey string) ([]byte, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key is not valid hex: %w", err)
	}
	if len(key) != cryptoDomain.KeySize {
		cryptoDomain.Zero(key)
		return nil, fmt.Errorf("%w: got %d bytes", cryptoDomain.ErrInvalidKeySize, len(key))
	}
	return key, nil
}

// DeriveDevelopmentKey derives the well-known insecure development key:
// scrypt("default-dev-key", "salt", N=16384, r=8, p=1, 32 bytes).
func DeriveDevelopmentKey() ([]byte, error) {
	key, err := scrypt.Key(
		[]byte(cryptoDomain.DevelopmentPassphrase),
		[]byte(cryptoDomain.DevelopmentSalt),
		devScryptN, devScryptR, devScryptP,
		cryptoDomain.KeySize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to derive development key: %w", err)
	}
	return key, nil
}

// KeyConfig selects the source of the encryption key.
type KeyConfig struct {
	// HexKey is the ENCRYPTION_KEY value.
	HexKey string
	// KMSKeyURI and WrappedKey enable KMS unwrapping when both are set.
	KMSKeyURI  string
	WrappedKey string
	// Development lowers the fallback warning from ERROR to WARN.
	Development bool
}

// LoadKeyProvider resolves the encryption key once at startup.
//
// Resolution order:
//  1. KMSKeyURI + WrappedKey: unwrap through the KMS keeper. Failures are fatal.
//  2. HexKey decoding to exactly 32 bytes.
//  3. The scrypt development fallback. It is logged at WARN in development and at
//     ERROR in any other environment, and also applies when HexKey is malformed.
func LoadKeyProvider(
	ctx context.Context,
	cfg KeyConfig,
	kms KMSService,
	logger *slog.Logger,
) (cryptoDomain.KeyProvider, error) {
	if cfg.KMSKeyURI != "" || cfg.WrappedKey != "" {
		if cfg.KMSKeyURI == "" || cfg.WrappedKey == "" {
			return nil, errors.New("ENCRYPTION_KEY_KMS_URI and ENCRYPTION_KEY_WRAPPED must be set together")
		}
		key, err := UnwrapKey(ctx, kms, cfg.KMSKeyURI, cfg.WrappedKey)
		if err != nil {
			return nil, err
		}
		defer cryptoDomain.Zero(key)

		provider, err := NewStaticKeyProvider(key, cryptoDomain.KeySourceKMS)
		if err != nil {
			return nil, err
		}
		logger.Info("encryption key unwrapped via KMS", slog.String("key_id", provider.ID()))
		return provider, nil
	}

	reason := "ENCRYPTION_KEY is not set"
	if cfg.HexKey != "" {
		key, err := ParseHexKey(cfg.HexKey)
		if err == nil {
			defer cryptoDomain.Zero(key)
			return NewStaticKeyProvider(key, cryptoDomain.KeySourceEnv)
		}
		reason = err.Error()
	}

	key, err := DeriveDevelopmentKey()
	if err != nil {
		return nil, err
	}
	defer cryptoDomain.Zero(key)

	level := slog.LevelError
	if cfg.Development {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "insecure development encryption key in use; set ENCRYPTION_KEY to 64 hex characters",
		slog.String("reason", reason),
	)

	return NewStaticKeyProvider(key, cryptoDomain.KeySourceDevelopment)
}

// keyID builds "<source>:<first 8 hex chars of sha256(key)>".
func keyID(source string, key []byte) string {
	sum := sha256.Sum256(key)
	return source + ":" + hex.EncodeToString(sum[:4])
}
