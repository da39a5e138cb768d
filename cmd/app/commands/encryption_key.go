package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
)

func newEncryptionKey() ([]byte, error) {
	key := make([]byte, cryptoDomain.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return key, nil
}

// RunGenerateEncryptionKey prints a fresh random key in the hex form expected
// by ENCRYPTION_KEY.
func RunGenerateEncryptionKey(logger *slog.Logger, writer io.Writer) error {
	key, err := newEncryptionKey()
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	logger.Info("generated encryption key")

	_, _ = fmt.Fprintln(writer, "# Store this value in a secrets manager, never in version control")
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY=\"%s\"\n", hex.EncodeToString(key))
	return nil
}

// RunWrapEncryptionKey wraps an encryption key with the KMS key at kmsKeyURI
// and prints the environment variables the server needs to unwrap it at
// startup. An empty hexKey wraps a freshly generated key.
func RunWrapEncryptionKey(
	ctx context.Context,
	kmsService cryptoService.KMSService,
	logger *slog.Logger,
	writer io.Writer,
	kmsKeyURI string,
	hexKey string,
) error {
	if kmsKeyURI == "" {
		return fmt.Errorf("kms key URI is required")
	}

	var (
		key []byte
		err error
	)
	if hexKey == "" {
		key, err = newEncryptionKey()
	} else {
		key, err = cryptoService.ParseHexKey(hexKey)
	}
	if err != nil {
		return err
	}
	defer cryptoDomain.Zero(key)

	wrapped, err := cryptoService.WrapKey(ctx, kmsService, kmsKeyURI, key)
	if err != nil {
		return err
	}

	logger.Info("wrapped encryption key", slog.String("kms_key_uri", kmsKeyURI))

	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY_KMS_URI=\"%s\"\n", kmsKeyURI)
	_, _ = fmt.Fprintf(writer, "ENCRYPTION_KEY_WRAPPED=\"%s\"\n", wrapped)
	return nil
}
