package app

import (
	"context"
	"fmt"
	"time"

	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
)

const keyProviderTimeout = 30 * time.Second

// KMSService returns the KMS service used to unwrap or wrap the encryption key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// KeyProvider returns the encryption key resolved once from ENCRYPTION_KEY_KMS_URI and
// ENCRYPTION_KEY_WRAPPED, ENCRYPTION_KEY, or the development fallback.
func (c *Container) KeyProvider() (cryptoDomain.KeyProvider, error) {
	var err error
	c.keyProviderInit.Do(func() {
		c.keyProvider, err = c.initKeyProvider()
		if err != nil {
			c.initErrors["keyProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["keyProvider"]; exists {
		return nil, storedErr
	}
	return c.keyProvider, nil
}

// Cipher returns the AES-256-GCM cipher bound to the key provider.
func (c *Container) Cipher() (cryptoService.Cipher, error) {
	var err error
	c.cipherInit.Do(func() {
		c.cipher, err = c.initCipher()
		if err != nil {
			c.initErrors["cipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["cipher"]; exists {
		return nil, storedErr
	}
	return c.cipher, nil
}

func (c *Container) initKeyProvider() (cryptoDomain.KeyProvider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), keyProviderTimeout)
	defer cancel()

	provider, err := cryptoService.LoadKeyProvider(ctx, cryptoService.KeyConfig{
		HexKey:      c.config.EncryptionKey,
		KMSKeyURI:   c.config.EncryptionKeyKMSURI,
		WrappedKey:  c.config.EncryptionKeyWrapped,
		Development: c.config.IsDevelopment(),
	}, c.KMSService(), c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to load encryption key: %w", err)
	}
	return provider, nil
}

func (c *Container) initCipher() (cryptoService.Cipher, error) {
	provider, err := c.KeyProvider()
	if err != nil {
		return nil, err
	}

	cipher, err := cryptoService.NewAESGCM(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	return cipher, nil
}
