// Package service provides tamper evidence for audit entries.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"golang.org/x/crypto/hkdf"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	cryptoDomain "github.com/allisson/credvault/internal/crypto/domain"
)

// signingInfo is the HKDF info string; versioned so the canonical form can evolve.
const signingInfo = "audit-log-signing-v1"

// Signer computes HMAC-SHA256 signatures over a canonical form of an entry.
// The signing key is derived once from the encryption key with HKDF-SHA256,
// so the encryption key itself never keys the MAC.
type Signer struct {
	signingKey []byte
	keyID      string
}

// NewSigner derives the signing key from provider.
func NewSigner(provider cryptoDomain.KeyProvider) (*Signer, error) {
	reader := hkdf.New(sha256.New, provider.Key(), nil, []byte(signingInfo))

	signingKey := make([]byte, 32)
	if _, err := io.ReadFull(reader, signingKey); err != nil {
		return nil, fmt.Errorf("failed to derive audit signing key: %w", err)
	}

	return &Signer{signingKey: signingKey, keyID: provider.ID()}, nil
}

// KeyID returns the identifier recorded with each signature.
func (s *Signer) KeyID() string {
	return s.keyID
}

// Sign returns the 32-byte signature of entry.
func (s *Signer) Sign(entry *auditDomain.Entry) ([]byte, error) {
	canonical, err := canonicalize(entry)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, s.signingKey)
	mac.Write(canonical)
	return mac.Sum(nil), nil
}

// Verify returns ErrSignatureInvalid when entry.Signature does not match its content.
func (s *Signer) Verify(entry *auditDomain.Entry) error {
	expected, err := s.Sign(entry)
	if err != nil {
		return fmt.Errorf("failed to compute expected signature: %w", err)
	}
	if !hmac.Equal(entry.Signature, expected) {
		return auditDomain.ErrSignatureInvalid
	}
	return nil
}

// canonicalize serializes every persisted field except the signature itself.
// Variable-length fields are length-prefixed so that field boundaries are unambiguous.
func canonicalize(entry *auditDomain.Entry) ([]byte, error) {
	buf := make([]byte, 0, 512)

	buf = append(buf, entry.ID[:]...)
	buf = append(buf, entry.UserID[:]...)
	buf = appendLengthPrefixed(buf, []byte(entry.UserEmail))
	buf = appendLengthPrefixed(buf, []byte(entry.UserRole))
	buf = appendLengthPrefixed(buf, []byte(entry.Action))
	buf = appendLengthPrefixed(buf, []byte(entry.Resource))
	buf = appendLengthPrefixed(buf, []byte(entry.ResourceID))

	// json.Marshal sorts map keys, which keeps details deterministic across a DB round trip.
	var details []byte
	if len(entry.Details) > 0 {
		var err error
		details, err = json.Marshal(entry.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal details: %w", err)
		}
	}
	buf = appendLengthPrefixed(buf, details)

	buf = appendLengthPrefixed(buf, []byte(entry.IPAddress))
	buf = appendLengthPrefixed(buf, []byte(entry.UserAgent))
	buf = appendLengthPrefixed(buf, []byte(entry.RequestID))
	buf = binary.BigEndian.AppendUint64(buf, uint64(entry.Timestamp.UnixMicro()))
	if entry.Success {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	buf = appendLengthPrefixed(buf, []byte(entry.ErrorMessage))
	buf = appendLengthPrefixed(buf, []byte(entry.KeyID))

	return buf, nil
}

// appendLengthPrefixed adds a 4-byte big-endian length prefix followed by data.
func appendLengthPrefixed(buf []byte, data []byte) []byte {
	if len(data) > math.MaxUint32 {
		panic("audit field exceeds 4GB")
	}
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(data)))
	return append(buf, data...)
}
