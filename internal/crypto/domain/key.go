package domain

// KeyProvider supplies the process-wide credential encryption key.
//
// A provider is built once at startup and shared by reference. The returned key
// must not be modified by callers; implementations are read-only after
// construction and safe for concurrent use.
type KeyProvider interface {
	// Key returns the 32-byte AES-256 key.
	Key() []byte

	// ID returns a non-secret identifier of the key (source plus fingerprint),
	// recorded next to audit signatures.
	ID() string

	// Insecure reports whether the key comes from the built-in development fallback.
	Insecure() bool
}

// Well-known inputs of the development fallback key. Anyone can derive this key,
// so it must never protect production data.
const (
	DevelopmentPassphrase = "default-dev-key"
	DevelopmentSalt       = "salt"
)

// Key source labels used in KeyProvider.ID.
const (
	KeySourceEnv         = "env"
	KeySourceKMS         = "kms"
	KeySourceDevelopment = "dev"
)

// Zero wipes transient copies of key material.
func Zero(b []byte) {
	clear(b)
}
