// Package usecase implements the credential service: the orchestration of
// authorization, encryption, persistence and auditing of stored credentials.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
)

// CredentialRepository defines the interface for credential persistence.
type CredentialRepository interface {
	Create(ctx context.Context, credential *credentialDomain.Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*credentialDomain.Credential, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*credentialDomain.Credential, error)

	Update(ctx context.Context, credential *credentialDomain.Credential) error

	// UpdateLastAccessed sets last_accessed_at without touching updated_at.
	UpdateLastAccessed(ctx context.Context, ids []uuid.UUID, at time.Time) error

	Delete(ctx context.Context, id uuid.UUID) error

	// List returns credentials newest first.
	List(ctx context.Context, filter credentialDomain.Filter, offset, limit int) ([]*credentialDomain.Credential, error)
	Count(ctx context.Context, filter credentialDomain.Filter) (int, error)
}

// ClientReader resolves the clients credentials belong to.
type ClientReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error)
}

// CredentialUseCase defines the credential operations. Returned records carry
// encoded passwords except from Decrypt and Export.
type CredentialUseCase interface {
	Create(
		ctx context.Context,
		actor *authDomain.Actor,
		input *credentialDomain.CreateCredentialInput,
	) (*credentialDomain.Credential, error)

	Get(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) (*credentialDomain.Credential, error)

	Decrypt(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) (*credentialDomain.DecryptedCredential, error)

	Update(
		ctx context.Context,
		actor *authDomain.Actor,
		id uuid.UUID,
		input *credentialDomain.UpdateCredentialInput,
	) (*credentialDomain.Credential, error)

	Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error

	// List restricts non-admin actors to the credentials they created.
	List(
		ctx context.Context,
		actor *authDomain.Actor,
		filter credentialDomain.Filter,
		offset, limit int,
	) ([]*credentialDomain.Credential, int, error)

	// Export decrypts every credential of a client the actor may read.
	Export(ctx context.Context, actor *authDomain.Actor, clientID uuid.UUID) (*credentialDomain.Export, error)
}
