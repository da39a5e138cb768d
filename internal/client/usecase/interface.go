// Package usecase implements client management.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
)

// ClientRepository defines the interface for client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *clientDomain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error)

	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*clientDomain.Client, error)

	Update(ctx context.Context, client *clientDomain.Client) error
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns clients newest first, each with its credential count.
	List(ctx context.Context, offset, limit int) ([]*clientDomain.Client, error)
	Count(ctx context.Context) (int, error)
}

// ClientUseCase defines the client operations.
type ClientUseCase interface {
	Create(
		ctx context.Context,
		actor *authDomain.Actor,
		input *clientDomain.CreateClientInput,
	) (*clientDomain.Client, error)

	Get(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) (*clientDomain.Client, error)

	List(ctx context.Context, actor *authDomain.Actor, offset, limit int) ([]*clientDomain.Client, int, error)

	Update(
		ctx context.Context,
		actor *authDomain.Actor,
		id uuid.UUID,
		input *clientDomain.UpdateClientInput,
	) (*clientDomain.Client, error)

	// Delete removes a client and, through the foreign key, its credentials.
	Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error
}
