package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	"github.com/allisson/credvault/internal/metrics"
)

// credentialUseCaseWithMetrics decorates CredentialUseCase with metrics instrumentation.
type credentialUseCaseWithMetrics struct {
	next    CredentialUseCase
	metrics metrics.BusinessMetrics
}

// NewCredentialUseCaseWithMetrics wraps a CredentialUseCase with metrics recording.
func NewCredentialUseCaseWithMetrics(useCase CredentialUseCase, m metrics.BusinessMetrics) CredentialUseCase {
	return &credentialUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *credentialUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, metrics.DomainCredential, operation, start, err)
}

// Create records metrics for credential creation operations.
func (c *credentialUseCaseWithMetrics) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *credentialDomain.CreateCredentialInput,
) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Create(ctx, actor, input)
	c.record(ctx, "credential_create", start, err)
	return credential, err
}

// Get records metrics for credential retrieval operations.
func (c *credentialUseCaseWithMetrics) Get(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Get(ctx, actor, id)
	c.record(ctx, "credential_get", start, err)
	return credential, err
}

// Decrypt records metrics for credential decryption operations.
func (c *credentialUseCaseWithMetrics) Decrypt(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*credentialDomain.DecryptedCredential, error) {
	start := time.Now()
	decrypted, err := c.next.Decrypt(ctx, actor, id)
	c.record(ctx, "credential_decrypt", start, err)
	return decrypted, err
}

// Update records metrics for credential update operations.
func (c *credentialUseCaseWithMetrics) Update(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	input *credentialDomain.UpdateCredentialInput,
) (*credentialDomain.Credential, error) {
	start := time.Now()
	credential, err := c.next.Update(ctx, actor, id, input)
	c.record(ctx, "credential_update", start, err)
	return credential, err
}

// Delete records metrics for credential deletion operations.
func (c *credentialUseCaseWithMetrics) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, actor, id)
	c.record(ctx, "credential_delete", start, err)
	return err
}

// List records metrics for credential list operations.
func (c *credentialUseCaseWithMetrics) List(
	ctx context.Context,
	actor *authDomain.Actor,
	filter credentialDomain.Filter,
	offset, limit int,
) ([]*credentialDomain.Credential, int, error) {
	start := time.Now()
	credentials, total, err := c.next.List(ctx, actor, filter, offset, limit)
	c.record(ctx, "credential_list", start, err)
	return credentials, total, err
}

// Export records metrics for credential export operations.
func (c *credentialUseCaseWithMetrics) Export(
	ctx context.Context,
	actor *authDomain.Actor,
	clientID uuid.UUID,
) (*credentialDomain.Export, error) {
	start := time.Now()
	export, err := c.next.Export(ctx, actor, clientID)
	c.record(ctx, "credential_export", start, err)
	return export, err
}
