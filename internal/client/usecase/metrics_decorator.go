package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/credvault/internal/auth/domain"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
	"github.com/allisson/credvault/internal/metrics"
)

// clientUseCaseWithMetrics decorates ClientUseCase with metrics instrumentation.
type clientUseCaseWithMetrics struct {
	next    ClientUseCase
	metrics metrics.BusinessMetrics
}

// NewClientUseCaseWithMetrics wraps a ClientUseCase with metrics recording.
func NewClientUseCaseWithMetrics(useCase ClientUseCase, m metrics.BusinessMetrics) ClientUseCase {
	return &clientUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *clientUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, metrics.DomainClient, operation, start, err)
}

// Create records metrics for client creation operations.
func (c *clientUseCaseWithMetrics) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *clientDomain.CreateClientInput,
) (*clientDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Create(ctx, actor, input)
	c.record(ctx, "client_create", start, err)
	return client, err
}

// Get records metrics for client retrieval operations.
func (c *clientUseCaseWithMetrics) Get(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*clientDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Get(ctx, actor, id)
	c.record(ctx, "client_get", start, err)
	return client, err
}

// List records metrics for client list operations.
func (c *clientUseCaseWithMetrics) List(
	ctx context.Context,
	actor *authDomain.Actor,
	offset, limit int,
) ([]*clientDomain.Client, int, error) {
	start := time.Now()
	clients, total, err := c.next.List(ctx, actor, offset, limit)
	c.record(ctx, "client_list", start, err)
	return clients, total, err
}

// Update records metrics for client update operations.
func (c *clientUseCaseWithMetrics) Update(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	input *clientDomain.UpdateClientInput,
) (*clientDomain.Client, error) {
	start := time.Now()
	client, err := c.next.Update(ctx, actor, id, input)
	c.record(ctx, "client_update", start, err)
	return client, err
}

// Delete records metrics for client deletion operations.
func (c *clientUseCaseWithMetrics) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	start := time.Now()
	err := c.next.Delete(ctx, actor, id)
	c.record(ctx, "client_delete", start, err)
	return err
}
