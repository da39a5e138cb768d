package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	clientDomain "github.com/allisson/credvault/internal/client/domain"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/validation"
)

// clientUseCase implements ClientUseCase.
type clientUseCase struct {
	txManager  database.TxManager
	clientRepo ClientRepository
	recorder   *auditUseCase.Recorder
}

func (c *clientUseCase) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *clientDomain.CreateClientInput,
) (*clientDomain.Client, error) {
	now := time.Now().UTC()
	client := &clientDomain.Client{
		ID:            uuid.Must(uuid.NewV7()),
		ClientName:    input.ClientName,
		ContactPerson: input.ContactPerson,
		Address:       input.Address,
		Email:         input.Email,
		Phone:         input.Phone,
		Notes:         validation.SanitizeText(input.Notes),
		CreatedBy:     actor.Email,
		CreatedByID:   actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := client.Validate(); err != nil {
		c.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionCreateClient, auditDomain.ResourceClient, "",
			map[string]any{"clientName": input.ClientName},
		).Fail("validation failed"))
		return nil, err
	}

	if err := c.clientRepo.Create(ctx, client); err != nil {
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionCreateClient, auditDomain.ResourceClient, client.ID.String(),
		map[string]any{"clientName": client.ClientName},
	))

	return client, nil
}

func (c *clientUseCase) Get(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*clientDomain.Client, error) {
	client, err := c.clientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionViewClient, auditDomain.ResourceClient, client.ID.String(),
		map[string]any{"clientName": client.ClientName},
	))

	return client, nil
}

func (c *clientUseCase) List(
	ctx context.Context,
	actor *authDomain.Actor,
	offset, limit int,
) ([]*clientDomain.Client, int, error) {
	if err := validation.ValidatePagination(offset, limit); err != nil {
		return nil, 0, err
	}

	clients, err := c.clientRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := c.clientRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (c *clientUseCase) Update(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	input *clientDomain.UpdateClientInput,
) (*clientDomain.Client, error) {
	var client *clientDomain.Client
	var updatedFields []string

	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		client, err = c.clientRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !authDomain.CanMutate(actor, client.CreatedByID) {
			return clientDomain.ErrNotCreator
		}

		changes := *input
		if changes.Notes != nil {
			sanitized := validation.SanitizeText(*changes.Notes)
			changes.Notes = &sanitized
		}
		updatedFields = client.Apply(&changes)
		if err := client.Validate(); err != nil {
			return err
		}

		client.UpdatedAt = time.Now().UTC()
		return c.clientRepo.Update(ctx, client)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrForbidden) {
			c.recorder.Record(ctx, auditDomain.NewEntry(
				actor, auditDomain.ActionUpdateClient, auditDomain.ResourceClient, id.String(), nil,
			).Fail(apperrors.Message(err)))
		}
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionUpdateClient, auditDomain.ResourceClient, client.ID.String(),
		map[string]any{"updatedFields": updatedFields},
	))

	return client, nil
}

func (c *clientUseCase) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	var entry *auditDomain.Entry
	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		client, err := c.clientRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !authDomain.CanMutate(actor, client.CreatedByID) {
			return clientDomain.ErrNotCreator
		}

		if err := c.clientRepo.Delete(ctx, id); err != nil {
			return err
		}

		entry = auditDomain.NewEntry(
			actor, auditDomain.ActionDeleteClient, auditDomain.ResourceClient, client.ID.String(),
			map[string]any{"clientName": client.ClientName},
		)
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrForbidden) {
			c.recorder.Record(ctx, auditDomain.NewEntry(
				actor, auditDomain.ActionDeleteClient, auditDomain.ResourceClient, id.String(), nil,
			).Fail(apperrors.Message(err)))
		}
		return err
	}

	// Recorded after commit: the audit insert uses its own pool connection.
	c.recorder.Record(ctx, entry)
	return nil
}

// NewClientUseCase creates a new ClientUseCase with the provided dependencies.
func NewClientUseCase(
	txManager database.TxManager,
	clientRepo ClientRepository,
	auditSink auditUseCase.AuditSink,
	logger *slog.Logger,
) ClientUseCase {
	return &clientUseCase{
		txManager:  txManager,
		clientRepo: clientRepo,
		recorder:   auditUseCase.NewRecorder(auditSink, logger),
	}
}
