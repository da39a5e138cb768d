package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	auditDomain "github.com/allisson/credvault/internal/audit/domain"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authDomain "github.com/allisson/credvault/internal/auth/domain"
	credentialDomain "github.com/allisson/credvault/internal/credential/domain"
	cryptoService "github.com/allisson/credvault/internal/crypto/service"
	"github.com/allisson/credvault/internal/database"
	apperrors "github.com/allisson/credvault/internal/errors"
	"github.com/allisson/credvault/internal/validation"
)

// exportBatchSize is the page size used to walk a client's credentials during export.
const exportBatchSize = validation.MaxPageLimit

// credentialUseCase implements CredentialUseCase.
type credentialUseCase struct {
	txManager      database.TxManager
	credentialRepo CredentialRepository
	clientReader   ClientReader
	cipher         cryptoService.Cipher
	recorder       *auditUseCase.Recorder
	logger         *slog.Logger
}

func (c *credentialUseCase) Create(
	ctx context.Context,
	actor *authDomain.Actor,
	input *credentialDomain.CreateCredentialInput,
) (*credentialDomain.Credential, error) {
	fields := input.Fields
	fields.Notes = validation.SanitizeText(fields.Notes)
	input = &credentialDomain.CreateCredentialInput{
		ClientID:       input.ClientID,
		CredentialType: input.CredentialType,
		Fields:         fields,
	}

	if err := input.Validate(); err != nil {
		c.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionCreateCredential, auditDomain.ResourceCredential, "",
			map[string]any{"credentialType": input.CredentialType, "serviceName": input.ServiceName},
		).Fail("validation failed"))
		return nil, err
	}

	if _, err := c.clientReader.GetByID(ctx, input.ClientID); err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, credentialDomain.ErrClientNotFound
		}
		return nil, err
	}

	passwordBlob, err := c.cipher.Encrypt(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	credential := &credentialDomain.Credential{
		ID:             uuid.Must(uuid.NewV7()),
		ClientID:       input.ClientID,
		ServiceName:    input.ServiceName,
		Username:       input.Username,
		Password:       passwordBlob,
		URL:            input.URL,
		Notes:          input.Notes,
		CredentialType: input.CredentialType,
		CreatedBy:      actor.Email,
		CreatedByID:    actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if input.CredentialType == credentialDomain.CredentialTypeEmail {
		outgoingBlob, err := c.cipher.Encrypt(input.Email.OutgoingPassword)
		if err != nil {
			return nil, err
		}
		credential.URL = ""
		credential.Notes, err = credentialDomain.NewEmailConfig(&input.Fields, outgoingBlob).Serialize()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to serialize email config")
		}
	}

	if err := c.credentialRepo.Create(ctx, credential); err != nil {
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionCreateCredential, auditDomain.ResourceCredential, credential.ID.String(),
		map[string]any{
			"serviceName":    credential.ServiceName,
			"clientId":       credential.ClientID.String(),
			"credentialType": credential.CredentialType,
		},
	))

	return credential, nil
}

func (c *credentialUseCase) Get(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*credentialDomain.Credential, error) {
	credential, err := c.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authDomain.CanRead(actor, credential.CreatedByID) {
		c.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionViewCredential, auditDomain.ResourceCredential, id.String(), nil,
		).Fail(apperrors.Message(authDomain.ErrNotOwner)))
		return nil, authDomain.ErrNotOwner
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionViewCredential, auditDomain.ResourceCredential, credential.ID.String(),
		map[string]any{"serviceName": credential.ServiceName, "clientId": credential.ClientID.String()},
	))

	return credential, nil
}

func (c *credentialUseCase) Decrypt(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
) (*credentialDomain.DecryptedCredential, error) {
	credential, err := c.credentialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authDomain.CanDecrypt(actor, credential.CreatedByID) {
		c.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionDecryptCredential, auditDomain.ResourceCredential, id.String(), nil,
		).Fail(apperrors.Message(authDomain.ErrNotOwner)))
		return nil, authDomain.ErrNotOwner
	}

	decrypted, err := c.decrypt(credential)
	if err != nil {
		c.logger.Warn("credential decryption failed",
			slog.String("credential_id", id.String()),
			slog.Any("error", err),
		)
		c.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionDecryptCredential, auditDomain.ResourceCredential, id.String(),
			map[string]any{"serviceName": credential.ServiceName, "clientId": credential.ClientID.String()},
		).Fail(credentialDomain.ErrDecryptionFailed.Error()))
		return nil, credentialDomain.ErrDecryptionFailed
	}

	if err := c.credentialRepo.UpdateLastAccessed(ctx, []uuid.UUID{id}, time.Now().UTC()); err != nil {
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionDecryptCredential, auditDomain.ResourceCredential, id.String(),
		map[string]any{
			"serviceName": credential.ServiceName,
			"clientId":    credential.ClientID.String(),
			"decryptedBy": actor.OwnershipTag(credential.CreatedByID),
		},
	))

	return decrypted, nil
}

func (c *credentialUseCase) Update(
	ctx context.Context,
	actor *authDomain.Actor,
	id uuid.UUID,
	input *credentialDomain.UpdateCredentialInput,
) (*credentialDomain.Credential, error) {
	var credential *credentialDomain.Credential
	var updatedFields []string

	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		var err error
		credential, err = c.credentialRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !authDomain.CanMutate(actor, credential.CreatedByID) {
			return authDomain.ErrNotOwner
		}

		credentialType := credential.ResolveType()
		var cfg *credentialDomain.EmailConfig
		if credentialType == credentialDomain.CredentialTypeEmail {
			cfg, _ = credentialDomain.DeserializeEmailConfig(credential.Notes)
		}

		fields := credential.Fields(cfg)
		updatedFields = fields.Apply(credentialType, input)
		fields.Notes = validation.SanitizeText(fields.Notes)
		if err := fields.Validate(credentialType); err != nil {
			return err
		}

		if input.Password != nil {
			if credential.Password, err = c.cipher.Encrypt(fields.Password); err != nil {
				return err
			}
		}

		credential.ServiceName = fields.ServiceName
		credential.Username = fields.Username
		credential.URL = fields.URL
		credential.Notes = fields.Notes
		credential.CredentialType = credentialType

		if credentialType == credentialDomain.CredentialTypeEmail {
			outgoingBlob := ""
			if cfg != nil {
				outgoingBlob = cfg.OutgoingPassword
			}
			if input.OutgoingPassword != nil {
				if outgoingBlob, err = c.cipher.Encrypt(fields.Email.OutgoingPassword); err != nil {
					return err
				}
			}
			if credential.Notes, err = credentialDomain.NewEmailConfig(fields, outgoingBlob).Serialize(); err != nil {
				return apperrors.Wrap(err, "failed to serialize email config")
			}
		}

		credential.UpdatedAt = time.Now().UTC()
		return c.credentialRepo.Update(ctx, credential)
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrForbidden) {
			c.recorder.Record(ctx, auditDomain.NewEntry(
				actor, auditDomain.ActionUpdateCredential, auditDomain.ResourceCredential, id.String(), nil,
			).Fail(apperrors.Message(err)))
		}
		return nil, err
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionUpdateCredential, auditDomain.ResourceCredential, credential.ID.String(),
		map[string]any{"updatedFields": updatedFields},
	))

	return credential, nil
}

func (c *credentialUseCase) Delete(ctx context.Context, actor *authDomain.Actor, id uuid.UUID) error {
	// The entry is built under the row lock and recorded after commit so the
	// audit insert never waits for a connection while the transaction holds one.
	var entry *auditDomain.Entry
	err := c.txManager.WithTx(ctx, func(ctx context.Context) error {
		credential, err := c.credentialRepo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !authDomain.CanMutate(actor, credential.CreatedByID) {
			return authDomain.ErrNotOwner
		}

		if err := c.credentialRepo.Delete(ctx, id); err != nil {
			return err
		}

		entry = auditDomain.NewEntry(
			actor, auditDomain.ActionDeleteCredential, auditDomain.ResourceCredential, credential.ID.String(),
			map[string]any{
				"serviceName": credential.ServiceName,
				"clientId":    credential.ClientID.String(),
				"username":    credential.Username,
			},
		)
		return nil
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrForbidden) {
			c.recorder.Record(ctx, auditDomain.NewEntry(
				actor, auditDomain.ActionDeleteCredential, auditDomain.ResourceCredential, id.String(), nil,
			).Fail(apperrors.Message(err)))
		}
		return err
	}

	c.recorder.Record(ctx, entry)
	return nil
}

func (c *credentialUseCase) List(
	ctx context.Context,
	actor *authDomain.Actor,
	filter credentialDomain.Filter,
	offset, limit int,
) ([]*credentialDomain.Credential, int, error) {
	if err := validation.ValidatePagination(offset, limit); err != nil {
		return nil, 0, err
	}

	filter = scopeFilter(actor, filter)

	credentials, err := c.credentialRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := c.credentialRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return credentials, total, nil
}

func (c *credentialUseCase) Export(
	ctx context.Context,
	actor *authDomain.Actor,
	clientID uuid.UUID,
) (*credentialDomain.Export, error) {
	if !authDomain.CanExport(actor) {
		c.recorder.Record(ctx, auditDomain.NewEntry(
			actor, auditDomain.ActionExportData, auditDomain.ResourceClient, clientID.String(), nil,
		).Fail("export not permitted"))
		return nil, apperrors.ErrForbidden
	}

	client, err := c.clientReader.GetByID(ctx, clientID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			c.recorder.Record(ctx, auditDomain.NewEntry(
				actor, auditDomain.ActionExportData, auditDomain.ResourceClient, clientID.String(), nil,
			).Fail(apperrors.Message(credentialDomain.ErrClientNotFound)))
			return nil, credentialDomain.ErrClientNotFound
		}
		return nil, err
	}

	filter := scopeFilter(actor, credentialDomain.Filter{ClientID: &clientID})
	var credentials []*credentialDomain.Credential
	for offset := 0; ; offset += exportBatchSize {
		batch, err := c.credentialRepo.List(ctx, filter, offset, exportBatchSize)
		if err != nil {
			return nil, err
		}
		credentials = append(credentials, batch...)
		if len(batch) < exportBatchSize {
			break
		}
	}

	export := &credentialDomain.Export{
		ClientID:      client.ID,
		ClientName:    client.ClientName,
		ContactPerson: client.ContactPerson,
		GeneratedBy:   actor.Email,
		GeneratedAt:   time.Now().UTC(),
		Credentials:   make([]*credentialDomain.ExportedCredential, 0, len(credentials)),
	}

	var accessed []uuid.UUID
	for _, credential := range credentials {
		decrypted, err := c.decrypt(credential)
		if err != nil {
			c.logger.Warn("credential decryption failed during export",
				slog.String("credential_id", credential.ID.String()),
				slog.Any("error", err),
			)
			decrypted = redacted(credential)
		} else {
			accessed = append(accessed, credential.ID)
		}

		notes := credential.Notes
		if decrypted.EmailConfig != nil {
			notes = decrypted.EmailConfig.AdditionalNotes
		}
		export.Credentials = append(export.Credentials, &credentialDomain.ExportedCredential{
			DecryptedCredential: *decrypted,
			Notes:               notes,
			CreatedBy:           credential.CreatedBy,
			CreatedAt:           credential.CreatedAt,
		})
	}

	if len(accessed) > 0 {
		if err := c.credentialRepo.UpdateLastAccessed(ctx, accessed, export.GeneratedAt); err != nil {
			return nil, err
		}
	}

	c.recorder.Record(ctx, auditDomain.NewEntry(
		actor, auditDomain.ActionExportData, auditDomain.ResourceClient, clientID.String(),
		map[string]any{"clientId": clientID.String(), "count": len(export.Credentials)},
	))

	return export, nil
}

// decrypt opens the primary password and, for email credentials, the outgoing password.
func (c *credentialUseCase) decrypt(
	credential *credentialDomain.Credential,
) (*credentialDomain.DecryptedCredential, error) {
	password, err := c.cipher.Decrypt(credential.Password)
	if err != nil {
		return nil, err
	}

	decrypted := decryptedShell(credential)
	decrypted.Password = password

	if decrypted.EmailConfig != nil && decrypted.EmailConfig.OutgoingPassword != "" {
		outgoing, err := c.cipher.Decrypt(decrypted.EmailConfig.OutgoingPassword)
		if err != nil {
			return nil, err
		}
		decrypted.EmailConfig.OutgoingPassword = outgoing
	}

	return decrypted, nil
}

// redacted is the export row of a credential that could not be decrypted.
func redacted(credential *credentialDomain.Credential) *credentialDomain.DecryptedCredential {
	decrypted := decryptedShell(credential)
	decrypted.Password = credentialDomain.DecryptionFailedPlaceholder
	if decrypted.EmailConfig != nil && decrypted.EmailConfig.OutgoingPassword != "" {
		decrypted.EmailConfig.OutgoingPassword = credentialDomain.DecryptionFailedPlaceholder
	}
	return decrypted
}

// decryptedShell copies the non-secret fields of credential. The email config
// still carries the encoded outgoing password.
func decryptedShell(credential *credentialDomain.Credential) *credentialDomain.DecryptedCredential {
	decrypted := &credentialDomain.DecryptedCredential{
		ID:             credential.ID,
		ServiceName:    credential.ServiceName,
		Username:       credential.Username,
		URL:            credential.URL,
		CredentialType: credential.ResolveType(),
	}
	if decrypted.CredentialType == credentialDomain.CredentialTypeEmail {
		if cfg, ok := credentialDomain.DeserializeEmailConfig(credential.Notes); ok {
			decrypted.EmailConfig = cfg
		}
	}
	return decrypted
}

// scopeFilter restricts non-admin actors to their own credentials, overriding
// any creator filter supplied by the caller.
func scopeFilter(actor *authDomain.Actor, filter credentialDomain.Filter) credentialDomain.Filter {
	if !actor.IsAdmin() {
		filter.CreatedByID = lo.ToPtr(actor.ID)
	}
	return filter
}

// NewCredentialUseCase creates a new CredentialUseCase with the provided dependencies.
func NewCredentialUseCase(
	txManager database.TxManager,
	credentialRepo CredentialRepository,
	clientReader ClientReader,
	cipher cryptoService.Cipher,
	auditSink auditUseCase.AuditSink,
	logger *slog.Logger,
) CredentialUseCase {
	return &credentialUseCase{
		txManager:      txManager,
		credentialRepo: credentialRepo,
		clientReader:   clientReader,
		cipher:         cipher,
		recorder:       auditUseCase.NewRecorder(auditSink, logger),
		logger:         logger,
	}
}
