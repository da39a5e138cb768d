package app

import (
	"fmt"

	auditRepository "github.com/allisson/credvault/internal/audit/repository"
	auditService "github.com/allisson/credvault/internal/audit/service"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	"github.com/allisson/credvault/internal/database"
	"github.com/allisson/credvault/internal/scheduler"
)

// AuditLogRepository returns the audit log repository for DB_DRIVER.
func (c *Container) AuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	var err error
	c.auditLogRepositoryInit.Do(func() {
		c.auditLogRepository, err = c.initAuditLogRepository()
		if err != nil {
			c.initErrors["auditLogRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogRepository"]; exists {
		return nil, storedErr
	}
	return c.auditLogRepository, nil
}

// AuditLogUseCase returns the audit log use case. It is also the AuditSink
// handed to every audited use case.
func (c *Container) AuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	var err error
	c.auditLogUseCaseInit.Do(func() {
		c.auditLogUseCase, err = c.initAuditLogUseCase()
		if err != nil {
			c.initErrors["auditLogUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["auditLogUseCase"]; exists {
		return nil, storedErr
	}
	return c.auditLogUseCase, nil
}

// Scheduler returns the audit retention scheduler.
func (c *Container) Scheduler() (*scheduler.Scheduler, error) {
	var err error
	c.schedulerInit.Do(func() {
		var useCase auditUseCase.AuditLogUseCase
		useCase, err = c.AuditLogUseCase()
		if err != nil {
			err = fmt.Errorf("failed to get audit log use case for scheduler: %w", err)
			c.initErrors["scheduler"] = err
			return
		}
		c.scheduler = scheduler.NewScheduler(
			useCase,
			c.config.AuditRetentionDays,
			c.config.AuditRetentionCron,
			c.Logger(),
		)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["scheduler"]; exists {
		return nil, storedErr
	}
	return c.scheduler, nil
}

func (c *Container) initAuditLogRepository() (auditUseCase.AuditLogRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for audit log repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return auditRepository.NewMySQLAuditLogRepository(db), nil
	case database.DriverPostgres:
		return auditRepository.NewPostgreSQLAuditLogRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initAuditLogUseCase() (auditUseCase.AuditLogUseCase, error) {
	repo, err := c.AuditLogRepository()
	if err != nil {
		return nil, err
	}

	provider, err := c.KeyProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get key provider for audit signer: %w", err)
	}

	signer, err := auditService.NewSigner(provider)
	if err != nil {
		return nil, fmt.Errorf("failed to create audit signer: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	return auditUseCase.NewAuditLogUseCaseWithMetrics(
		auditUseCase.NewAuditLogUseCase(repo, signer),
		businessMetrics,
	), nil
}
