package app

import (
	"fmt"

	credentialRepository "github.com/allisson/credvault/internal/credential/repository"
	credentialUseCase "github.com/allisson/credvault/internal/credential/usecase"
	"github.com/allisson/credvault/internal/database"
)

// CredentialRepository returns the credential repository for DB_DRIVER.
func (c *Container) CredentialRepository() (credentialUseCase.CredentialRepository, error) {
	var err error
	c.credentialRepositoryInit.Do(func() {
		c.credentialRepository, err = c.initCredentialRepository()
		if err != nil {
			c.initErrors["credentialRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialRepository"]; exists {
		return nil, storedErr
	}
	return c.credentialRepository, nil
}

// CredentialUseCase returns the credential use case wrapped with metrics.
func (c *Container) CredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	var err error
	c.credentialUseCaseInit.Do(func() {
		c.credentialUseCase, err = c.initCredentialUseCase()
		if err != nil {
			c.initErrors["credentialUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["credentialUseCase"]; exists {
		return nil, storedErr
	}
	return c.credentialUseCase, nil
}

func (c *Container) initCredentialRepository() (credentialUseCase.CredentialRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for credential repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return credentialRepository.NewMySQLCredentialRepository(db), nil
	case database.DriverPostgres:
		return credentialRepository.NewPostgreSQLCredentialRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initCredentialUseCase() (credentialUseCase.CredentialUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for credential use case: %w", err)
	}

	repo, err := c.CredentialRepository()
	if err != nil {
		return nil, err
	}

	clients, err := c.ClientRepository()
	if err != nil {
		return nil, err
	}

	cipher, err := c.Cipher()
	if err != nil {
		return nil, err
	}

	auditSink, err := c.AuditLogUseCase()
	if err != nil {
		return nil, err
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, err
	}

	useCase := credentialUseCase.NewCredentialUseCase(txManager, repo, clients, cipher, auditSink, c.Logger())
	return credentialUseCase.NewCredentialUseCaseWithMetrics(useCase, businessMetrics), nil
}
