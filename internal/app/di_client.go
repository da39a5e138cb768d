package app

import (
	"fmt"

	clientRepository "github.com/allisson/credvault/internal/client/repository"
	clientUseCase "github.com/allisson/credvault/internal/client/usecase"
	"github.com/allisson/credvault/internal/database"
)

// ClientRepository returns the client repository for DB_DRIVER. It also serves
// as the credential use case's ClientReader.
func (c *Container) ClientRepository() (clientUseCase.ClientRepository, error) {
	var err error
	c.clientRepositoryInit.Do(func() {
		c.clientRepository, err = c.initClientRepository()
		if err != nil {
			c.initErrors["clientRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientRepository"]; exists {
		return nil, storedErr
	}
	return c.clientRepository, nil
}

// ClientUseCase returns the client use case wrapped with metrics.
func (c *Container) ClientUseCase() (clientUseCase.ClientUseCase, error) {
	var err error
	c.clientUseCaseInit.Do(func() {
		c.clientUseCase, err = c.initClientUseCase()
		if err != nil {
			c.initErrors["clientUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clientUseCase"]; exists {
		return nil, storedErr
	}
	return c.clientUseCase, nil
}

func (c *Container) initClientRepository() (clientUseCase.ClientRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for client repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return clientRepository.NewMySQLClientRepository(db), nil
	case database.DriverPostgres:
		return clientRepository.NewPostgreSQLClientRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initClientUseCase() (clientUseCase.ClientUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for client use case: %w", err)
	}

	repo, err := c.ClientRepository()
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

	useCase := clientUseCase.NewClientUseCase(txManager, repo, auditSink, c.Logger())
	return clientUseCase.NewClientUseCaseWithMetrics(useCase, businessMetrics), nil
}
