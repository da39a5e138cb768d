package app

import (
	"context"
	"fmt"
	"log/slog"

	authService "github.com/allisson/credvault/internal/auth/service"
	authUseCase "github.com/allisson/credvault/internal/auth/usecase"
	"github.com/allisson/credvault/internal/database"
	staffRepository "github.com/allisson/credvault/internal/staff/repository"
	staffUseCase "github.com/allisson/credvault/internal/staff/usecase"
)

// TokenService returns the JWT session token service. Without JWT_SECRET it
// signs with a fixed development secret and says so loudly.
func (c *Container) TokenService() *authService.TokenService {
	c.tokenServiceInit.Do(func() {
		secret := c.config.JWTSecret
		if secret == "" {
			level := slog.LevelError
			if c.config.IsDevelopment() {
				level = slog.LevelWarn
			}
			c.Logger().Log(context.Background(), level, "insecure development JWT secret in use; set JWT_SECRET")
			secret = authService.DevFallbackSecret
		}
		c.tokenService = authService.NewTokenService(secret, c.config.AuthTokenExpiration)
	})
	return c.tokenService
}

// PasswordHasher returns the Argon2id staff password hasher.
func (c *Container) PasswordHasher() (*authService.PasswordHasher, error) {
	var err error
	c.passwordHasherInit.Do(func() {
		c.passwordHasher, err = authService.NewPasswordHasher()
		if err != nil {
			err = fmt.Errorf("failed to create password hasher: %w", err)
			c.initErrors["passwordHasher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordHasher"]; exists {
		return nil, storedErr
	}
	return c.passwordHasher, nil
}

// StaffRepository returns the staff repository for DB_DRIVER.
func (c *Container) StaffRepository() (staffUseCase.StaffRepository, error) {
	var err error
	c.staffRepositoryInit.Do(func() {
		c.staffRepository, err = c.initStaffRepository()
		if err != nil {
			c.initErrors["staffRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["staffRepository"]; exists {
		return nil, storedErr
	}
	return c.staffRepository, nil
}

// StaffUseCase returns the staff use case wrapped with metrics.
func (c *Container) StaffUseCase() (staffUseCase.StaffUseCase, error) {
	var err error
	c.staffUseCaseInit.Do(func() {
		c.staffUseCase, err = c.initStaffUseCase()
		if err != nil {
			c.initErrors["staffUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["staffUseCase"]; exists {
		return nil, storedErr
	}
	return c.staffUseCase, nil
}

// LoginUseCase returns the login use case.
func (c *Container) LoginUseCase() (authUseCase.LoginUseCase, error) {
	var err error
	c.loginUseCaseInit.Do(func() {
		c.loginUseCase, err = c.initLoginUseCase()
		if err != nil {
			c.initErrors["loginUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["loginUseCase"]; exists {
		return nil, storedErr
	}
	return c.loginUseCase, nil
}

func (c *Container) initStaffRepository() (staffUseCase.StaffRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for staff repository: %w", err)
	}

	switch c.config.DBDriver {
	case database.DriverMySQL:
		return staffRepository.NewMySQLStaffRepository(db), nil
	case database.DriverPostgres:
		return staffRepository.NewPostgreSQLStaffRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

func (c *Container) initStaffUseCase() (staffUseCase.StaffUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for staff use case: %w", err)
	}

	repo, err := c.StaffRepository()
	if err != nil {
		return nil, err
	}

	hasher, err := c.PasswordHasher()
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

	useCase := staffUseCase.NewStaffUseCase(txManager, repo, hasher, auditSink, c.Logger())
	return staffUseCase.NewStaffUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initLoginUseCase() (authUseCase.LoginUseCase, error) {
	repo, err := c.StaffRepository()
	if err != nil {
		return nil, err
	}

	hasher, err := c.PasswordHasher()
	if err != nil {
		return nil, err
	}

	auditSink, err := c.AuditLogUseCase()
	if err != nil {
		return nil, err
	}

	return authUseCase.NewLoginUseCase(repo, hasher, c.TokenService(), auditSink, c.Logger()), nil
}
