package app

import (
	"context"
	"fmt"

	auditHTTP "github.com/allisson/credvault/internal/audit/http"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	clientHTTP "github.com/allisson/credvault/internal/client/http"
	credentialHTTP "github.com/allisson/credvault/internal/credential/http"
	"github.com/allisson/credvault/internal/http"
	staffHTTP "github.com/allisson/credvault/internal/staff/http"
)

// HTTPServer returns the API server with its router configured. ctx bounds
// background work owned by the router, such as rate limiter cleanup.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the Prometheus metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		provider, providerErr := c.MetricsProvider()
		if providerErr != nil {
			err = providerErr
			c.initErrors["metricsServer"] = err
			return
		}
		if provider == nil {
			return
		}
		c.metricsServer = http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider)
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

func (c *Container) initHandlers() (http.Handlers, error) {
	logger := c.Logger()

	loginUseCase, err := c.LoginUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get login use case for http server: %w", err)
	}

	credentialUseCase, err := c.CredentialUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get credential use case for http server: %w", err)
	}

	clientUseCase, err := c.ClientUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get client use case for http server: %w", err)
	}

	staffUseCase, err := c.StaffUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get staff use case for http server: %w", err)
	}

	auditLogUseCase, err := c.AuditLogUseCase()
	if err != nil {
		return http.Handlers{}, fmt.Errorf("failed to get audit log use case for http server: %w", err)
	}

	return http.Handlers{
		Login:      authHTTP.NewLoginHandler(loginUseCase, logger),
		Credential: credentialHTTP.NewCredentialHandler(credentialUseCase, logger),
		Client:     clientHTTP.NewClientHandler(clientUseCase, logger),
		Staff:      staffHTTP.NewStaffHandler(staffUseCase, logger),
		AuditLog:   auditHTTP.NewAuditLogHandler(auditLogUseCase, logger),
	}, nil
}

func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	handlers, err := c.initHandlers()
	if err != nil {
		return nil, err
	}

	auditSink, err := c.AuditLogUseCase()
	if err != nil {
		return nil, err
	}

	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}

	routerConfig := http.RouterConfig{
		CORSEnabled:           c.config.CORSEnabled,
		CORSAllowOrigins:      c.config.CORSAllowOrigins,
		RateLimitLoginEnabled: c.config.RateLimitLoginEnabled,
		RateLimitLoginRPS:     c.config.RateLimitLoginRequestsPerSec,
		RateLimitLoginBurst:   c.config.RateLimitLoginBurst,
		MetricsNamespace:      c.config.MetricsNamespace,
	}
	if provider != nil {
		routerConfig.MeterProvider = provider.MeterProvider()
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, routerConfig, handlers, c.TokenService(), auditSink)
	return server, nil
}
