// Package http provides the API server, its router and the metrics server.
package http

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	auditHTTP "github.com/allisson/credvault/internal/audit/http"
	auditUseCase "github.com/allisson/credvault/internal/audit/usecase"
	authHTTP "github.com/allisson/credvault/internal/auth/http"
	clientHTTP "github.com/allisson/credvault/internal/client/http"
	credentialHTTP "github.com/allisson/credvault/internal/credential/http"
	"github.com/allisson/credvault/internal/database"
	"github.com/allisson/credvault/internal/metrics"
	staffHTTP "github.com/allisson/credvault/internal/staff/http"
)

const readinessTimeout = 2 * time.Second

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// Handlers groups the domain handlers mounted under /v1.
type Handlers struct {
	Login      *authHTTP.LoginHandler
	Credential *credentialHTTP.CredentialHandler
	Client     *clientHTTP.ClientHandler
	Staff      *staffHTTP.StaffHandler
	AuditLog   *auditHTTP.AuditLogHandler
}

// RouterConfig holds the cross-cutting options applied by SetupRouter.
type RouterConfig struct {
	CORSEnabled      bool
	CORSAllowOrigins string

	RateLimitLoginEnabled bool
	RateLimitLoginRPS     float64
	RateLimitLoginBurst   int

	// MeterProvider enables HTTP metrics when not nil.
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// NewServer creates a new API server. db backs the readiness probe.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port, nil),
	}
}

// SetupRouter builds the gin engine with all routes and middleware.
// ctx bounds background work started by middleware such as the login rate limiter.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg RouterConfig,
	handlers Handlers,
	tokens authHTTP.TokenParser,
	auditSink auditUseCase.AuditSink,
) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	router.Use(authHTTP.RequestMetaMiddleware())

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	login := []gin.HandlerFunc{}
	if cfg.RateLimitLoginEnabled {
		login = append(login, authHTTP.LoginRateLimitMiddleware(
			ctx, cfg.RateLimitLoginRPS, cfg.RateLimitLoginBurst, s.logger,
		))
	}
	login = append(login, handlers.Login.LoginHandler)
	v1.POST("/auth/login", login...)

	authenticated := v1.Group("")
	authenticated.Use(authHTTP.AuthenticationMiddleware(tokens, s.logger))
	{
		authenticated.POST("/auth/logout", handlers.Login.LogoutHandler)

		credentials := authenticated.Group("/credentials")
		credentials.GET("", handlers.Credential.ListHandler)
		credentials.POST("", handlers.Credential.CreateHandler)
		credentials.GET("/:id", handlers.Credential.GetHandler)
		credentials.PATCH("/:id", handlers.Credential.UpdateHandler)
		credentials.DELETE("/:id", handlers.Credential.DeleteHandler)
		credentials.POST("/:id/decrypt", handlers.Credential.DecryptHandler)

		clients := authenticated.Group("/clients")
		clients.GET("", handlers.Client.ListHandler)
		clients.POST("", handlers.Client.CreateHandler)
		clients.GET("/:id", handlers.Client.GetHandler)
		clients.PATCH("/:id", handlers.Client.UpdateHandler)
		clients.DELETE("/:id", handlers.Client.DeleteHandler)
		clients.GET("/:id/export", handlers.Credential.ExportHandler)

		admin := authenticated.Group("")
		admin.Use(authHTTP.AdminOnlyMiddleware(auditSink, s.logger))

		staff := admin.Group("/staff")
		staff.GET("", handlers.Staff.ListHandler)
		staff.POST("", handlers.Staff.CreateHandler)
		staff.PATCH("/:id/role", handlers.Staff.UpdateRoleHandler)
		staff.DELETE("/:id", handlers.Staff.DeleteHandler)

		admin.GET("/audit-logs", handlers.AuditLog.ListHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server. SetupRouter must be called first.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return errors.New("router not configured")
	}
	s.server.Handler = s.router
	return serve(ctx, s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler pings the database and answers 503 when it is unreachable.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	if err := database.Ping(c.Request.Context(), s.db, readinessTimeout); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
