// Package http provides the HTTP servers: the public API router and the metrics endpoint.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accountHTTP "github.com/allisson/accounts/internal/account/http"
	authHTTP "github.com/allisson/accounts/internal/auth/http"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/config"
	"github.com/allisson/accounts/internal/metrics"
)

// Handlers groups the route handlers mounted under /v1.
type Handlers struct {
	Account        *accountHTTP.AccountHandler
	Event          *accountHTTP.EventHandler
	Session        *authHTTP.SessionHandler
	SessionUseCase authUseCase.SessionUseCase
}

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	logger *slog.Logger
	router *gin.Engine

	// ctx bounds background work owned by the router, such as rate limiter cleanup.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new HTTP server. Call SetupRouter before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{
		db:     db,
		logger: logger,
		server: newHTTPServer(host, port),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetupRouter builds the gin engine with the middleware chain and every route.
func (s *Server) SetupRouter(cfg *config.Config, handlers Handlers, metricsProvider *metrics.Provider) {
	router := gin.New()
	// Links sent in notices end with a slash; both forms are registered explicitly.
	router.RedirectTrailingSlash = false

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			metricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
			"/health",
			"/ready",
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	credentials := []gin.HandlerFunc{}
	if cfg.RateLimitEnabled {
		credentials = append(credentials, authHTTP.TokenRateLimitMiddleware(
			s.ctx,
			cfg.RateLimitRequestsPerSec,
			cfg.RateLimitBurst,
			s.logger,
		))
	}
	authenticated := authHTTP.AuthenticationMiddleware(handlers.SessionUseCase, s.logger)

	v1 := router.Group("/v1")
	{
		handle(v1, http.MethodPost, "/sign-up", append(credentials, handlers.Account.SignUpHandler)...)
		handle(v1, http.MethodPost, "/sign-in", append(credentials, handlers.Session.SignInHandler)...)
		handle(v1, http.MethodPost, "/authenticate", append(credentials, handlers.Session.AuthenticateHandler)...)

		handle(v1, http.MethodGet, "/activate/:uuid/:token", handlers.Account.ActivateHandler)
		handle(v1, http.MethodPost, "/resend-activation/:uuid", handlers.Account.ResendActivationHandler)

		handle(v1, http.MethodPost, "/reset-password",
			append(credentials, handlers.Account.RequestPasswordResetHandler)...)
		handle(v1, http.MethodGet, "/reset-password/:uuid/:token", handlers.Account.ValidateResetTokenHandler)
		handle(v1, http.MethodPost, "/set-password/:uuid/:token",
			append(credentials, handlers.Account.SetPasswordHandler)...)

		handle(v1, http.MethodPost, "/change-password", authenticated, handlers.Account.ChangePasswordHandler)
		handle(v1, http.MethodPost, "/update-details", authenticated, handlers.Account.UpdateDetailsHandler)
		handle(v1, http.MethodPost, "/sign-out", authenticated, handlers.Session.SignOutHandler)
		handle(v1, http.MethodGet, "/events", authenticated, handlers.Event.ListHandler)
	}

	s.router = router
}

// handle registers path with and without its trailing slash.
func handle(group *gin.RouterGroup, method, path string, handlers ...gin.HandlerFunc) {
	chain := make([]gin.HandlerFunc, len(handlers))
	copy(chain, handlers)
	group.Handle(method, path, chain...)
	group.Handle(method, path+"/", chain...)
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not set up")
	}
	s.server.Handler = s.router
	return listen(s.server, s.logger, "http server")
}

// Shutdown gracefully shuts down the HTTP server and stops router background work.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	s.cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only while the database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if s.db == nil || s.db.PingContext(ctx) != nil {
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
