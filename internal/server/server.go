package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/voltms/voltconsole/internal/config"
	"github.com/voltms/voltconsole/internal/directory"
	"github.com/voltms/voltconsole/internal/session"
)

// Server is the console HTTP server. It holds the single session of this
// console instance; every guarded route reads that session.
type Server struct {
	router   *gin.Engine
	cfg      *config.Config
	logger   zerolog.Logger
	sessions *session.Controller
	accounts *directory.Service
	version  string
}

// New creates a server around an already constructed session controller.
// The caller is expected to kick off Rehydrate before or while serving;
// guards hold requests until it completes.
func New(cfg *config.Config, sessions *session.Controller, accounts *directory.Service, zlog zerolog.Logger, version string) *Server {
	registerValidations(zlog)

	s := &Server{
		cfg:      cfg,
		logger:   zlog,
		sessions: sessions,
		accounts: accounts,
		version:  version,
	}
	s.setupRouter()
	return s
}

// registerValidations adds custom binding validators used by the account
// forms.
func registerValidations(zlog zerolog.Logger) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// Usernames are safe for URLs and storage keys: alphanumeric plus
	// hyphen/underscore.
	err := v.RegisterValidation("alphanumdash", func(fl validator.FieldLevel) bool {
		for _, char := range fl.Field().String() {
			if !((char >= 'a' && char <= 'z') ||
				(char >= 'A' && char <= 'Z') ||
				(char >= '0' && char <= '9') ||
				char == '-' ||
				char == '_') {
				return false
			}
		}
		return true
	})
	if err != nil {
		zlog.Warn().Err(err).Msg("Failed to register validation")
	}
}

// setupRouter configures the Gin router with routes and middleware.
func (s *Server) setupRouter() {
	gin.SetMode(gin.ReleaseMode)

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())

	s.router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.cfg.Server.AllowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint (no gating)
	s.router.GET("/health", s.healthCheck)

	// Session endpoints
	s.router.POST("/api/login", s.login)
	s.router.POST("/api/logout", s.logout)
	s.router.GET("/api/session", s.sessionInfo)

	// Entry route: login view, public only
	s.router.GET("/", PublicOnly(s.sessions, s.logger), s.loginView)

	// Generic user landing
	s.router.GET("/dashboard", RequireAuth(s.sessions, s.logger), s.dashboardView)

	// Admin surface
	admin := s.router.Group("/")
	admin.Use(RequireAdmin(s.sessions, s.logger))
	{
		admin.GET("/admin", s.adminView)
		admin.GET("/api/accounts", s.listAccounts)
		admin.POST("/api/accounts", s.createAccount)
		admin.GET("/api/accounts/:id", s.getAccount)
		admin.PUT("/api/accounts/:id", s.updateAccount)
		admin.DELETE("/api/accounts/:id", s.deleteAccount)
	}

	// Unknown paths fall back to the entry route
	s.router.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, entryRoute)
	})
}

// loggingMiddleware creates a custom logging middleware using zerolog
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "online",
		"timestamp": time.Now().UTC(),
		"service":   "voltconsole",
		"version":   s.version,
	})
}

// Router exposes the configured handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until a shutdown signal arrives.
func (s *Server) Start() error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	srv := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           s.router,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		ReadHeaderTimeout: 30 * time.Second,
		IdleTimeout:       300 * time.Second,
	}

	go func() {
		s.logger.Info().Str("addr", s.cfg.Server.ListenAddr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	<-sigChan
	s.logger.Info().Msg("Received shutdown signal, shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Error().Err(err).Msg("Error shutting down HTTP server")
		return err
	}

	s.logger.Info().Msg("Server shutdown complete")
	return nil
}
