// Package server wires the HTTP boundary: health probe, token endpoints,
// self-registration, and the staff-only admin API.
package server

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-accounts"
	"github.com/goliatone/go-accounts/admin"
	"github.com/goliatone/go-accounts/config"
	"github.com/goliatone/go-accounts/mailer"
)

// Server owns the fiber app and the components behind the routes.
type Server struct {
	app    *fiber.App
	cfg    *config.Config
	db     *bun.DB
	repo   accounts.RepositoryManager
	mgr    *accounts.Manager
	auther *accounts.Authenticator
	authz  *accounts.Authorizer
	lister *admin.Lister
	mail   mailer.Mailer
	logger accounts.Logger
}

type Option func(*Server)

func WithLogger(l accounts.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMailer(m mailer.Mailer) Option {
	return func(s *Server) {
		if m != nil {
			s.mail = m
		}
	}
}

// New assembles the app and registers all routes.
func New(cfg *config.Config, db *bun.DB, repo accounts.RepositoryManager, opts ...Option) *Server {
	tokens := accounts.NewTokenService(cfg.JWT, nil)

	s := &Server{
		app: fiber.New(fiber.Config{
			AppName:      "go-accounts",
			ErrorHandler: errorHandler,
		}),
		cfg:    cfg,
		db:     db,
		repo:   repo,
		mgr:    accounts.NewManager(repo.Accounts(), accounts.WithCredentialValidator(admin.PasswordValidator())),
		auther: accounts.NewAuthenticator(repo.Accounts(), tokens),
		authz:  accounts.NewAuthorizer(repo.Groups()),
		lister: admin.NewLister(db, admin.AccountsResource()),
		mail:   mailer.FromConfig(cfg.Mail),
		logger: noopLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.registerRoutes()

	return s
}

// App exposes the fiber app, mainly for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving HTTP on the configured address.
func (s *Server) Listen() error {
	return s.app.Listen(s.cfg.HTTPAddr)
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) registerRoutes() {
	if s.cfg.Env == config.Production {
		s.app.Use(securityHeaders(s.cfg.Security))
	}

	s.app.Get("/health", s.Health)

	api := s.app.Group("/api/v1/auth")
	api.Post("/login", s.Login)
	api.Post("/refresh", s.Refresh)
	api.Post("/verify", s.Verify)

	acc := s.app.Group("/accounts")
	acc.Post("/register", s.Register)

	adm := s.app.Group("/admin", s.RequireStaff())
	adm.Get("/accounts", s.AdminList)
	adm.Get("/accounts/:id", s.AdminGet)
	adm.Patch("/accounts/:id", s.AdminUpdate)
	adm.Post("/accounts/:id/password", s.AdminSetPassword)
	adm.Delete("/accounts/:id", s.AdminDelete)
}

// Health reports liveness plus database connectivity.
func (s *Server) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":   "healthy",
		"database": "connected",
	})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
