// Package server provides the HTTP server for the inventory API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// Initialization follows a fixed order with explicit dependency injection:
// storage, auth providers, repositories, outbound providers, services,
// handlers and finally routes. The server shuts down gracefully on SIGINT or
// SIGTERM and runs an hourly maintenance task while it is up.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/inventory_backend/internal/auth"
	"github.com/yasinhessnawi1/inventory_backend/internal/config"
	"github.com/yasinhessnawi1/inventory_backend/internal/constants"
	"github.com/yasinhessnawi1/inventory_backend/internal/database"
	"github.com/yasinhessnawi1/inventory_backend/internal/handlers"
	"github.com/yasinhessnawi1/inventory_backend/internal/middleware"
	"github.com/yasinhessnawi1/inventory_backend/internal/repository"
	"github.com/yasinhessnawi1/inventory_backend/internal/service"
	"github.com/yasinhessnawi1/inventory_backend/migrations"
	"github.com/yasinhessnawi1/inventory_backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
type Handlers struct {
	// AuthHandler manages registration, login, logout and login status
	AuthHandler *handlers.AuthHandler

	// UserHandler manages the current user's profile and password
	UserHandler *handlers.UserHandler

	// PasswordResetHandler manages the forgot/reset password flow
	PasswordResetHandler *handlers.PasswordResetHandler

	// ProductHandler manages product endpoints
	ProductHandler *handlers.ProductHandler

	// ContactHandler forwards messages to the support mailbox
	ContactHandler *handlers.ContactHandler
}

// AuthProviders contains all authentication providers for the application.
type AuthProviders struct {
	// JWTService handles session token generation and validation
	JWTService *auth.JWTService

	// PasswordCfg contains password hashing configuration
	PasswordCfg *auth.PasswordConfig
}

// Repositories holds the data access layer for the selected storage backend.
type Repositories struct {
	Users       repository.UserRepository
	Products    repository.ProductRepository
	ResetTokens repository.PasswordResetRepository
}

// Services holds the business services used by the handlers.
type Services struct {
	Auth          *service.AuthService
	Users         *service.UserService
	PasswordReset *service.PasswordResetService
	Products      *service.ProductService
	Email         *service.EmailService
	Media         *service.MediaService
}

// Dependencies are the externally connected collaborators of the server.
// NewServer builds them from configuration; tests supply their own.
type Dependencies struct {
	Store        database.Store
	Repositories *Repositories
	Mailer       service.Mailer
	MediaStore   service.MediaStore
}

// Server represents the API server.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db is the active storage backend
	Db database.Store

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	authProviders *AuthProviders
	repositories  *Repositories
	services      *Services
	mailer        service.Mailer
	mediaStore    service.MediaStore

	// httpServer is the underlying HTTP server
	httpServer *http.Server

	maintenanceStop chan struct{}
	maintenanceOnce sync.Once
}

// NewServer creates a new server instance with all required components.
// It connects the configured storage backend and outbound providers, then
// wires services, handlers and routes.
//
// Parameters:
//   - cfg: Application configuration including database, server, and auth settings
//
// Returns:
//   - A fully initialized Server instance ready to start
//   - An error if initialization of any component fails
func NewServer(cfg *config.AppConfig) (*Server, error) {
	ctx := context.Background()

	store, repos, err := setupDatabase(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	if cfg.Database.Seed {
		seeder := scripts.NewSeeder(repos.Users, repos.Products, auth.ConfigFromAppConfig(cfg))
		if err := seeder.SeedDatabase(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("failed to seed database: %w", err)
		}
	}

	mailer, err := service.NewMailer(&cfg.Email)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to set up mailer: %w", err)
	}

	mediaStore, err := service.NewMediaStore(ctx, &cfg.Media)
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to set up media store: %w", err)
	}

	return New(cfg, &Dependencies{
		Store:        store,
		Repositories: repos,
		Mailer:       mailer,
		MediaStore:   mediaStore,
	})
}

// New builds a server around already connected dependencies.
func New(cfg *config.AppConfig, deps *Dependencies) (*Server, error) {
	if deps == nil || deps.Store == nil || deps.Repositories == nil {
		return nil, errors.New("storage dependencies are required")
	}
	if deps.Mailer == nil || deps.MediaStore == nil {
		return nil, errors.New("mailer and media store are required")
	}

	s := &Server{
		Config:          cfg,
		Db:              deps.Store,
		repositories:    deps.Repositories,
		mailer:          deps.Mailer,
		mediaStore:      deps.MediaStore,
		maintenanceStop: make(chan struct{}),
	}

	s.setupAuthProviders()

	if err := s.setupServices(); err != nil {
		return nil, fmt.Errorf("failed to set up services: %w", err)
	}

	s.setupHandlers()
	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return s, nil
}

// setupDatabase connects the backend selected by database.driver and builds
// the matching repository set. Postgres schemas are migrated, Mongo
// collections get their indexes.
func setupDatabase(ctx context.Context, cfg *config.AppConfig) (database.Store, *Repositories, error) {
	if cfg.Database.IsMongo() {
		store, err := database.ConnectMongo(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}

		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to create indexes: %w", err)
		}

		return store, &Repositories{
			Users:       repository.NewMongoUserRepository(store.DB),
			Products:    repository.NewMongoProductRepository(store.DB),
			ResetTokens: repository.NewMongoPasswordResetRepository(store.DB),
		}, nil
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	migrator := migrations.NewMigrator(pool)
	if err := migrator.RunMigrations(ctx); err != nil {
		_ = pool.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return pool, &Repositories{
		Users:       repository.NewUserRepository(pool),
		Products:    repository.NewProductRepository(pool),
		ResetTokens: repository.NewPasswordResetRepository(pool),
	}, nil
}

// setupAuthProviders creates the session token service and password config.
func (s *Server) setupAuthProviders() {
	s.authProviders = &AuthProviders{
		JWTService:  auth.NewJWTService(&s.Config.JWT),
		PasswordCfg: auth.ConfigFromAppConfig(s.Config),
	}
}

// setupServices initializes all business services.
func (s *Server) setupServices() error {
	if s.authProviders == nil || s.authProviders.JWTService == nil {
		return fmt.Errorf("JWT service not initialized")
	}
	if s.authProviders.PasswordCfg == nil {
		return fmt.Errorf("password config not initialized")
	}

	users := service.NewUserService(s.repositories.Users, s.authProviders.PasswordCfg)
	email := service.NewEmailService(s.mailer, s.Config.Email.SupportAddress)
	media := service.NewMediaService(s.mediaStore)

	s.services = &Services{
		Auth: service.NewAuthService(
			s.repositories.Users,
			s.authProviders.JWTService,
			s.authProviders.PasswordCfg,
		),
		Users: users,
		PasswordReset: service.NewPasswordResetService(
			users,
			s.repositories.Users,
			s.repositories.ResetTokens,
			email,
			s.Config.App.ResetPasswordURL,
		),
		Products: service.NewProductService(s.repositories.Products, media),
		Email:    email,
		Media:    media,
	}

	return nil
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		AuthHandler:          handlers.NewAuthHandler(s.services.Auth),
		UserHandler:          handlers.NewUserHandler(s.services.Users),
		PasswordResetHandler: handlers.NewPasswordResetHandler(s.services.PasswordReset),
		ProductHandler:       handlers.NewProductHandler(s.services.Products, s.Config.Media.MaxUploadBytes),
		ContactHandler:       handlers.NewContactHandler(s.services.Email),
	}
}

// Start starts the HTTP server and blocks until it fails or a shutdown
// signal arrives, in which case it shuts down gracefully.
//
// Returns:
//   - An error if the server fails to start or cannot stop gracefully
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	s.SetupMaintenanceTasks()

	select {
	case err := <-serverErrors:
		s.stopMaintenance()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if closeErr := s.Db.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close database connection")
		}
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests,
// then stops maintenance and closes the store.
//
// Parameters:
//   - ctx: Context with timeout for the shutdown operation
func (s *Server) Shutdown(ctx context.Context) error {
	s.stopMaintenance()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	if err := s.Db.Close(); err != nil {
		log.Warn().Err(err).Msg("Failed to close database connection")
	} else {
		log.Info().Msg("Database connection closed")
	}

	return nil
}

// SetupMaintenanceTasks starts the background task that removes expired
// password reset tokens every constants.DBMaintenanceInterval.
func (s *Server) SetupMaintenanceTasks() {
	ticker := time.NewTicker(constants.DBMaintenanceInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.maintenanceStop:
				return
			case <-ticker.C:
				s.runMaintenance()
			}
		}
	}()
}

// runMaintenance performs one maintenance pass.
func (s *Server) runMaintenance() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.MaintenanceTimeout)
	defer cancel()

	count, err := s.services.PasswordReset.CleanupExpired(ctx)
	if err != nil {
		middleware.LogAndContinueOnError(err, "Failed to cleanup expired password reset tokens")
		return
	}
	if count > 0 {
		log.Info().Int64("count", count).Msg("Cleaned up expired password reset tokens")
	}
}

func (s *Server) stopMaintenance() {
	s.maintenanceOnce.Do(func() {
		close(s.maintenanceStop)
	})
}
