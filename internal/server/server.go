// Package server sets up the HTTP server, router, and all route definitions.
//
// This is the composition root: the one place where the database, the
// services, the handlers, and the middleware get wired together. Everything
// below this package receives its dependencies injected and could be
// assembled differently by a test (and is — the handler tests build their own
// router from the same pieces).
//
// WHY AN HTTP SERVER IN A DESKTOP APP?
// The UI shell talks to this core over loopback HTTP. That keeps the
// boundary between "what the app does" and "what the app looks like" a real
// process boundary: the UI can be swapped or restarted without touching
// credentials, and every operation the UI can perform is an auditable,
// testable endpoint.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/vocabloury/internal/auth"
	"github.com/sakif/vocabloury/internal/handler"
	"github.com/sakif/vocabloury/internal/middleware"
	sqliteRepo "github.com/sakif/vocabloury/internal/repository/sqlite"
	"github.com/sakif/vocabloury/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port      int
	DBPath    string // path to the SQLite database file
	JWTSecret string // signs the short-lived API session tokens
}

// Server owns the router, the database connection, and the dependency graph
// built on top of it. The database is closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server and assembles the whole dependency chain:
//
//	sqlite.DB → services (accounts, sessions, words) → handlers → routes
//
// Each layer only receives what it needs — services get repository
// interfaces, handlers get services, and nothing above the repository layer
// ever sees SQL.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	POST   /api/auth/register  → create an account
//	POST   /api/auth/login     → credentials → API token (+ remember token)
//	POST   /api/auth/remember  → remember token → fresh API token
//	POST   /api/auth/logout    → revoke the remember token
//	GET    /api/me             → profile                [auth]
//	GET    /api/words          → word history           [auth]
//	POST   /api/words          → record a lookup        [auth]
//	DELETE /api/words/{word}   → remove a saved word    [auth]
//	GET    /api/words/count    → dashboard counter      [auth]
//	GET    /healthz            → liveness probe for the UI shell
//
// MIDDLEWARE ORDER MATTERS — it executes in the order added:
//  1. RequestID — tags each request for log correlation
//  2. Recoverer — a panicking handler becomes a 500, not a dead process
//  3. Logger — one structured line per completed request
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	accounts := service.NewAccountService(s.db, auth.NewPasswordService(), s.logger)
	sessions := service.NewSessionService(s.db, s.logger)
	words := service.NewWordsService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(accounts, sessions, tokens, s.logger)
	wordsHandler := handler.NewWordsHandler(words, accounts, s.logger)

	// The UI shell polls this while the core boots
	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		// Public: these are how a session gets opened in the first place
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/remember", authHandler.HandleRemember)
		r.Post("/auth/logout", authHandler.HandleLogout)

		// Everything else requires a live API token
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Get("/me", authHandler.HandleMe)
			r.Get("/words", wordsHandler.HandleList)
			r.Post("/words", wordsHandler.HandleAppend)
			r.Delete("/words/{word}", wordsHandler.HandleDelete)
			r.Get("/words/count", wordsHandler.HandleCount)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// SHUTDOWN ORDER:
//  1. Stop accepting new connections
//  2. Wait for in-flight requests to finish (30s timeout)
//  3. Close the database (flushes the WAL, releases the file lock)
//
// The deferred Close makes step 3 happen even if something panics.
func (s *Server) Start() error {
	defer s.db.Close()

	// Loopback only. This API carries credentials for a desktop app; nothing
	// off this machine has any business reaching it.
	srv := &http.Server{
		Addr:         fmt.Sprintf("127.0.0.1:%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
