// Package server wires the application together: router, middleware, routes,
// and graceful shutdown. It is the composition root — every dependency chain
// (DB → repository → service → handler) is assembled in New, nowhere else.
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
	"github.com/go-chi/cors"

	"github.com/hvaldez/gamestore/internal/auth"
	"github.com/hvaldez/gamestore/internal/config"
	"github.com/hvaldez/gamestore/internal/handler"
	"github.com/hvaldez/gamestore/internal/middleware"
	sqliteRepo "github.com/hvaldez/gamestore/internal/repository/sqlite"
	"github.com/hvaldez/gamestore/internal/service"
)

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New builds the full dependency graph from cfg.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	codec, err := auth.NewTokenCodec(s.cfg.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token codec: %w", err)
	}
	hasher := auth.NewPasswordHasher(s.cfg.BcryptCost)
	requireAuth := auth.RequireAuth(codec)

	authSvc := service.NewAuthService(s.db, s.db, codec, hasher, s.cfg.AccessTTL, s.cfg.RefreshTTL, s.logger)
	userSvc := service.NewUserService(s.db, s.logger)
	gameSvc := service.NewGameService(s.db, s.logger)
	categorySvc := service.NewCategoryService(s.db, s.logger)
	platformSvc := service.NewPlatformService(s.db, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	userHandler := handler.NewUserHandler(userSvc, s.logger)
	gameHandler := handler.NewGameHandler(gameSvc, s.logger)
	categoryHandler := handler.NewCategoryHandler(categorySvc, s.logger)
	platformHandler := handler.NewPlatformHandler(platformSvc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
			r.Post("/refresh", authHandler.HandleRefresh)
			r.With(requireAuth).Post("/logout", authHandler.HandleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/me", userHandler.HandleMe)
			r.Put("/me", userHandler.HandleUpdateMe)
		})

		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.HandleList)
			r.Get("/search", gameHandler.HandleSearch)
			r.Get("/{id}", gameHandler.HandleGetByID)
			r.With(requireAuth).Post("/", gameHandler.HandleCreate)
			r.With(requireAuth).Put("/{id}", gameHandler.HandleUpdate)
			r.With(requireAuth).Delete("/{id}", gameHandler.HandleDelete)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", categoryHandler.HandleList)
			r.Post("/search", categoryHandler.HandleSearch)
			r.Post("/", categoryHandler.HandleCreate)
			r.Put("/{id}", categoryHandler.HandleUpdate)
			r.Delete("/{id}", categoryHandler.HandleDelete)
		})

		r.Route("/platforms", func(r chi.Router) {
			r.Get("/", platformHandler.HandleList)
			r.Get("/search", platformHandler.HandleSearch)
			r.With(requireAuth).Post("/new", platformHandler.HandleCreate)
			r.With(requireAuth).Post("/update", platformHandler.HandleUpdate)
			r.With(requireAuth).Delete("/delete", platformHandler.HandleDeactivate)
		})
	})

	return nil
}

// Handler returns the assembled router, so callers can serve it themselves
// (httptest does this).
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests (30s budget) and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Port),
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
			slog.Int("port", s.cfg.Port),
			slog.String("database", s.cfg.DBPath),
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
