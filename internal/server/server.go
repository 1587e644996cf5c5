// Package server is the composition root: it opens the database, wires
// repositories into services and services into handlers, defines every
// route, and owns the graceful-shutdown lifecycle.
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

	"github.com/markwat1/feeding/internal/handler"
	"github.com/markwat1/feeding/internal/middleware"
	sqliteRepo "github.com/markwat1/feeding/internal/repository/sqlite"
	"github.com/markwat1/feeding/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port   int
	DBPath string
}

// Server owns the router and the database connection; the connection is
// closed during shutdown after in-flight requests drain.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, runs pending migrations, and wires every route.
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
	s.setupRoutes()
	return s, nil
}

// Router exposes the configured router, mainly for handler tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database connection.
func (s *Server) Close() error {
	return s.db.Close()
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	s.router.Get("/health", handler.HandleHealth)

	pets := handler.NewPetHandler(service.NewPetService(s.db.Pets(), s.logger))
	foodTypes := handler.NewFoodTypeHandler(service.NewFoodTypeService(s.db.FoodTypes(), s.logger))
	schedules := handler.NewFeedingScheduleHandler(service.NewFeedingScheduleService(s.db.FeedingSchedules(), s.logger))
	feedings := handler.NewFeedingRecordHandler(service.NewFeedingRecordService(s.db.FeedingRecords(), s.logger))
	weights := handler.NewWeightRecordHandler(service.NewWeightRecordService(s.db.WeightRecords(), s.logger))
	maintenance := handler.NewMaintenanceRecordHandler(service.NewMaintenanceRecordService(s.db.MaintenanceRecords(), s.logger))

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/pets", func(r chi.Router) {
			r.Get("/", pets.HandleList)
			r.Post("/", pets.HandleCreate)
			r.Get("/{id}", pets.HandleGet)
			r.Put("/{id}", pets.HandleUpdate)
			r.Delete("/{id}", pets.HandleDelete)
		})

		r.Route("/food-types", func(r chi.Router) {
			r.Get("/", foodTypes.HandleList)
			r.Post("/", foodTypes.HandleCreate)
			r.Get("/{id}", foodTypes.HandleGet)
			r.Put("/{id}", foodTypes.HandleUpdate)
			r.Delete("/{id}", foodTypes.HandleDelete)
		})

		r.Route("/feeding-schedules", func(r chi.Router) {
			r.Get("/", schedules.HandleList)
			r.Post("/", schedules.HandleCreate)
			r.Get("/{id}", schedules.HandleGet)
			r.Put("/{id}", schedules.HandleUpdate)
			r.Delete("/{id}", schedules.HandleDelete)
		})

		r.Route("/feeding-records", func(r chi.Router) {
			r.Get("/", feedings.HandleList)
			r.Post("/", feedings.HandleCreate)
			// Fixed paths must register before the {id} wildcard.
			r.Get("/stats", feedings.HandleStats)
			r.Get("/export", feedings.HandleExport)
			r.Get("/{id}", feedings.HandleGet)
			r.Put("/{id}", feedings.HandleUpdate)
			r.Delete("/{id}", feedings.HandleDelete)
		})

		r.Route("/weight-records", func(r chi.Router) {
			r.Get("/", weights.HandleList)
			r.Post("/", weights.HandleCreate)
			r.Get("/latest/{petId}", weights.HandleLatest)
			r.Get("/{id}", weights.HandleGet)
			r.Put("/{id}", weights.HandleUpdate)
			r.Delete("/{id}", weights.HandleDelete)
		})

		r.Route("/maintenance-records", func(r chi.Router) {
			r.Get("/", maintenance.HandleList)
			r.Post("/", maintenance.HandleCreate)
			r.Get("/recent", maintenance.HandleRecent)
			r.Get("/stats", maintenance.HandleStats)
			r.Get("/export", maintenance.HandleExport)
			r.Get("/{id}", maintenance.HandleGet)
			r.Put("/{id}", maintenance.HandleUpdate)
			r.Delete("/{id}", maintenance.HandleDelete)
		})
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests for up
// to 30 seconds, close the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
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
			slog.Int("port", s.config.Port),
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
