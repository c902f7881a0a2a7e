package app

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"admissioncli/internal/config"
	"admissioncli/internal/errors"
	"admissioncli/internal/infrastructure"
	customMiddleware "admissioncli/internal/middleware"
	"admissioncli/internal/services"
	handlers "admissioncli/internal/transport/http"
	"admissioncli/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	AdmissionService *services.AdmissionService
	HealthService    *services.HealthService
	ErrorHandler     *errors.ErrorHandler
	Logger           *slog.Logger
	OTelProviders    *infrastructure.OTelProviders
}

// NewApplication creates a new application instance with dependency injection.
// A nil cfg loads configuration from file and environment.
func NewApplication(cfg *config.Config) (*Application, error) {
	if cfg == nil {
		loaded, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		cfg = loaded
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version),
		slog.String("build_time", contracts.BuildTime),
		slog.String("git_commit", contracts.GitCommit))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	app := &Application{
		Config:        cfg,
		Logger:        logger,
		OTelProviders: otelProviders,
		ErrorHandler:  errors.NewErrorHandler(logger, false),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	if err := app.setupRouter(); err != nil {
		return nil, fmt.Errorf("failed to set up router: %w", err)
	}

	app.createServer()

	return app, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	metrics, err := infrastructure.NewPipelineMetrics(infrastructure.Meter())
	if err != nil {
		return fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	a.AdmissionService = services.NewAdmissionService(a.Config, metrics, a.Logger)
	a.HealthService = services.NewHealthService(contracts.Version, a.Logger)
	return nil
}

// setupRouter configures the chi router.
// Ordering: RequestID, RealIP, StripSlashes, logger, recovery, secure headers, OTel.
func (a *Application) setupRouter() error {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.Use(customMiddleware.StripSlashes)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(errors.RecoveryMiddleware(a.ErrorHandler))
	r.Use(customMiddleware.DefaultSecureHeaders().Handler)

	otelMiddleware, err := customMiddleware.NewOTelMiddleware(infrastructure.Tracer(), infrastructure.Meter(), a.Logger)
	if err != nil {
		return err
	}
	r.Use(otelMiddleware.Handler)

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	if a.OTelProviders != nil && a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
	return nil
}

// setupAPIRoutes registers the /api tree
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Get("/health", healthHandler.HealthCheck)
		r.Get("/health/live", healthHandler.LivenessCheck)
		r.Get("/version", healthHandler.Version)

		r.Group(func(r chi.Router) {
			if a.Config.Security.EnableRateLimit {
				r.Use(customMiddleware.NewRateLimiter(
					a.Config.Security.RPS,
					a.Config.Security.Burst,
					a.Logger,
				).Handler)
			}
			r.Use(customMiddleware.ContentTypeValidator("multipart/form-data"))

			admissionHandler := handlers.NewAdmissionHandler(
				a.AdmissionService,
				a.Config.Upload.MaxFileSize,
				a.Logger,
				a.ErrorHandler,
			)
			r.Mount("/admissions", admissionHandler.Routes())
		})
	})
}

func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:      a.Router,
		ReadTimeout:  a.Config.Server.ReadTimeout,
		WriteTimeout: a.Config.Server.WriteTimeout,
		IdleTimeout:  a.Config.Server.IdleTimeout,
	}
}

// Start serves HTTP until ctx is cancelled or the server fails, then shuts
// everything down.
func (a *Application) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Starting HTTP server",
			slog.String("address", a.Server.Addr),
			slog.String("level", a.Config.Logging.Level))

		if err := a.Server.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return infrastructure.CloseLogFile()
}

// Run runs the application until SIGINT or SIGTERM
func (a *Application) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return a.Start(ctx)
}
