package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"weblog-analytics/internal/analyzers"
	internalhttp "weblog-analytics/internal/http"
	"weblog-analytics/internal/models"
	"weblog-analytics/internal/shared/configs"
	"weblog-analytics/internal/shared/filestorages"
	"weblog-analytics/internal/shared/loggers"
	"weblog-analytics/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "weblog-analytics").
		Logger()

	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	defaultFormat, err := models.NewSourceFormatFromString(config.Analysis.DefaultFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize default format: %w", err)
	}

	reportStore := stores.NewReportStore(fileStorage)
	rawUploadStore := stores.NewRawUploadStore(fileStorage)
	analysisService := analyzers.NewAnalysisService(reportStore, rawUploadStore, analyzers.Settings{
		DayBucketCount: config.Analysis.DayBucketCount,
		MaxUploadBytes: config.Analysis.MaxUploadBytes,
		DefaultFormat:  defaultFormat,
	})

	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(analysisService, httpLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:    config,
		appLogger: appLogger,
		server:    server,
	}, nil
}

// Handler exposes the configured router.
func (app *App) Handler() http.Handler {
	return app.server.Handler
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting weblog-analytics service on port %d (log_level=%s, file_storage_root_dir=%s, day_bucket_count=%d, default_format=%s)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Analysis.DayBucketCount,
			app.config.Analysis.DefaultFormat)

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	app.appLogger.Info().Msg("Server stopped")
	return nil
}
