// Package wire provides dependency injection for the armazem client.
// It creates singleton services with lazy initialization.
package wire

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	cliadapter "github.com/example/armazem/internal/adapters/cli"
	"github.com/example/armazem/internal/adapters/httpapi"
	"github.com/example/armazem/internal/adapters/sqlite"
	"github.com/example/armazem/internal/app"
	"github.com/example/armazem/internal/config"
	"github.com/example/armazem/internal/db"
	"github.com/example/armazem/internal/logging"
	"github.com/example/armazem/internal/ports/primary"
)

var (
	cfg            *config.Config
	logger         *zap.Logger
	backend        *httpapi.Client
	authService    primary.AuthService
	uploadService  primary.UploadService
	summaryService primary.SummaryService
	reportService  primary.ReportService
	once           sync.Once
)

// Config returns the resolved configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// Logger returns the shared logger.
func Logger() *zap.Logger {
	once.Do(initServices)
	return logger
}

// AuthService returns the singleton AuthService instance.
func AuthService() primary.AuthService {
	once.Do(initServices)
	return authService
}

// UploadService returns the singleton UploadService instance.
func UploadService() primary.UploadService {
	once.Do(initServices)
	return uploadService
}

// SummaryService returns the singleton SummaryService instance.
func SummaryService() primary.SummaryService {
	once.Do(initServices)
	return summaryService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	dir, err := config.DataDir()
	if err != nil {
		fatal("failed to resolve data directory: %v", err)
	}

	cfg, err = config.LoadConfig(dir)
	if err != nil {
		fatal("failed to load config: %v", err)
	}

	logger, err = logging.New(cfg.LogLevel, cfg.DataDir)
	if err != nil {
		logger = logging.Nop()
	}

	db.SetDataDir(cfg.DataDir)
	database, err := db.GetDB()
	if err != nil {
		fatal("failed to initialize database: %v", err)
	}

	// Create repository adapters (secondary ports) - sqlite adapters with injected DB
	settingsRepo := sqlite.NewSettingsRepository(database)
	uploadLogRepo := sqlite.NewUploadLogRepository(database)
	store := app.NewSessionStore(settingsRepo)

	backend = httpapi.NewClient(httpapi.Options{
		Origin:    cfg.BackendURL,
		APIPrefix: cfg.APIPrefix,
		Timeout:   cfg.Timeout,
	}, store, logger)

	// Create services (primary ports implementation)
	authService = app.NewAuthService(backend, store, logger)
	uploadService = app.NewUploadService(backend, uploadLogRepo, logger)
	summaryService = app.NewSummaryService(backend)
	reportService = app.NewReportService(backend, logger)
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "armazem: "+format+"\n", args...)
	os.Exit(1)
}

// ============================================================================
// Pages (one per invocation)
// ============================================================================

// Page returns a new list page over def.
func Page[R any](def app.ResourceDef[R]) *app.Page[R] {
	once.Do(initServices)
	return app.NewPage(def, backend, logger)
}

// EquipmentPage returns a new equipment page.
func EquipmentPage() *app.EquipmentPage {
	once.Do(initServices)
	return app.NewEquipmentPage(backend, logger)
}

// Today is the clock used for movement defaults.
func Today() time.Time {
	return time.Now()
}

// ============================================================================
// Adapters
// ============================================================================

// SummaryAdapter returns a new SummaryAdapter writing to stdout.
// Each call creates a new adapter (adapters are stateless translators).
func SummaryAdapter() *cliadapter.SummaryAdapter {
	return SummaryAdapterWithOutput(os.Stdout)
}

// SummaryAdapterWithOutput returns a new SummaryAdapter writing to the given output.
func SummaryAdapterWithOutput(out io.Writer) *cliadapter.SummaryAdapter {
	once.Do(initServices)
	return cliadapter.NewSummaryAdapter(summaryService, out)
}

// ReportAdapterWithOutput returns a new ReportAdapter writing to the given output.
func ReportAdapterWithOutput(out io.Writer) *cliadapter.ReportAdapter {
	once.Do(initServices)
	return cliadapter.NewReportAdapter(reportService, out)
}

// Close flushes the logger and closes the local store, if they were opened.
func Close() {
	if logger != nil {
		_ = logger.Sync()
	}
	_ = db.Close()
}
