// Package cli wires the dependencies shared by the tabdock commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/tabdock/internal/application/usecase"
	"github.com/bnema/tabdock/internal/cli/styles"
	"github.com/bnema/tabdock/internal/domain/build"
	"github.com/bnema/tabdock/internal/infrastructure/config"
	"github.com/bnema/tabdock/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/tabdock/internal/infrastructure/tracing"
	"github.com/bnema/tabdock/internal/logging"
)

// AppOptions controls how NewApp sets up shared resources.
type AppOptions struct {
	// LogToFile sends logs to the rotated log file only. Interactive commands
	// set it since the terminal belongs to the UI.
	LogToFile bool
}

// App holds CLI dependencies.
type App struct {
	Config        *config.Config
	ConfigManager *config.Manager
	Theme         *styles.Theme
	BuildInfo     build.Info

	// Use cases
	LayoutsUC *usecase.ManageLayoutsUseCase

	db      *sqlite.LazyDB
	tracing *tracing.Provider

	// Context with logger
	ctx        context.Context
	logCleanup func()
}

// NewApp creates a new CLI application with all dependencies. The database is
// opened on first use, so commands that never touch it stay fast.
func NewApp(opts AppOptions) (*App, error) {
	const dataDirPerm = 0o755

	mgr, cfg := loadConfig()

	logLevel := cfg.Logging.Level
	if envLevel := os.Getenv("TABDOCK_LOG_LEVEL"); envLevel != "" {
		logLevel = envLevel
	}
	fileCfg := logging.FileConfig{Enabled: cfg.Logging.EnableFileLog || opts.LogToFile}
	if fileCfg.Enabled {
		logDir, err := config.GetLogDir()
		if err != nil {
			return nil, fmt.Errorf("resolve log dir: %w", err)
		}
		fileCfg.LogDir = logDir
		fileCfg.Compress = true
	}
	logger, logCleanup, err := logging.NewWithFile(
		logging.Config{Level: logging.ParseLevel(logLevel), Format: cfg.Logging.Format, TimeFormat: "15:04:05"},
		fileCfg,
	)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	ctx := logging.WithContext(context.Background(), logger)

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), dataDirPerm); err != nil {
		logCleanup()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	db := sqlite.NewLazyDB(cfg.Database.Path)

	tp, err := tracing.Setup(ctx, cfg.Tracing)
	if err != nil {
		// tracing is optional; keep going without it
		logger.Warn().Err(err).Msg("tracing disabled")
	}

	logger.Debug().Str("db_path", cfg.Database.Path).Msg("app initialized")

	return &App{
		Config:        cfg,
		ConfigManager: mgr,
		Theme:         styles.NewTheme(),
		LayoutsUC:     usecase.NewManageLayoutsUseCase(sqlite.NewLazyLayoutRepository(db)),
		db:            db,
		tracing:       tp,
		ctx:           ctx,
		logCleanup:    logCleanup,
	}, nil
}

// Close releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.tracing != nil {
		errs = append(errs, a.tracing.Shutdown(context.Background()))
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return errors.Join(errs...)
}

// SchemaStatus opens the layout database and reports its migration state.
func (a *App) SchemaStatus(ctx context.Context) (*sqlite.SchemaStatus, error) {
	db, err := a.db.DB(ctx)
	if err != nil {
		return nil, err
	}
	return sqlite.GetSchemaStatus(ctx, db)
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// loadConfig loads configuration from standard locations. The manager is nil
// when the config directory cannot be resolved.
func loadConfig() (*config.Manager, *config.Config) {
	mgr, err := config.NewManager()
	if err != nil {
		cfg := config.DefaultConfig()
		cfg.Database.Path = filepath.Join(os.TempDir(), "tabdock.sqlite")
		return nil, cfg
	}

	if err := mgr.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\nusing default configuration\n", err)
		cfg := config.DefaultConfig()
		if path, pathErr := config.GetDatabaseFile(); pathErr == nil {
			cfg.Database.Path = path
		}
		return mgr, cfg
	}

	return mgr, mgr.Get()
}
