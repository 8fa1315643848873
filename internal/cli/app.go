// Package cli provides the CLI application container and Bubble Tea entry
// points.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/atelo/atelo/internal/application/usecase"
	"github.com/atelo/atelo/internal/cli/styles"
	"github.com/atelo/atelo/internal/domain/build"
	"github.com/atelo/atelo/internal/domain/entity"
	"github.com/atelo/atelo/internal/domain/repository"
	"github.com/atelo/atelo/internal/infrastructure/config"
	"github.com/atelo/atelo/internal/infrastructure/extract"
	"github.com/atelo/atelo/internal/infrastructure/persistence/sqlite"
	"github.com/atelo/atelo/internal/layout"
	"github.com/atelo/atelo/internal/logging"
)

// App holds the CLI dependencies. It is built once per invocation and
// passed down explicitly; nothing in it is a package-level singleton.
type App struct {
	Config    *config.Config
	Theme     *styles.Theme
	BuildInfo build.Info

	Offices     repository.OfficeRepository
	Projects    repository.ProjectRepository
	Regulations repository.RegulationRepository
	Workspaces  repository.WorkspaceRepository

	DashboardUC *usecase.ManageDashboardUseCase
	RecordsUC   *usecase.ManageRecordsUseCase
	IngestUC    *usecase.IngestTextUseCase

	db         *sql.DB
	ctx        context.Context
	logCleanup func()
}

// NewApp wires config, logging, the database and the use cases.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("initialize config: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg := mgr.Get()

	logger, logCleanup := newLogger(cfg)
	ctx := logging.WithContext(context.Background(), logger)

	db, err := sqlite.NewConnection(ctx, cfg.Database.Path)
	if err != nil {
		logCleanup()
		return nil, fmt.Errorf("open database: %w", err)
	}

	offices := sqlite.NewOfficeRepository(db)
	projects := sqlite.NewProjectRepository(db)
	regulations := sqlite.NewRegulationRepository(db)
	workspaces := sqlite.NewWorkspaceRepository(db)

	newID := usecase.IDGenerator(uuid.NewString)
	grid := layout.Grid{Cols: cfg.Dashboard.Cols, Rows: cfg.Dashboard.Rows}

	a := &App{
		Config:      cfg,
		Theme:       styles.NewTheme(cfg),
		Offices:     offices,
		Projects:    projects,
		Regulations: regulations,
		Workspaces:  workspaces,
		DashboardUC: usecase.NewManageDashboardUseCase(
			workspaces, grid,
			[]entity.WindowKind{entity.WindowProjectList, entity.WindowRegulationWatch, entity.WindowNotes},
			newID,
		),
		RecordsUC: usecase.NewManageRecordsUseCase(offices, projects, regulations, newID),
		IngestUC: usecase.NewIngestTextUseCase(
			extract.NewKeywordExtractor(),
			offices, projects, regulations,
			newID, cfg.Ingest.MinConfidence,
		),
		db:         db,
		ctx:        ctx,
		logCleanup: logCleanup,
	}

	// External config edits reach long-running commands (the dashboard)
	// through the file watcher. Theme changes repaint on the next refresh
	// tick; the database path and grid shape stay fixed for the session.
	mgr.OnConfigChange(func(fresh *config.Config) {
		*a.Config = *fresh
		*a.Theme = *styles.NewTheme(fresh)
	})
	mgr.Watch()

	return a, nil
}

// newLogger writes to the rotating log file in the XDG state dir so log
// output never tears the TUI. When the state dir is unavailable the logs
// fall to stderr.
func newLogger(cfg *config.Config) (logger zerolog.Logger, cleanup func()) {
	logCfg := logging.Config{
		Level:      logging.ParseLevel(cfg.Logging.Level),
		Format:     cfg.Logging.Format,
		TimeFormat: "15:04:05",
	}

	stateDir, err := config.StateDir()
	if err != nil {
		return logging.New(logCfg, os.Stderr), func() {}
	}

	rotator, err := logging.NewRotator(stateDir,
		cfg.Logging.MaxSizeMB, cfg.Logging.MaxBackups, cfg.Logging.MaxAgeDays)
	if err != nil {
		return logging.New(logCfg, os.Stderr), func() {}
	}

	var w io.Writer = rotator
	return logging.New(logCfg, w), func() { _ = rotator.Close() }
}

// Close releases all resources.
func (a *App) Close() error {
	var err error
	if a.db != nil {
		err = sqlite.Close(a.db)
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return err
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}
