package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dvoss/gitdeck/internal/adapters/git"
	"github.com/dvoss/gitdeck/internal/adapters/notification"
	"github.com/dvoss/gitdeck/internal/adapters/storage"
	"github.com/dvoss/gitdeck/internal/config"
	"github.com/dvoss/gitdeck/internal/domain"
	"github.com/dvoss/gitdeck/internal/logging"
	"github.com/dvoss/gitdeck/internal/ports"
	"github.com/dvoss/gitdeck/internal/services"
)

// appDeps groups all service-layer dependencies initialized at startup.
type appDeps struct {
	storage      ports.Storage
	history      *services.HistoryService
	repositories *services.RepositoryService
	settings     *services.SettingsService
	inspector    ports.WorktreeInspector
	notifier     *notification.Notifier
	config       *config.Config
	log          logging.Logger
}

// app holds all initialized service dependencies.
// Populated by initializeServices() and accessible to all commands.
var app appDeps

// initializeServices sets up all the required services and adapters.
func initializeServices() error {
	// Load configuration
	var err error
	app.config, err = config.Load()
	if err != nil {
		// If config loading fails, use defaults
		app.config = config.DefaultConfig()
		if home, homeErr := os.UserHomeDir(); homeErr == nil {
			app.config.Storage.DataDir = filepath.Join(home, ".gitdeck")
		}
	}

	// Initialize logger
	level := logging.ParseLevel(app.config.Log.Level)
	if verbose {
		level = slog.LevelDebug
	}
	if app.config.Log.Format == "json" {
		app.log = logging.NewJSON(os.Stderr, level)
	} else {
		app.log = logging.NewText(os.Stderr, level)
	}

	// Initialize notifier
	app.notifier = notification.New(&app.config.Notifications)

	// Determine database path
	if dbPath == "" {
		dbPath = config.GetDBPath(app.config)
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// Initialize storage
	app.storage, err = storage.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize git adapters
	runner := git.NewExecRunner(app.config.Git.Binary)
	extractor := git.NewExtractor(runner)
	app.inspector = git.NewDetector()

	// Initialize services
	app.history = services.NewHistoryService(app.storage, extractor, app.log)
	app.history.SetBatchSize(app.config.Scan.BatchSize)
	app.repositories = services.NewRepositoryService(app.storage, app.inspector, app.log)
	app.settings = services.NewSettingsService(app.storage)

	return nil
}

// cleanupServices closes all resources.
func cleanupServices() error {
	if app.storage != nil {
		return app.storage.Close()
	}
	return nil
}

// setupSignalHandler sets up a context that cancels on interrupt signals.
func setupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	return ctx
}

// resolveRepository finds a tracked repository by ID or (fuzzy) name.
func resolveRepository(ctx context.Context, ref string) (*domain.Repository, error) {
	repo, err := app.repositories.Resolve(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve repository %q: %w", ref, err)
	}
	return repo, nil
}
