package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/vess/tock/internal/config"
	"github.com/vess/tock/internal/db"
	"github.com/vess/tock/internal/model"
	"github.com/vess/tock/internal/notify"
	"github.com/vess/tock/internal/sessionlog"
	"github.com/vess/tock/internal/timer"
)

// App holds the application state and dependencies
type App struct {
	Config   *config.Config
	DB       *db.DB
	Timers   *timer.Engine
	Logger   *sessionlog.Builder
	Notifier *notify.Notifier
	lockFile *flock.Flock
}

// New creates a new application instance: config, single-instance lock,
// database, and the in-memory engines. The daily reset runs once on
// startup before any view loads.
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		cfg = config.Load(config.DefaultPath())
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		Timers:   timer.NewEngine(),
		Logger:   sessionlog.NewBuilder(),
		Notifier: notify.NewNotifier(cfg.Notifications),
	}

	// Single instance only: two writers against one widget state invite
	// duplicate logs.
	if err := app.acquireLock(); err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath())
	if err != nil {
		app.releaseLock()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	now := time.Now()
	changed, err := database.ResetCompletionsIfNewDay(now)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to apply daily reset: %w", err)
	}
	if changed {
		app.Notifier.SendNewDay(app.dueCount(now))
	}

	return app, nil
}

// dueCount counts goal tasks due today, for the new-day notification
func (a *App) dueCount(now time.Time) int {
	tasks, err := a.DB.GetTasks(model.CategoryGoals)
	if err != nil {
		return 0
	}
	count := 0
	for _, t := range tasks {
		if t.IsDueOn(now) {
			count++
		}
	}
	return count
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.Config.DataDir, "tock.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of tock is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
