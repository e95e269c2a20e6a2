package cli

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/runnerr0/streak/internal/config"
	"github.com/runnerr0/streak/internal/kv"
	"github.com/runnerr0/streak/internal/store"
	"github.com/runnerr0/streak/internal/sync"
)

// loadConfig resolves the config file from --config or the default path,
// creating a default file on first run.
func loadConfig(globals *GlobalFlags) (*config.Config, error) {
	if globals != nil && globals.Config != "" {
		return config.LoadOrCreateAt(globals.Config)
	}
	return config.LoadOrCreate()
}

// newLogger builds the process logger from config, with --verbose forcing
// debug level.
func newLogger(cfg *config.Config, globals *GlobalFlags) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if globals != nil && globals.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openKV opens the key-value backend named by the storage config. The
// returned closer is a no-op for backends without one.
func openKV(cfg *config.Config) (kv.Store, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case "memory":
		return kv.NewMemory(), noop, nil

	case "sqlite":
		dir, err := config.ExpandPath(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create data directory: %w", err)
		}
		s, err := kv.OpenSQLite(filepath.Join(dir, cfg.Storage.SQLiteFile))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	case "disk", "":
		dir, err := config.ExpandPath(cfg.Storage.Path)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewDisk(dir), noop, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openStore loads config, opens the configured backend, and wires the
// store with its sync orchestrator. The returned closer drains any pending
// upload and releases the backend.
func openStore(globals *GlobalFlags) (*store.Store, *sync.Orchestrator, func() error, error) {
	cfg, err := loadConfig(globals)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(cfg, globals)

	backend, closeKV, err := openKV(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening storage: %w", err)
	}

	st := store.New(backend)

	client := sync.NewClient(
		cfg.Remote.URL,
		cfg.Remote.APIKey,
		time.Duration(cfg.Remote.TimeoutSeconds)*time.Second,
		logger,
	)
	orch := sync.NewOrchestrator(client, st, logger)
	st.SetNotifier(orch)

	closer := func() error {
		orch.Close()
		return closeKV()
	}
	return st, orch, closer, nil
}

// parseDate parses a YYYY-MM-DD flag value into the start of that local day.
func parseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (use YYYY-MM-DD)", s)
	}
	return t, nil
}

// formatMinutes renders a duration in minutes as "45m" or "1h30m".
func formatMinutes(min int) string {
	if min < 60 {
		return fmt.Sprintf("%dm", min)
	}
	if min%60 == 0 {
		return fmt.Sprintf("%dh", min/60)
	}
	return fmt.Sprintf("%dh%dm", min/60, min%60)
}
