package sync

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/runnerr0/streak/internal/store"
)

// snapshot is one pending upload: the full state at the moment a mutation
// completed. Uploads are self-contained, so whichever completes last fully
// supersedes the others.
type snapshot struct {
	logs []store.Entry
	cfg  store.Config
}

// Orchestrator couples store mutations to background uploads. It implements
// store.Notifier; the mutating call never waits on the network, and a
// failed upload is never retried or rolled back.
type Orchestrator struct {
	client *Client
	store  *store.Store
	logger *slog.Logger

	pending chan snapshot
	done    chan struct{}
}

// NewOrchestrator starts the upload worker. Callers must Close it to drain
// the final pending upload.
func NewOrchestrator(client *Client, st *store.Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Orchestrator{
		client:  client,
		store:   st,
		logger:  logger,
		pending: make(chan snapshot, 1),
		done:    make(chan struct{}),
	}
	go o.run()
	return o
}

// StateChanged receives a mutation snapshot from the store. When cloud sync
// is off or no key is set, nothing happens. Otherwise the snapshot is
// queued for the worker; if an older snapshot is still waiting it is
// dropped, since the newer one fully supersedes it.
func (o *Orchestrator) StateChanged(logs []store.Entry, cfg store.Config) {
	if !cfg.CloudSync || cfg.SyncKey == "" {
		return
	}

	snap := snapshot{logs: logs, cfg: cfg}
	for {
		select {
		case o.pending <- snap:
			return
		default:
			// Displace the stale pending snapshot.
			select {
			case <-o.pending:
			default:
			}
		}
	}
}

func (o *Orchestrator) run() {
	defer close(o.done)
	for snap := range o.pending {
		o.client.SilentUpload(snap.cfg.SyncKey, snap.logs, snap.cfg)
	}
}

// Close stops accepting sync requests and waits for the worker to finish
// the upload in flight, if any.
func (o *Orchestrator) Close() {
	close(o.pending)
	<-o.done
}

// Enable turns cloud sync on. An existing key is kept — keys are never
// regenerated for a live association — otherwise a fresh one is generated.
// Persisting the toggle triggers an upload of the full local state through
// the normal notification path.
func (o *Orchestrator) Enable() (string, error) {
	cfg := o.store.Config()
	key := cfg.SyncKey
	if key == "" {
		key = GenerateSyncKey()
	}
	if err := o.store.SetSync(true, key); err != nil {
		return "", fmt.Errorf("enable cloud sync: %w", err)
	}
	return key, nil
}

// Disable turns cloud sync off, keeping the key for later re-enabling.
func (o *Orchestrator) Disable() error {
	cfg := o.store.Config()
	if err := o.store.SetSync(false, cfg.SyncKey); err != nil {
		return fmt.Errorf("disable cloud sync: %w", err)
	}
	return nil
}

// PushNow uploads the current state synchronously. Unlike the background
// path, failures are surfaced to the caller.
func (o *Orchestrator) PushNow(ctx context.Context) error {
	cfg := o.store.Config()
	if cfg.SyncKey == "" {
		return fmt.Errorf("cloud sync is not set up: no sync key")
	}
	return o.client.Upload(ctx, cfg.SyncKey, o.store.All(), cfg)
}

// Restore downloads the backup for key and wholesale-replaces local state
// with it. On any failure — including ErrNotFound — local state is left
// untouched. This is the one user-facing blocking sync operation.
func (o *Orchestrator) Restore(ctx context.Context, key string) (*Backup, error) {
	b, err := o.client.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	if err := o.store.RestoreSnapshot(b.Logs, b.Config.YearlyGoal, key); err != nil {
		return nil, fmt.Errorf("applying restored backup: %w", err)
	}
	return b, nil
}
