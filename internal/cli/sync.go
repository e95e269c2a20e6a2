package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/runnerr0/streak/internal/store"
	"github.com/runnerr0/streak/internal/sync"
)

// Execute implements the go-flags Commander interface for SyncCommand.
func (c *SyncCommand) Execute(args []string) error {
	actions := 0
	for _, set := range []bool{c.Enable, c.Disable, c.Push, c.Restore != "", c.ShowKey} {
		if set {
			actions++
		}
	}
	if actions == 0 {
		return fmt.Errorf("sync requires one of --enable, --disable, --push, --restore, or --show-key")
	}
	if actions > 1 {
		return fmt.Errorf("sync accepts exactly one action flag")
	}

	st, orch, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st, orch)
}

// executeWithStore runs the sync logic against a provided store and
// orchestrator (used by tests).
func (c *SyncCommand) executeWithStore(st *store.Store, orch *sync.Orchestrator) error {
	ctx := context.Background()

	switch {
	case c.Enable:
		key, err := orch.Enable()
		if err != nil {
			return err
		}
		fmt.Println("Cloud sync enabled.")
		fmt.Printf("Sync key: %s\n", key)
		fmt.Println("Keep this key: it is the only way to restore your data on another device.")
		return nil

	case c.Disable:
		if err := orch.Disable(); err != nil {
			return err
		}
		fmt.Println("Cloud sync disabled. Your sync key is kept for re-enabling.")
		return nil

	case c.Push:
		if err := orch.PushNow(ctx); err != nil {
			return fmt.Errorf("upload failed: %w", err)
		}
		fmt.Printf("Uploaded %d entries.\n", len(st.All()))
		return nil

	case c.Restore != "":
		b, err := orch.Restore(ctx, c.Restore)
		if err != nil {
			if errors.Is(err, sync.ErrNotFound) {
				return fmt.Errorf("no backup found for that sync key")
			}
			return fmt.Errorf("restore failed: %w", err)
		}
		cfg := st.Config()
		fmt.Printf("Restored %d entries (backup from %s).\n", len(b.Logs), b.UpdatedAt)
		fmt.Printf("Yearly progress: %d/%d\n", cfg.CurrentCount, cfg.YearlyGoal)
		return nil

	case c.ShowKey:
		cfg := st.Config()
		if cfg.SyncKey == "" {
			return fmt.Errorf("no sync key set; run: streak sync --enable")
		}
		fmt.Println(cfg.SyncKey)
		return nil
	}

	return nil
}
