package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/runnerr0/streak/internal/store"
	"github.com/runnerr0/streak/internal/timeutil"
)

// statusJSON is the JSON output structure for the status command.
type statusJSON struct {
	Version      string `json:"version"`
	TotalEntries int    `json:"total_entries"`
	YearlyGoal   int    `json:"yearly_goal"`
	CurrentCount int    `json:"current_count"`
	ProgressPct  float64 `json:"progress_pct"`
	LastEntry    string `json:"last_entry,omitempty"`
	CloudSync    bool   `json:"cloud_sync"`
	SyncKeySet   bool   `json:"sync_key_set"`
}

// Execute implements the go-flags Commander interface for StatusCommand.
func (c *StatusCommand) Execute(args []string) error {
	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st, time.Now())
}

// executeWithStore runs status against a provided store (used by tests).
func (c *StatusCommand) executeWithStore(st *store.Store, now time.Time) error {
	entries := st.All()
	cfg := st.Config()

	pct := 0.0
	if cfg.YearlyGoal > 0 {
		pct = float64(cfg.CurrentCount) / float64(cfg.YearlyGoal) * 100
	}

	if c.globals != nil && c.globals.JSON {
		out := statusJSON{
			Version:      c.version,
			TotalEntries: len(entries),
			YearlyGoal:   cfg.YearlyGoal,
			CurrentCount: cfg.CurrentCount,
			ProgressPct:  pct,
			CloudSync:    cfg.CloudSync,
			SyncKeySet:   cfg.SyncKey != "",
		}
		if len(entries) > 0 {
			out.LastEntry = entries[0].Date
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Println("Streak Status")
	fmt.Println("=============")
	fmt.Printf("Version:       %s\n", c.version)
	fmt.Printf("Entries:       %d\n", len(entries))
	fmt.Printf("Yearly goal:   %d/%d (%.1f%%)\n", cfg.CurrentCount, cfg.YearlyGoal, pct)

	if len(entries) > 0 {
		last := timeutil.FromMillis(entries[0].Timestamp)
		fmt.Printf("Last entry:    %s (%s)\n", entries[0].Title, timeutil.HumanizeRecency(now, last))
	}

	fmt.Println()
	if cfg.CloudSync {
		fmt.Println("Cloud sync:    enabled")
	} else {
		fmt.Println("Cloud sync:    disabled")
	}
	if cfg.SyncKey != "" {
		fmt.Println("Sync key:      set (show with: streak sync --show-key)")
	} else {
		fmt.Println("Sync key:      not set")
	}

	return nil
}
