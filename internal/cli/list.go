package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gosuri/uitable"

	"github.com/runnerr0/streak/internal/store"
	"github.com/runnerr0/streak/internal/timeutil"
)

// Execute implements the go-flags Commander interface for ListCommand.
func (c *ListCommand) Execute(args []string) error {
	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st, time.Now())
}

// executeWithStore runs the list logic against a provided store (used by tests).
func (c *ListCommand) executeWithStore(st *store.Store, now time.Time) error {
	entries := st.All()
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No entries yet. Record one with: streak add --title ... --duration ...")
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("WHEN", "TITLE", "DURATION", "INTENSITY", "ID")
	for _, e := range entries {
		when := timeutil.HumanizeRecency(now, timeutil.FromMillis(e.Timestamp))
		level := store.DisplayLevelLabel(store.DisplayLevel(e.Intensity))
		table.AddRow(when, e.Title, formatMinutes(e.Duration), fmt.Sprintf("%.1f (%s)", e.Intensity, level), e.ID)
	}
	fmt.Println(table)
	return nil
}
