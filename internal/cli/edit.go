package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/streak/internal/store"
	"github.com/runnerr0/streak/internal/timeutil"
)

// Execute implements the go-flags Commander interface for EditCommand.
func (c *EditCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for edit command")
	}

	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the edit logic against a provided store (used by tests).
func (c *EditCommand) executeWithStore(st *store.Store) error {
	e := store.Entry{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Duration:    c.Duration,
		Intensity:   c.Intensity,
	}

	if c.Date != "" {
		day, err := parseDate(c.Date)
		if err != nil {
			return err
		}
		e.Timestamp = timeutil.ToMillis(day)
	}

	updated, err := st.Update(e)
	if err != nil {
		return err
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(updated)
	}

	fmt.Printf("Updated %s: %q on %s (%s, intensity %.1f)\n",
		updated.ID, updated.Title, updated.Date, formatMinutes(updated.Duration), updated.Intensity)
	return nil
}
