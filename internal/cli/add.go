package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/streak/internal/store"
	"github.com/runnerr0/streak/internal/timeutil"
)

// Execute implements the go-flags Commander interface for AddCommand.
func (c *AddCommand) Execute(args []string) error {
	if c.Title == "" {
		return fmt.Errorf("--title is required for add command")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("--duration is required and must be a positive number of minutes")
	}

	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the add logic against a provided store (used by tests).
func (c *AddCommand) executeWithStore(st *store.Store) error {
	e := store.Entry{
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

	added, err := st.Add(e)
	if err != nil {
		return fmt.Errorf("adding entry: %w", err)
	}

	cfg := st.Config()

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"id":            added.ID,
			"date":          added.Date,
			"title":         added.Title,
			"duration":      added.Duration,
			"intensity":     added.Intensity,
			"current_count": cfg.CurrentCount,
			"yearly_goal":   cfg.YearlyGoal,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Added %q on %s (%s, intensity %.1f)\n", added.Title, added.Date, formatMinutes(added.Duration), added.Intensity)
	fmt.Printf("Yearly progress: %d/%d\n", cfg.CurrentCount, cfg.YearlyGoal)
	return nil
}
