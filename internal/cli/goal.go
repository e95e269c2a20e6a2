package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/runnerr0/streak/internal/store"
)

// Execute implements the go-flags Commander interface for GoalCommand.
func (c *GoalCommand) Execute(args []string) error {
	if c.Set < 0 {
		return fmt.Errorf("--set must be a positive goal")
	}

	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the goal logic against a provided store (used by tests).
func (c *GoalCommand) executeWithStore(st *store.Store) error {
	if c.Set > 0 {
		if err := st.SetYearlyGoal(c.Set); err != nil {
			return err
		}
	}

	if c.ResetProgress {
		if err := st.ResetYearlyProgress(); err != nil {
			return err
		}
	}

	cfg := st.Config()

	if c.globals != nil && c.globals.JSON {
		out := map[string]interface{}{
			"yearly_goal":   cfg.YearlyGoal,
			"current_count": cfg.CurrentCount,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	switch {
	case c.Set > 0 && c.ResetProgress:
		fmt.Printf("Goal set to %d, progress reset to 0\n", cfg.YearlyGoal)
	case c.Set > 0:
		fmt.Printf("Goal set to %d (progress: %d)\n", cfg.YearlyGoal, cfg.CurrentCount)
	case c.ResetProgress:
		fmt.Printf("Progress reset to 0 (goal: %d)\n", cfg.YearlyGoal)
	default:
		fmt.Printf("Yearly goal: %d/%d\n", cfg.CurrentCount, cfg.YearlyGoal)
	}
	return nil
}
