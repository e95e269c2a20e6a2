package cli

import (
	"fmt"

	"github.com/runnerr0/streak/internal/store"
)

// Execute implements the go-flags Commander interface for DeleteCommand.
func (c *DeleteCommand) Execute(args []string) error {
	if c.ID == "" {
		return fmt.Errorf("--id is required for delete command")
	}

	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the delete logic against a provided store (used by tests).
func (c *DeleteCommand) executeWithStore(st *store.Store) error {
	if err := st.Delete(c.ID); err != nil {
		return fmt.Errorf("deleting entry: %w", err)
	}

	cfg := st.Config()
	fmt.Printf("Deleted %s\n", c.ID)
	fmt.Printf("Yearly progress: %d/%d\n", cfg.CurrentCount, cfg.YearlyGoal)
	return nil
}
