package cli

import (
	"fmt"
	"os"

	"github.com/runnerr0/streak/internal/store"
)

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the export logic against a provided store (used by tests).
func (c *ExportCommand) executeWithStore(st *store.Store) error {
	csv := st.ExportCSV()

	if c.Output == "" {
		fmt.Print(csv)
		return nil
	}

	if err := os.WriteFile(c.Output, []byte(csv), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	fmt.Printf("Exported %d entries to %s\n", len(st.All()), c.Output)
	return nil
}
