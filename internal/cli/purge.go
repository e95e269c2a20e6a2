package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/runnerr0/streak/internal/store"
)

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	// Confirmation prompt unless --force
	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete ALL local entries.")
		fmt.Println("  - Every recorded activity")
		fmt.Println("  - The yearly progress counter")
		fmt.Println()
		fmt.Println("Your yearly goal and sync key are kept. If cloud sync is enabled,")
		fmt.Println("the empty state is uploaded and replaces the remote backup.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(os.Stdin)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
	}

	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the purge logic against a provided store (used by tests).
func (c *PurgeCommand) executeWithStore(st *store.Store) error {
	if err := st.ClearAll(); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}

	fmt.Println("Purged all entries. The log is empty.")
	return nil
}
