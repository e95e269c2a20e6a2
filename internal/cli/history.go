package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/gosuri/uitable"

	"github.com/runnerr0/streak/internal/store"
)

// Execute implements the go-flags Commander interface for HistoryCommand.
func (c *HistoryCommand) Execute(args []string) error {
	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st, args)
}

// executeWithStore runs the history logic against a provided store (used by tests).
// Positional args form the search query.
func (c *HistoryCommand) executeWithStore(st *store.Store, args []string) error {
	query := strings.Join(args, " ")

	var by store.SortField
	switch c.Sort {
	case "", "date":
		by = store.SortByDate
	case "intensity":
		by = store.SortByIntensity
	case "duration":
		by = store.SortByDuration
	default:
		return fmt.Errorf("unknown sort field %q (use date, intensity, or duration)", c.Sort)
	}

	entries := st.Search(query)
	store.Sort(entries, by, c.Asc)
	if c.Limit > 0 && len(entries) > c.Limit {
		entries = entries[:c.Limit]
	}

	if c.globals != nil && c.globals.JSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		if query != "" {
			fmt.Printf("No entries match %q\n", query)
		} else {
			fmt.Println("No entries yet.")
		}
		return nil
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.AddRow("DATE", "TITLE", "DESCRIPTION", "DURATION", "INTENSITY")
	for _, e := range entries {
		table.AddRow(e.Date, e.Title, e.Description, formatMinutes(e.Duration), fmt.Sprintf("%.1f", e.Intensity))
	}
	fmt.Println(table)

	word := "entries"
	if len(entries) == 1 {
		word = "entry"
	}
	if query != "" {
		fmt.Printf("\n%d %s matching %q\n", len(entries), word, query)
	} else {
		fmt.Printf("\n%d %s\n", len(entries), word)
	}
	return nil
}
