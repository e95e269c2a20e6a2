package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Add     *AddCommand
	Edit    *EditCommand
	Delete  *DeleteCommand
	List    *ListCommand
	History *HistoryCommand
	Heatmap *HeatmapCommand
	Status  *StatusCommand
	Goal    *GoalCommand
	Export  *ExportCommand
	Sync    *SyncCommand
	Purge   *PurgeCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "streak"
	parser.LongDescription = "Personal activity log with yearly goal tracking, a density heatmap, and optional cloud backup."

	cmds := &commands{
		Add:     &AddCommand{globals: &globals, version: version},
		Edit:    &EditCommand{globals: &globals, version: version},
		Delete:  &DeleteCommand{globals: &globals, version: version},
		List:    &ListCommand{globals: &globals, version: version},
		History: &HistoryCommand{globals: &globals, version: version},
		Heatmap: &HeatmapCommand{globals: &globals, version: version},
		Status:  &StatusCommand{globals: &globals, version: version},
		Goal:    &GoalCommand{globals: &globals, version: version},
		Export:  &ExportCommand{globals: &globals, version: version},
		Sync:    &SyncCommand{globals: &globals, version: version},
		Purge:   &PurgeCommand{globals: &globals, version: version},
	}

	parser.AddCommand("add", "Record a new activity", "Record a new activity log entry.", cmds.Add)
	parser.AddCommand("edit", "Update an existing entry", "Update fields of an existing entry by ID.", cmds.Edit)
	parser.AddCommand("delete", "Remove an entry", "Remove a log entry by ID.", cmds.Delete)
	parser.AddCommand("list", "Show recent entries", "Show the most recent log entries.", cmds.List)
	parser.AddCommand("history", "Search and sort the log history", "Search the full log history by keyword, with sorting.", cmds.History)
	parser.AddCommand("heatmap", "Render the activity heatmap", "Render the trailing 4-month activity density heatmap.", cmds.Heatmap)
	parser.AddCommand("status", "Show goal progress and sync state", "Show yearly goal progress, entry totals, and cloud sync state.", cmds.Status)
	parser.AddCommand("goal", "View or change the yearly goal", "View or change the yearly activity goal.", cmds.Goal)
	parser.AddCommand("export", "Export entries as CSV", "Export all log entries as CSV to stdout or a file.", cmds.Export)
	parser.AddCommand("sync", "Manage cloud backup", "Enable, disable, push, or restore the cloud backup.", cmds.Sync)
	parser.AddCommand("purge", "Delete ALL local entries", "Delete ALL local entries. Destructive operation with safety prompt.", cmds.Purge)

	return parser, &globals, cmds
}

// Run is the main entry point for the streak CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("streak %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
