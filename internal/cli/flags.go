package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AddCommand — record a new activity log entry.
type AddCommand struct {
	Title       string  `long:"title" description:"Activity title (required)"`
	Description string  `long:"desc" description:"Free-text notes (defaults to an intensity label)"`
	Duration    int     `long:"duration" description:"Duration in minutes (required)"`
	Intensity   float64 `long:"intensity" description:"Intensity score 0.0-5.0" default:"3.0"`
	Date        string  `long:"date" description:"Backdate the entry (YYYY-MM-DD, defaults to today)"`

	globals *GlobalFlags
	version string
}

// EditCommand — update fields of an existing entry.
type EditCommand struct {
	ID          string  `long:"id" description:"Entry ID (required)"`
	Title       string  `long:"title" description:"New title"`
	Description string  `long:"desc" description:"New notes"`
	Duration    int     `long:"duration" description:"New duration in minutes"`
	Intensity   float64 `long:"intensity" description:"New intensity score 0.0-5.0"`
	Date        string  `long:"date" description:"Move the entry to another day (YYYY-MM-DD)"`

	globals *GlobalFlags
	version string
}

// DeleteCommand — remove an entry by ID.
type DeleteCommand struct {
	ID string `long:"id" description:"Entry ID (required)"`

	globals *GlobalFlags
	version string
}

// ListCommand — show the most recent entries.
type ListCommand struct {
	Limit int `long:"limit" description:"Maximum entries to show" default:"10"`

	globals *GlobalFlags
	version string
}

// HistoryCommand — search and sort the full log history.
type HistoryCommand struct {
	Sort  string `long:"sort" description:"Sort by: date | intensity | duration" default:"date"`
	Asc   bool   `long:"asc" description:"Sort ascending (default is descending)"`
	Limit int    `long:"limit" description:"Maximum entries to show" default:"0"`

	globals *GlobalFlags
	version string
}

// HeatmapCommand — render the trailing 4-month activity heatmap.
type HeatmapCommand struct {
	Date string `long:"date" description:"Reference date override (YYYY-MM-DD, defaults to today)"`

	globals *GlobalFlags
	version string
}

// StatusCommand — show goal progress, totals, and sync state.
type StatusCommand struct {
	globals *GlobalFlags
	version string
}

// GoalCommand — view or change the yearly goal.
type GoalCommand struct {
	Set           int  `long:"set" description:"Set a new yearly goal"`
	ResetProgress bool `long:"reset-progress" description:"Zero the displayed yearly counter"`

	globals *GlobalFlags
	version string
}

// ExportCommand — export all entries as CSV.
type ExportCommand struct {
	Output string `long:"output" description:"Write CSV to this file instead of stdout"`

	globals *GlobalFlags
	version string
}

// SyncCommand — manage cloud backup: enable, disable, push, restore.
type SyncCommand struct {
	Enable  bool   `long:"enable" description:"Turn cloud sync on (generates a sync key on first use)"`
	Disable bool   `long:"disable" description:"Turn cloud sync off (the key is kept)"`
	Push    bool   `long:"push" description:"Upload the current state now"`
	Restore string `long:"restore" description:"Replace local data with the backup for this sync key"`
	ShowKey bool   `long:"show-key" description:"Print the sync key"`

	globals *GlobalFlags
	version string
}

// PurgeCommand — delete ALL local entries with safety confirmation.
type PurgeCommand struct {
	All   bool `long:"all" description:"Required flag to confirm purge intent"`
	Force bool `long:"force" description:"Skip safety confirmation prompt"`

	globals *GlobalFlags
	version string
}
