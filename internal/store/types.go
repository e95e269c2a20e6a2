package store

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one recorded activity. JSON field names match the established
// backup format, so existing remote backups restore cleanly.
type Entry struct {
	ID          string  `json:"id"`
	Timestamp   int64   `json:"timestamp"` // epoch milliseconds
	Date        string  `json:"date"`      // YYYY-MM-DD, always derived from Timestamp
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    int     `json:"duration"` // minutes
	Intensity   float64 `json:"intensity"`
}

// Config is the singleton application config record.
type Config struct {
	YearlyGoal   int    `json:"yearlyGoal"`
	CurrentCount int    `json:"currentCount"`
	CloudSync    bool   `json:"cloudSync"`
	SyncKey      string `json:"syncKey"`
	Version      string `json:"version"`
}

const (
	// DefaultYearlyGoal is the seed goal for a fresh install.
	DefaultYearlyGoal = 150

	// ConfigVersion tags the config record. Informational only.
	ConfigVersion = "1.1.0"
)

func defaultConfig() Config {
	return Config{
		YearlyGoal: DefaultYearlyGoal,
		Version:    ConfigVersion,
	}
}

// decodeLogs parses a stored log collection, falling back to an empty
// collection when the blob is absent or not shaped like a log list.
func decodeLogs(data []byte, ok bool) []Entry {
	if !ok {
		return []Entry{}
	}
	var logs []Entry
	if err := json.Unmarshal(data, &logs); err != nil || logs == nil {
		return []Entry{}
	}
	return logs
}

// decodeConfig parses the stored config record over defaults, so a partial
// or malformed blob still yields a usable Config.
func decodeConfig(data []byte, ok bool) Config {
	cfg := defaultConfig()
	if !ok {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return defaultConfig()
	}
	if cfg.YearlyGoal <= 0 {
		cfg.YearlyGoal = DefaultYearlyGoal
	}
	if cfg.Version == "" {
		cfg.Version = ConfigVersion
	}
	return cfg
}

// syntheticPrefix marks a description generated from the intensity score
// rather than typed by the user. Kept byte-identical to the established
// format so synthetic descriptions from old backups are still recognized.
const syntheticPrefix = "强度:"

// SyntheticDescription builds the default description for an entry without
// user notes.
func SyntheticDescription(intensity float64) string {
	return fmt.Sprintf("%s %.1f/5.0", syntheticPrefix, intensity)
}

// IsSyntheticDescription reports whether s is a generated intensity label
// rather than user text. Synthetic descriptions are excluded from free-text
// search.
func IsSyntheticDescription(s string) bool {
	return strings.HasPrefix(s, syntheticPrefix)
}

// DisplayLevel classifies an intensity score into the 4-level scale used
// for display. Purely presentational; no computation depends on it.
func DisplayLevel(intensity float64) int {
	switch {
	case intensity >= 4.7:
		return 4
	case intensity >= 3.9:
		return 3
	case intensity >= 2.6:
		return 2
	default:
		return 1
	}
}

// DisplayLevelLabel names a display level for list output.
func DisplayLevelLabel(level int) string {
	switch level {
	case 4:
		return "peak"
	case 3:
		return "strong"
	case 2:
		return "steady"
	default:
		return "light"
	}
}
