// Package heatmap turns per-day activity counts into the weekday-by-week
// density grid shown on the dashboard, covering the trailing four months.
package heatmap

import (
	"time"

	"github.com/runnerr0/streak/internal/timeutil"
)

// MaxLevel is the saturation cap for cell density levels.
const MaxLevel = 4

// windowMonths is how far the grid reaches back from the reference date.
const windowMonths = 4

// Cell is a single day in the grid. Padding cells inserted to keep all rows
// the same length carry an empty Date with Count and Level zero.
type Cell struct {
	Date    string // YYYY-MM-DD, "" for padding
	Count   int
	Level   int // 0..4
	Weekday int // Monday=0 .. Sunday=6
}

// MonthLabel marks the week column where a month first appears, for axis
// annotation alongside the grid.
type MonthLabel struct {
	Label string
	Month time.Month
	Week  int // 0-based week column index
}

// LevelFor classifies a day's count into a density level, saturating at
// MaxLevel.
func LevelFor(count int) int {
	if count <= 0 {
		return 0
	}
	if count > MaxLevel {
		return MaxLevel
	}
	return count
}

// gridStart returns the Monday-aligned start of the window ending at ref:
// four calendar months back, then the Monday on or before that day.
func gridStart(ref time.Time) time.Time {
	raw := timeutil.StartOfDay(ref).AddDate(0, -windowMonths, 0)
	return timeutil.MondayOnOrBefore(raw)
}

// BuildGrid produces exactly 7 rows, one per weekday Monday..Sunday, each
// holding one cell per week in chronological order. The window runs from
// the Monday on or before ref-4mo through ref inclusive; the grid never
// extends past ref, so the reference date is always the last populated
// cell. counts maps YYYY-MM-DD date strings to per-day event counts.
func BuildGrid(ref time.Time, counts map[string]int) [][]Cell {
	end := timeutil.StartOfDay(ref)

	// Enumerate every day in the window and split into weeks. A week
	// closes when a Sunday is appended; the trailing in-progress week
	// stays short.
	var weeks [][]Cell
	var week []Cell
	for d := gridStart(ref); !d.After(end); d = d.AddDate(0, 0, 1) {
		date := timeutil.FormatDate(d)
		c := counts[date]
		week = append(week, Cell{
			Date:    date,
			Count:   c,
			Level:   LevelFor(c),
			Weekday: timeutil.WeekdayIndex(d),
		})
		if timeutil.WeekdayIndex(d) == 6 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		weeks = append(weeks, week)
	}

	// Transpose into weekday rows, padding the partial first/last weeks
	// so every row has one cell per week.
	rows := make([][]Cell, 7)
	for wd := 0; wd < 7; wd++ {
		rows[wd] = make([]Cell, 0, len(weeks))
	}
	for _, w := range weeks {
		for wd := 0; wd < 7; wd++ {
			cell := Cell{Weekday: wd}
			for _, day := range w {
				if day.Weekday == wd {
					cell = day
					break
				}
			}
			rows[wd] = append(rows[wd], cell)
		}
	}
	return rows
}

// MonthLabels walks week-by-week over the same Monday-aligned window as
// BuildGrid and records the week column where each month first appears.
// Labels stay index-aligned with the grid's week columns for the same ref.
func MonthLabels(ref time.Time) []MonthLabel {
	end := timeutil.StartOfDay(ref)

	var labels []MonthLabel
	seen := make(map[time.Month]bool)
	week := 0
	for d := gridStart(ref); !d.After(end); d = d.AddDate(0, 0, 7) {
		if m := d.Month(); !seen[m] {
			seen[m] = true
			labels = append(labels, MonthLabel{
				Label: d.Format("Jan"),
				Month: m,
				Week:  week,
			})
		}
		week++
	}
	return labels
}
