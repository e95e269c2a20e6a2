package heatmap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/streak/internal/timeutil"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{-3, 0},
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 3},
		{4, 4},
		{9, 4},
		{1000, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelFor(tt.count), "count=%d", tt.count)
	}
}

func TestBuildGrid_Shape(t *testing.T) {
	ref := time.Date(2026, time.August, 30, 15, 0, 0, 0, time.Local)
	rows := BuildGrid(ref, nil)

	require.Len(t, rows, 7)
	for wd, row := range rows {
		assert.Len(t, row, len(rows[0]), "row %d length differs", wd)
		for _, c := range row {
			assert.Equal(t, wd, c.Weekday)
		}
	}
}

func TestBuildGrid_EmptyCountsAllLevelZero(t *testing.T) {
	ref := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.Local)
	for _, row := range BuildGrid(ref, map[string]int{}) {
		for _, c := range row {
			assert.Zero(t, c.Level)
			assert.Zero(t, c.Count)
		}
	}
}

// The reference date must always be the last populated cell, never pushed
// out or followed by populated cells from the rest of its week.
func TestBuildGrid_ReferenceDateIsLastPopulatedCell(t *testing.T) {
	// Try every weekday as reference.
	base := time.Date(2026, time.August, 24, 0, 0, 0, 0, time.Local) // a Monday
	for i := 0; i < 7; i++ {
		ref := base.AddDate(0, 0, i)
		refDate := timeutil.FormatDate(ref)
		rows := BuildGrid(ref, map[string]int{refDate: 2})

		var last Cell
		for _, row := range rows {
			for _, c := range row {
				if c.Date != "" && c.Date > last.Date {
					last = c
				}
			}
		}
		require.Equal(t, refDate, last.Date, "weekday offset %d", i)
		assert.Equal(t, 2, last.Count)
		assert.Equal(t, 2, last.Level)
	}
}

func TestBuildGrid_CountsAndSaturation(t *testing.T) {
	ref := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.Local)
	day := timeutil.FormatDate(ref.AddDate(0, 0, -10))
	rows := BuildGrid(ref, map[string]int{day: 7})

	found := false
	for _, row := range rows {
		for _, c := range row {
			if c.Date == day {
				found = true
				assert.Equal(t, 7, c.Count)
				assert.Equal(t, MaxLevel, c.Level)
			}
		}
	}
	assert.True(t, found, "day %s not present in grid", day)
}

func TestBuildGrid_StartsOnMonday(t *testing.T) {
	ref := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.Local)
	rows := BuildGrid(ref, nil)

	// The first column's Monday cell must be populated: the window start is
	// Monday-aligned, so no leading padding exists on the Monday row.
	require.NotEmpty(t, rows[0])
	first := rows[0][0]
	require.NotEmpty(t, first.Date)

	d, err := time.ParseInLocation("2006-01-02", first.Date, time.Local)
	require.NoError(t, err)
	assert.Equal(t, time.Monday, d.Weekday())

	// And it is on or before ref minus four months.
	raw := ref.AddDate(0, -4, 0)
	assert.False(t, d.After(raw))
	assert.True(t, raw.Sub(d) < 7*24*time.Hour)
}

func TestBuildGrid_TrailingWeekPadded(t *testing.T) {
	// Reference on a Wednesday: Thu..Sun of the final week are padding.
	ref := time.Date(2026, time.August, 26, 0, 0, 0, 0, time.Local)
	rows := BuildGrid(ref, nil)

	lastCol := len(rows[0]) - 1
	for wd := 0; wd < 7; wd++ {
		c := rows[wd][lastCol]
		if wd <= 2 { // Mon, Tue, Wed populated
			assert.NotEmpty(t, c.Date, "weekday %d", wd)
		} else {
			assert.Empty(t, c.Date, "weekday %d", wd)
			assert.Zero(t, c.Count)
			assert.Zero(t, c.Level)
		}
	}
}

func TestMonthLabels_AlignedWithGrid(t *testing.T) {
	ref := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.Local)
	rows := BuildGrid(ref, nil)
	labels := MonthLabels(ref)

	// Five distinct months in a four-month window (Apr..Aug here).
	require.Len(t, labels, 5)

	// First label sits at week 0 and matches the window start's month.
	assert.Equal(t, 0, labels[0].Week)

	seen := make(map[time.Month]int)
	for i, l := range labels {
		_, dup := seen[l.Month]
		require.False(t, dup, "month %v recorded twice", l.Month)
		seen[l.Month] = i

		// Each label's week index must be a valid grid column whose
		// Monday cell belongs to that month.
		require.Less(t, l.Week, len(rows[0]))
		monday := rows[0][l.Week]
		require.NotEmpty(t, monday.Date)
		d, err := time.ParseInLocation("2006-01-02", monday.Date, time.Local)
		require.NoError(t, err)
		assert.Equal(t, l.Month, d.Month())
		assert.Equal(t, d.Format("Jan"), l.Label)
	}

	// Labels are in chronological week order.
	for i := 1; i < len(labels); i++ {
		assert.Greater(t, labels[i].Week, labels[i-1].Week)
	}
}
