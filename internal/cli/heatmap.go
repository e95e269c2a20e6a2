package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/runnerr0/streak/internal/heatmap"
	"github.com/runnerr0/streak/internal/store"
)

// weekday labels for the left axis, Monday-first.
var weekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// levelPainters maps density levels 1..4 to their cell color.
var levelPainters = [heatmap.MaxLevel + 1]*color.Color{
	nil, // level 0 renders as a plain dot
	color.New(color.FgGreen, color.Faint),
	color.New(color.FgGreen),
	color.New(color.FgHiGreen),
	color.New(color.FgHiGreen, color.Bold),
}

// Execute implements the go-flags Commander interface for HeatmapCommand.
func (c *HeatmapCommand) Execute(args []string) error {
	st, _, closer, err := openStore(c.globals)
	if err != nil {
		return err
	}
	defer closer()

	return c.executeWithStore(st)
}

// executeWithStore runs the heatmap logic against a provided store (used by tests).
func (c *HeatmapCommand) executeWithStore(st *store.Store) error {
	ref := time.Now()
	if c.Date != "" {
		day, err := parseDate(c.Date)
		if err != nil {
			return err
		}
		ref = day
	}

	fmt.Print(renderHeatmap(ref, st.HeatmapCounts()))
	return nil
}

// renderHeatmap draws the month axis and the 7 weekday rows. Every week
// column is two characters wide so the axis stays aligned with the cells.
func renderHeatmap(ref time.Time, counts map[string]int) string {
	grid := heatmap.BuildGrid(ref, counts)
	labels := heatmap.MonthLabels(ref)

	var b strings.Builder

	// Month axis, offset past the weekday label column.
	axis := make([]byte, len(grid[0])*2)
	for i := range axis {
		axis[i] = ' '
	}
	for _, l := range labels {
		pos := l.Week * 2
		if pos+len(l.Label) <= len(axis) {
			copy(axis[pos:], l.Label)
		}
	}
	b.WriteString("    ")
	b.Write(axis)
	b.WriteByte('\n')

	for wd, row := range grid {
		b.WriteString(weekdayLabels[wd])
		b.WriteByte(' ')
		for _, cell := range row {
			b.WriteString(renderCell(cell))
		}
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(renderLegend())
	return b.String()
}

func renderCell(cell heatmap.Cell) string {
	if cell.Date == "" {
		return "  "
	}
	if cell.Level == 0 {
		return "· "
	}
	return levelPainters[cell.Level].Sprint("■ ")
}

func renderLegend() string {
	var b strings.Builder
	b.WriteString("less · ")
	for lvl := 1; lvl <= heatmap.MaxLevel; lvl++ {
		b.WriteString(levelPainters[lvl].Sprint("■ "))
	}
	b.WriteString("more\n")
	return b.String()
}
