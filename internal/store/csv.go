package store

import (
	"strconv"
	"strings"
)

// csvHeader is the fixed export header. The column names are kept
// byte-identical to the established export format so spreadsheets built on
// old exports keep working.
const csvHeader = "编号,标题,描述,日期,时间戳"

// ExportCSV serializes every entry as CSV with text fields double-quoted.
// With no entries the result is the header row alone; callers should treat
// header-only output as "nothing to export".
func (s *Store) ExportCSV() string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteByte('\n')

	for _, e := range s.All() {
		b.WriteString(e.ID)
		b.WriteByte(',')
		b.WriteString(csvQuote(e.Title))
		b.WriteByte(',')
		b.WriteString(csvQuote(e.Description))
		b.WriteByte(',')
		b.WriteString(e.Date)
		b.WriteByte(',')
		b.WriteString(strconv.FormatInt(e.Timestamp, 10))
		b.WriteByte('\n')
	}
	return b.String()
}

// csvQuote wraps a text field in double quotes, doubling any quotes inside.
func csvQuote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
