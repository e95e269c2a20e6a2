package timeutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

// FormatDate renders the local calendar date of t as zero-padded YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// FromMillis converts epoch milliseconds to a local time.Time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// ToMillis converts a time.Time to epoch milliseconds.
func ToMillis(t time.Time) int64 {
	return t.UnixMilli()
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// WeekdayIndex maps t's weekday to a Monday-first index: Monday=0 .. Sunday=6.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// MondayOnOrBefore returns the start of the Monday on or before t.
func MondayOnOrBefore(t time.Time) time.Time {
	d := StartOfDay(t)
	return d.AddDate(0, 0, -WeekdayIndex(d))
}

// HumanizeRecency renders how long ago ts was relative to now: "today",
// "yesterday", "N days ago" for 2..6 days, and a month-day label ("Jan 2")
// for anything older. Future timestamps also get the month-day label rather
// than a negative offset. Both sides are normalized to midnight so the
// time of day never perturbs the day count.
func HumanizeRecency(now, ts time.Time) string {
	days := int(StartOfDay(now).Sub(StartOfDay(ts)).Hours() / 24)

	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("%d days ago", days)
	default:
		return ts.Format("Jan 2")
	}
}

const idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID creates a log entry ID from the entry's timestamp plus a
// 5-character random suffix. IDs sort roughly by creation time and stay
// unique even for entries created within the same millisecond.
func GenerateID(t time.Time) string {
	suffix := make([]byte, 5)
	for i := range suffix {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(idAlphabet))))
		suffix[i] = idAlphabet[n.Int64()]
	}
	return fmt.Sprintf("%d%s", t.UnixMilli(), string(suffix))
}
