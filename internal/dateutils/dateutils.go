// Package dateutils provides the date operations shared by ingestion and
// the analysis passes. Transaction dates are calendar dates with no time
// component; everything here works on UTC midnights.
package dateutils

import (
	"fmt"
	"strings"
	"time"
)

// Date format constants used throughout the application.
const (
	DateLayoutISO   = "2006-01-02"
	DateLayoutUS    = "01/02/2006"
	DateLayoutEU    = "02.01.2006"
	MonthKeyLayout  = "2006-01"
	DateLayoutSlash = "2006/01/02"
)

// CommonFormats is the list of layouts tried when parsing raw dates.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutUS,
	DateLayoutEU,
	DateLayoutSlash,
	"02-01-2006",
	"02/01/2006",
	"Jan 2, 2006",
	"2-Jan-2006",
}

// ParseDate attempts to parse a raw date string with the common layouts
// and returns a UTC midnight. The time component, if any layout carried
// one, is discarded.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return Truncate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse date: %s", raw)
}

// Truncate drops the time component, pinning the date to UTC midnight.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ToISODate formats a time as YYYY-MM-DD.
func ToISODate(t time.Time) string {
	return t.Format(DateLayoutISO)
}

// MonthKey buckets a date into its calendar month as YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format(MonthKeyLayout)
}

// DaysBetween returns the whole-day gap between two dates, always
// non-negative. Both arguments are expected to be UTC midnights.
func DaysBetween(a, b time.Time) int {
	gap := b.Sub(a)
	if gap < 0 {
		gap = -gap
	}
	return int(gap.Hours() / 24)
}
