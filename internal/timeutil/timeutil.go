package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const ISODate = "2006-01-02"

// StartOfDay truncates a timestamp to midnight in its own location.
func StartOfDay(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, value.Location())
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// BusinessDate returns today as a date-only value in the given business
// timezone.
func BusinessDate(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return StartOfDay(time.Now().In(loc))
}

func FormatISODate(value time.Time) string {
	return value.Format(ISODate)
}

func ParseISODate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	parsed, err := time.ParseInLocation(ISODate, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", raw)
	}
	return parsed, nil
}
