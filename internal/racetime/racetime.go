// Package racetime provides calendar formatting helpers for the
// simulator's absolute-seconds timebase, mirroring the reference's
// TimeTools split_time/format_time_for_file.
package racetime

import (
	"fmt"
	"time"
)

// Format renders an absolute-seconds timestamp as a filesystem-safe,
// human-readable string: "YYYY-MM-DD_HH.MM.SS" in UTC.
func Format(unixSeconds float64) string {
	t := time.Unix(int64(unixSeconds), 0).UTC()
	return fmt.Sprintf("%04d-%02d-%02d_%02d.%02d.%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second())
}

// FormatClock renders the time-of-day portion only, "HH:MM:SS" UTC.
func FormatClock(unixSeconds float64) string {
	t := time.Unix(int64(unixSeconds), 0).UTC()
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}
