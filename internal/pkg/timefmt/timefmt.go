// Package timefmt renders visit durations. Two conventions coexist on
// purpose: listings use colon style ("HH:MM:SS", hours dropped when zero) and
// the emailed report uses word style ("1h 1m"). They must stay separate so the
// email matches the dashboard byte-for-byte where the two are compared.
package timefmt

import (
	"fmt"
	"time"
)

// ColonSeconds renders a non-negative second count as "HH:MM:SS", or "MM:SS"
// when there are no whole hours.
func ColonSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// WordSeconds renders a non-negative second count as "{h}h {m}m".
func WordSeconds(secs int64) string {
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%dh %dm", secs/3600, (secs%3600)/60)
}

// DiffColon formats end-start in colon style. Missing timestamps or a range
// that runs backwards render as "-".
func DiffColon(start, end *time.Time) string {
	if start == nil || end == nil {
		return "-"
	}
	secs := int64(end.Sub(*start) / time.Second)
	if secs < 0 {
		return "-"
	}
	return ColonSeconds(secs)
}

// DiffWords formats end-start in word style. Missing timestamps render as
// "-"; a backwards range clamps to zero rather than erroring, matching the
// emailed report.
func DiffWords(start, end *time.Time) string {
	if start == nil || end == nil {
		return "-"
	}
	secs := int64(end.Sub(*start) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return WordSeconds(secs)
}

// DiffSeconds is the raw non-negative second difference used by the metric
// sums; nil timestamps contribute nothing.
func DiffSeconds(start, end *time.Time) int64 {
	if start == nil || end == nil {
		return 0
	}
	secs := int64(end.Sub(*start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}
