package analytics

import "time"

// Range selects the analytics window length.
type Range string

// Supported range tokens.
const (
	RangeWeek  Range = "week"
	RangeMonth Range = "month"
	RangeYear  Range = "year"
)

// ParseRange maps a query token to a Range. Anything unrecognized,
// including the empty string, falls back to month.
func ParseRange(s string) Range {
	switch Range(s) {
	case RangeWeek, RangeMonth, RangeYear:
		return Range(s)
	}
	return RangeMonth
}

// Window is a half-open-ish reporting period. The current window covers
// [Start, End] and the previous window of equal duration covers
// [PreviousStart, Start).
type Window struct {
	Start         time.Time
	End           time.Time
	PreviousStart time.Time
}

// WindowFor computes the reporting window ending at now. Month and year
// use calendar arithmetic, so window lengths follow the calendar rather
// than a fixed day count.
func WindowFor(r Range, now time.Time) Window {
	var start time.Time
	switch r {
	case RangeWeek:
		start = now.AddDate(0, 0, -7)
	case RangeYear:
		start = now.AddDate(-1, 0, 0)
	default:
		start = now.AddDate(0, -1, 0)
	}
	return Window{
		Start:         start,
		End:           now,
		PreviousStart: start.Add(-now.Sub(start)),
	}
}
