package e1rm

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidRange = errors.New("invalid range")

type Range string

const (
	RangeWeek       Range = "1W"
	RangeMonth      Range = "1M"
	RangeThreeMonth Range = "3M"
	RangeSixMonth   Range = "6M"
	RangeYear       Range = "1Y"
	RangeAll        Range = "ALL"

	day = 24 * time.Hour
)

// ParseRange accepts the range tokens case-insensitively, an empty token
// means all the history.
func ParseRange(token string) (Range, error) {
	if token == "" {
		return RangeAll, nil
	}
	switch r := Range(strings.ToUpper(token)); r {
	case RangeWeek, RangeMonth, RangeThreeMonth, RangeSixMonth, RangeYear, RangeAll:
		return r, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidRange, token)
	}
}

// Midnight truncates t to the start of its UTC day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolveRange returns the first and last day of the chart. For ALL it is the
// observed span of the history, not a window ending today. ok is false when
// there is nothing to chart.
func ResolveRange(history []DailyMaxE1RM, rng Range, now time.Time) (start, end time.Time, ok bool) {
	first, last, found := span(history)
	if !found {
		return time.Time{}, time.Time{}, false
	}

	end = Midnight(now)
	switch rng {
	case RangeWeek:
		start = end.AddDate(0, 0, -7)
	case RangeMonth:
		start = end.AddDate(0, -1, 0)
	case RangeThreeMonth:
		start = end.AddDate(0, -3, 0)
	case RangeSixMonth:
		start = end.AddDate(0, -6, 0)
	case RangeYear:
		start = end.AddDate(-1, 0, 0)
	default:
		start, end = first, last
	}
	return start, end, true
}

func span(history []DailyMaxE1RM) (first, last time.Time, found bool) {
	for _, row := range history {
		d, ok := row.valid()
		if !ok {
			continue
		}
		if !found || d.Before(first) {
			first = d
		}
		if !found || d.After(last) {
			last = d
		}
		found = true
	}
	return first, last, found
}
