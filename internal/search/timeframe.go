package search

import (
	"strings"
	"time"

	"github.com/alex-user-go/events/internal/search/types"
)

// Timeframe values accepted by FilterByTimeframe. Anything else passes the
// input through unfiltered.
const (
	TimeframeToday       = "today"
	TimeframeWeek        = "week"
	TimeframeMonth       = "month"
	TimeframeThreeMonths = "3months"
)

// FilterByTimeframe narrows events to a named window anchored at the start of
// the current local calendar day. Unknown timeframes are not an error; the
// input is returned as-is. Events before today never match a named window,
// and neither do events whose dates fail to parse.
func FilterByTimeframe(events []types.Event, timeframe string) []types.Event {
	return filterByTimeframeAt(events, timeframe, time.Now())
}

func filterByTimeframeAt(events []types.Event, timeframe string, now time.Time) []types.Event {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		end          time.Time
		endInclusive bool
	)
	switch strings.ToLower(strings.TrimSpace(timeframe)) {
	case TimeframeToday:
		end = todayStart.AddDate(0, 0, 1)
	case TimeframeWeek:
		end = todayStart.AddDate(0, 0, 7)
		endInclusive = true
	case TimeframeMonth:
		// Calendar-month arithmetic; month-end overflow rolls forward per
		// the standard Go normalization rules.
		end = todayStart.AddDate(0, 1, 0)
		endInclusive = true
	case TimeframeThreeMonths:
		end = todayStart.AddDate(0, 3, 0)
		endInclusive = true
	default:
		return events
	}

	out := make([]types.Event, 0, len(events))
	for _, e := range events {
		at, err := e.ParsedDate()
		if err != nil {
			continue
		}
		if at.Before(todayStart) {
			continue
		}
		if endInclusive {
			if at.After(end) {
				continue
			}
		} else if !at.Before(end) {
			continue
		}
		out = append(out, e)
	}
	return out
}
