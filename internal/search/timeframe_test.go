package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/events/internal/search/types"
)

func eventAt(id string, at time.Time) types.Event {
	return types.Event{ID: id, Title: id, Venue: "venue", Date: at.Format(time.RFC3339)}
}

func TestFilterByTimeframe_Today(t *testing.T) {
	now := time.Date(2024, 7, 15, 13, 30, 0, 0, time.UTC)
	todayStart := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	events := []types.Event{
		eventAt("yesterday", todayStart.Add(-time.Hour)),
		eventAt("midnight", todayStart),
		eventAt("evening", todayStart.Add(23*time.Hour)),
		eventAt("tomorrow", todayStart.Add(24*time.Hour)),
	}

	got := filterByTimeframeAt(events, TimeframeToday, now)

	require.Len(t, got, 2)
	assert.Equal(t, "midnight", got[0].ID)
	assert.Equal(t, "evening", got[1].ID)
}

func TestFilterByTimeframe_WeekInclusiveUpperBound(t *testing.T) {
	now := time.Date(2024, 7, 15, 9, 0, 0, 0, time.UTC)
	todayStart := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)

	events := []types.Event{
		eventAt("in-window", todayStart.AddDate(0, 0, 3)),
		eventAt("boundary", todayStart.AddDate(0, 0, 7)), // exactly +7d, inclusive
		eventAt("past-window", todayStart.AddDate(0, 0, 7).Add(time.Second)),
	}

	got := filterByTimeframeAt(events, TimeframeWeek, now)

	require.Len(t, got, 2)
	assert.Equal(t, "in-window", got[0].ID)
	assert.Equal(t, "boundary", got[1].ID)
}

func TestFilterByTimeframe_MonthCalendarArithmetic(t *testing.T) {
	// Jan 31 + 1 calendar month normalizes past February's end, so events in
	// late February and on the rolled boundary are all in window.
	now := time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	events := []types.Event{
		eventAt("late-feb", time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)),
		eventAt("boundary", end),
		eventAt("after", end.Add(time.Minute)),
	}

	got := filterByTimeframeAt(events, TimeframeMonth, now)

	require.Len(t, got, 2)
	assert.Equal(t, "late-feb", got[0].ID)
	assert.Equal(t, "boundary", got[1].ID)
}

func TestFilterByTimeframe_ThreeMonths(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)

	events := []types.Event{
		eventAt("next-week", time.Date(2024, 7, 22, 19, 0, 0, 0, time.UTC)),
		eventAt("two-months", time.Date(2024, 9, 10, 19, 0, 0, 0, time.UTC)),
		eventAt("four-months", time.Date(2024, 11, 20, 19, 0, 0, 0, time.UTC)),
	}

	got := filterByTimeframeAt(events, TimeframeThreeMonths, now)

	require.Len(t, got, 2)
	assert.Equal(t, "next-week", got[0].ID)
	assert.Equal(t, "two-months", got[1].ID)
}

func TestFilterByTimeframe_PastEventsExcluded(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	past := eventAt("past", time.Date(2024, 7, 10, 19, 0, 0, 0, time.UTC))

	for _, tf := range []string{TimeframeToday, TimeframeWeek, TimeframeMonth, TimeframeThreeMonths} {
		got := filterByTimeframeAt([]types.Event{past}, tf, now)
		assert.Empty(t, got, "timeframe %q should exclude past events", tf)
	}
}

func TestFilterByTimeframe_UnknownPassesThrough(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	events := []types.Event{
		eventAt("past", now.AddDate(0, 0, -30)),
		eventAt("future", now.AddDate(1, 0, 0)),
		{ID: "broken", Title: "broken", Date: "not-a-date"},
	}

	for _, tf := range []string{"", "bogus", "fortnight"} {
		got := filterByTimeframeAt(events, tf, now)
		assert.Len(t, got, len(events), "timeframe %q should pass through", tf)
	}
}

func TestFilterByTimeframe_UnparseableDatesExcluded(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	events := []types.Event{
		{ID: "broken", Title: "broken", Date: "2024-13-45"},
		eventAt("valid", now.AddDate(0, 0, 2)),
	}

	got := filterByTimeframeAt(events, TimeframeWeek, now)

	require.Len(t, got, 1)
	assert.Equal(t, "valid", got[0].ID)
}

func TestFilterByTimeframe_Idempotent(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	events := []types.Event{
		eventAt("a", now.AddDate(0, 0, -10)),
		eventAt("b", now.Add(2*time.Hour)),
		eventAt("c", now.AddDate(0, 0, 5)),
		eventAt("d", now.AddDate(0, 2, 0)),
	}

	once := filterByTimeframeAt(events, TimeframeWeek, now)
	twice := filterByTimeframeAt(once, TimeframeWeek, now)

	assert.Equal(t, once, twice)
}

func TestFilterByTimeframe_CaseInsensitive(t *testing.T) {
	now := time.Date(2024, 7, 15, 12, 0, 0, 0, time.UTC)
	events := []types.Event{
		eventAt("today-event", now.Add(time.Hour)),
		eventAt("next-month", now.AddDate(0, 0, 20)),
	}

	got := filterByTimeframeAt(events, " Today ", now)

	require.Len(t, got, 1)
	assert.Equal(t, "today-event", got[0].ID)
}
