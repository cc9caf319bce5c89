package journal

import (
	"time"

	"timekeeper/internal/slot"

	"github.com/samber/lo"
)

// HistoryRow is one line of the rendered history list.
type HistoryRow struct {
	Activity string
	Time     string
	Slot     string
}

// RenderHistory builds one row per entry, keeping the backend's order.
// Times are shown in loc; entries with an unreadable timestamp get an
// empty time.
func RenderHistory(logs []LogEntry, loc *time.Location) []HistoryRow {
	return lo.Map(logs, func(e LogEntry, _ int) HistoryRow {
		row := HistoryRow{Activity: e.Activity, Slot: e.SlotTime}
		if ts, ok := e.Time(); ok {
			row.Time = slot.DisplayTime(ts.In(loc))
		}
		return row
	})
}
