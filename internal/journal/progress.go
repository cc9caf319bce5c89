package journal

import (
	"time"

	"timekeeper/internal/slot"

	"github.com/samber/lo"
)

// SlotStatus is one indicator of the window progress bar.
type SlotStatus struct {
	Label  string
	Active bool
}

// Progress summarises how many window slots were logged today.
type Progress struct {
	Slots   []SlotStatus
	Matched int
	Percent float64
}

// UpdateProgress matches today's entries against the window slots. "Today"
// is the calendar day of now in now's location.
func UpdateProgress(logs []LogEntry, now time.Time) Progress {
	today := lo.Filter(logs, func(e LogEntry, _ int) bool {
		ts, ok := e.Time()
		return ok && sameDay(ts.In(now.Location()), now)
	})
	logged := lo.SliceToMap(today, func(e LogEntry) (string, struct{}) {
		return e.SlotTime, struct{}{}
	})

	p := Progress{Slots: make([]SlotStatus, 0, len(slot.WindowSlots))}
	for _, label := range slot.WindowSlots {
		_, active := logged[label]
		if active {
			p.Matched++
		}
		p.Slots = append(p.Slots, SlotStatus{Label: label, Active: active})
	}
	p.Percent = float64(p.Matched) / float64(len(slot.WindowSlots)) * 100
	return p
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
