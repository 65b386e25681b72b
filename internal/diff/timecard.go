package diff

import (
	"fmt"
	"strings"

	"shiftwatch/internal/model"
)

// trackedFields is the fixed ordered set of timecard fields whose changes
// are reported.
var trackedFields = []struct {
	Label string
	Get   func(model.TimecardEntry) *string
}{
	{"Clock In", func(e model.TimecardEntry) *string { return e.ClockIn1 }},
	{"Clock Out", func(e model.TimecardEntry) *string { return e.ClockOut1 }},
	{"Clock In 2", func(e model.TimecardEntry) *string { return e.ClockIn2 }},
	{"Clock Out 2", func(e model.TimecardEntry) *string { return e.ClockOut2 }},
	{"Pay Code", func(e model.TimecardEntry) *string { return e.PayCode }},
	{"Amount", func(e model.TimecardEntry) *string { return e.Amount }},
	{"Shift Total", func(e model.TimecardEntry) *string { return e.ShiftTotal }},
	{"Daily Total", func(e model.TimecardEntry) *string { return e.DailyTotal }},
}

func orPlaceholder(v *string) string {
	if v == nil || *v == "" {
		return NullPlaceholder
	}
	return *v
}

func entryLabel(e model.TimecardEntry) string {
	return e.Day + " " + e.Date
}

// Timecard diffs the current timecard snapshot against the previous one,
// keyed by MM/DD. Returns nil when previous is nil or nothing changed;
// otherwise one description per changed date, in current-snapshot order.
func Timecard(previous *model.TimecardSnapshot, current model.TimecardSnapshot) []string {
	if previous == nil {
		return nil
	}

	prevByDate := make(map[string]model.TimecardEntry, len(previous.Entries))
	for _, e := range previous.Entries {
		prevByDate[e.Date] = e
	}

	var changes []string
	for _, cur := range current.Entries {
		prev, existed := prevByDate[cur.Date]
		if !existed {
			changes = append(changes, fmt.Sprintf("%s: new entry", entryLabel(cur)))
			continue
		}

		var lines []string
		for _, f := range trackedFields {
			oldV, newV := f.Get(prev), f.Get(cur)
			if eqStr(oldV, newV) {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s: %s → %s",
				f.Label, orPlaceholder(oldV), orPlaceholder(newV)))
		}
		if len(lines) > 0 {
			changes = append(changes, entryLabel(cur)+":\n"+strings.Join(lines, "\n"))
		}
	}
	return changes
}
