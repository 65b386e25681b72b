// Package diff compares successive snapshots and renders human-readable
// change descriptions. A nil previous snapshot (first run) always yields nil:
// there is nothing to compare against, so nothing to report.
package diff

import (
	"fmt"

	"shiftwatch/internal/model"
)

// NullPlaceholder stands in for an absent value in change lines.
const NullPlaceholder = "—"

// FormatShift renders one shift for display: the off note (or "Day Off"),
// a start–end range, an untyped note, or a placeholder.
func FormatShift(s model.Shift) string {
	if s.Off {
		if s.Note != nil {
			return *s.Note
		}
		return "Day Off"
	}
	if s.Start != nil && s.End != nil {
		return fmt.Sprintf("%s–%s", *s.Start, *s.End)
	}
	if s.Note != nil {
		return *s.Note
	}
	return "(no details)"
}

func shiftLabel(s model.Shift) string {
	return s.Day + " " + s.Date
}

// sameShift reports whether two shifts agree on the tracked fields: start,
// end and off. Note is metadata, not a tracked field; a pure note change is
// not a schedule change.
func sameShift(a, b model.Shift) bool {
	return a.Off == b.Off && eqStr(a.Start, b.Start) && eqStr(a.End, b.End)
}

func eqStr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Schedule diffs the current schedule snapshot against the previous one and
// returns ordered change descriptions, or nil when previous is nil (first
// run) or nothing changed. Output follows the current snapshot's date order.
func Schedule(previous *model.ScheduleSnapshot, current model.ScheduleSnapshot) []string {
	if previous == nil {
		return nil
	}

	prevByDate := make(map[string]model.Shift, len(previous.Shifts))
	for _, s := range previous.Shifts {
		prevByDate[s.Date] = s
	}

	var changes []string
	for _, cur := range current.Shifts {
		prev, existed := prevByDate[cur.Date]
		if !existed {
			changes = append(changes, fmt.Sprintf("%s (new): %s", shiftLabel(cur), FormatShift(cur)))
			continue
		}
		if !sameShift(prev, cur) {
			changes = append(changes, fmt.Sprintf("%s: %s → %s",
				shiftLabel(cur), FormatShift(prev), FormatShift(cur)))
		}
	}
	return changes
}
