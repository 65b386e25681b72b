// Package discrepancy flags mismatches between the scheduled shift and the
// actual clock punches for one reference day.
package discrepancy

import (
	"fmt"
	"strings"
	"time"

	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/model"
)

// ToleranceMinutes is how far a punch may drift from the scheduled time
// before it is reported. A difference of exactly this many minutes is fine.
const ToleranceMinutes = 50

// Check compares the reference day's scheduled shift against its timecard
// punches. It returns nil when the day has no working shift, no timecard
// entry with punches, or every present punch is within tolerance. Clock-in
// and clock-out are compared independently; a side with an absent or
// unparseable value is simply not compared.
func Check(schedule model.ScheduleSnapshot, timecard model.TimecardSnapshot, ref time.Time) *string {
	shift, ok := findWorkingShift(schedule, ref)
	if !ok {
		return nil
	}
	entry, ok := findEntry(timecard, ref)
	if !ok {
		return nil
	}
	if entry.ClockIn1 == nil && entry.ClockOut1 == nil {
		return nil
	}

	var lines []string
	if l := compare("Clock-in", entry.ClockIn1, shift.Start); l != "" {
		lines = append(lines, l)
	}
	if l := compare("Clock-out", entry.ClockOut1, shift.End); l != "" {
		lines = append(lines, l)
	}
	if len(lines) == 0 {
		return nil
	}

	desc := fmt.Sprintf("%s %s:\n  %s", shift.Day, shift.Date, strings.Join(lines, "\n  "))
	return &desc
}

func findWorkingShift(schedule model.ScheduleSnapshot, ref time.Time) (model.Shift, bool) {
	date := ref.Format(dateutil.ISODate)
	for _, s := range schedule.Shifts {
		if s.Date == date && !s.Off {
			return s, true
		}
	}
	return model.Shift{}, false
}

func findEntry(timecard model.TimecardSnapshot, ref time.Time) (model.TimecardEntry, bool) {
	for _, e := range timecard.Entries {
		d, ok := dateutil.ResolveMonthDay(e.Date, ref)
		if !ok {
			continue
		}
		if d.Month() == ref.Month() && d.Day() == ref.Day() {
			return e, true
		}
	}
	return model.TimecardEntry{}, false
}

// compare returns a description line when actual and scheduled are both
// present, both parsable, and further apart than the tolerance.
func compare(boundary string, actual, scheduled *string) string {
	if actual == nil || scheduled == nil {
		return ""
	}
	actualMin, ok := dateutil.ParseClock(*actual)
	if !ok {
		return ""
	}
	schedMin, ok := dateutil.ParseClock(*scheduled)
	if !ok {
		return ""
	}
	delta := actualMin - schedMin
	if delta < 0 {
		delta = -delta
	}
	if delta <= ToleranceMinutes {
		return ""
	}
	return fmt.Sprintf("%s %s vs scheduled %s (off by %d min)", boundary, *actual, *scheduled, delta)
}
