package discrepancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwatch/internal/model"
)

var ref = time.Date(2026, 2, 21, 12, 0, 0, 0, time.UTC)

func strp(s string) *string { return &s }

func schedFor(start, end string) model.ScheduleSnapshot {
	return model.ScheduleSnapshot{Shifts: []model.Shift{{
		Date: "2026-02-21", Day: "Sat", Start: strp(start), End: strp(end),
	}}}
}

func cardFor(in, out string) model.TimecardSnapshot {
	e := model.TimecardEntry{Date: "02/21", Day: "Sat"}
	if in != "" {
		e.ClockIn1 = strp(in)
	}
	if out != "" {
		e.ClockOut1 = strp(out)
	}
	return model.TimecardSnapshot{Entries: []model.TimecardEntry{e}}
}

func TestCheckWithinTolerance(t *testing.T) {
	// Exactly 50 minutes off is not reported.
	got := Check(schedFor("9:00", "17:00"), cardFor("9:50", "17:00"), ref)
	assert.Nil(t, got)
}

func TestCheckBeyondTolerance(t *testing.T) {
	// 51 minutes off is reported.
	got := Check(schedFor("9:00", "17:00"), cardFor("9:51", "17:00"), ref)
	require.NotNil(t, got)
	assert.Equal(t, "Sat 2026-02-21:\n  Clock-in 9:51 vs scheduled 9:00 (off by 51 min)", *got)
}

func TestCheckBothBoundaries(t *testing.T) {
	got := Check(schedFor("9:00", "17:00"), cardFor("10:00", "18:30"), ref)
	require.NotNil(t, got)
	assert.Contains(t, *got, "Clock-in 10:00 vs scheduled 9:00 (off by 60 min)")
	assert.Contains(t, *got, "Clock-out 18:30 vs scheduled 17:00 (off by 90 min)")
}

func TestCheckNoScheduledShift(t *testing.T) {
	sched := model.ScheduleSnapshot{Shifts: []model.Shift{{
		Date: "2026-02-21", Day: "Sat", Off: true, Note: strp("Holiday"),
	}}}
	assert.Nil(t, Check(sched, cardFor("9:51", "17:00"), ref), "a day off cannot have a discrepancy")
}

func TestCheckNoTimecardEntry(t *testing.T) {
	card := model.TimecardSnapshot{Entries: []model.TimecardEntry{{Date: "02/20", Day: "Fri", ClockIn1: strp("9:00")}}}
	assert.Nil(t, Check(schedFor("9:00", "17:00"), card, ref))
}

func TestCheckNoPunches(t *testing.T) {
	assert.Nil(t, Check(schedFor("9:00", "17:00"), cardFor("", ""), ref))
}

func TestCheckUnparseablePunchDegrades(t *testing.T) {
	// A malformed clock-in is treated as absent; the clock-out still compares.
	got := Check(schedFor("9:00", "17:00"), cardFor("9:xx", "18:30"), ref)
	require.NotNil(t, got)
	assert.NotContains(t, *got, "Clock-in")
	assert.Contains(t, *got, "Clock-out 18:30 vs scheduled 17:00 (off by 90 min)")
}

func TestCheckMissingScheduledEnd(t *testing.T) {
	sched := model.ScheduleSnapshot{Shifts: []model.Shift{{
		Date: "2026-02-21", Day: "Sat", Start: strp("9:00"),
	}}}
	got := Check(sched, cardFor("11:00", "18:30"), ref)
	require.NotNil(t, got)
	assert.Contains(t, *got, "Clock-in 11:00")
	assert.NotContains(t, *got, "Clock-out")
}
