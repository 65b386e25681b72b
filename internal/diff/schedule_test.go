package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwatch/internal/model"
)

func strp(s string) *string { return &s }

func workDay(date, day, start, end string) model.Shift {
	return model.Shift{Date: date, Day: day, Start: strp(start), End: strp(end)}
}

func TestScheduleFirstRun(t *testing.T) {
	cur := model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "14:00")}}
	assert.Nil(t, Schedule(nil, cur), "no previous snapshot means nothing to report")
}

func TestScheduleIdempotent(t *testing.T) {
	snap := model.ScheduleSnapshot{Shifts: []model.Shift{
		workDay("2026-02-21", "Sat", "9:00", "14:00"),
		{Date: "2026-02-22", Day: "Sun", Off: true, Note: strp("Vacation (APPROVED)")},
	}}
	assert.Nil(t, Schedule(&snap, snap), "diffing a snapshot against itself yields nil")
}

func TestScheduleChangedTimes(t *testing.T) {
	prev := model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "17:00")}}
	cur := model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "10:00", "18:00")}}

	changes := Schedule(&prev, cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Sat 2026-02-21: 9:00–17:00 → 10:00–18:00", changes[0])
}

func TestScheduleNewDay(t *testing.T) {
	prev := model.ScheduleSnapshot{}
	cur := model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "14:00")}}

	changes := Schedule(&prev, cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Sat 2026-02-21 (new): 9:00–14:00", changes[0])
}

func TestScheduleNoteOnlyChangeNotReported(t *testing.T) {
	prev := model.ScheduleSnapshot{Shifts: []model.Shift{
		{Date: "2026-02-21", Day: "Sat", Start: strp("9:00"), End: strp("14:00"), Note: strp("old note")},
	}}
	cur := model.ScheduleSnapshot{Shifts: []model.Shift{
		{Date: "2026-02-21", Day: "Sat", Start: strp("9:00"), End: strp("14:00"), Note: strp("new note")},
	}}
	assert.Nil(t, Schedule(&prev, cur), "note is metadata, not a tracked field")
}

func TestScheduleOffChangeReported(t *testing.T) {
	prev := model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "14:00")}}
	cur := model.ScheduleSnapshot{Shifts: []model.Shift{
		{Date: "2026-02-21", Day: "Sat", Off: true, Note: strp("Vacation (SUBMITTED)")},
	}}

	changes := Schedule(&prev, cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Sat 2026-02-21: 9:00–14:00 → Vacation (SUBMITTED)", changes[0])
}

func TestScheduleOrderFollowsCurrentSnapshot(t *testing.T) {
	prev := model.ScheduleSnapshot{}
	cur := model.ScheduleSnapshot{Shifts: []model.Shift{
		workDay("2026-02-21", "Sat", "9:00", "14:00"),
		workDay("2026-02-23", "Mon", "9:00", "17:00"),
	}}
	changes := Schedule(&prev, cur)
	require.Len(t, changes, 2)
	assert.Contains(t, changes[0], "2026-02-21")
	assert.Contains(t, changes[1], "2026-02-23")
}

func TestFormatShift(t *testing.T) {
	tests := []struct {
		name  string
		shift model.Shift
		want  string
	}{
		{"worked", workDay("2026-02-21", "Sat", "9:00", "14:00"), "9:00–14:00"},
		{"off with note", model.Shift{Off: true, Note: strp("Holiday")}, "Holiday"},
		{"off without note", model.Shift{Off: true}, "Day Off"},
		{"untyped note", model.Shift{Note: strp("On call")}, "On call"},
		{"empty", model.Shift{}, "(no details)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatShift(tt.shift))
		})
	}
}
