package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftwatch/internal/model"
)

func punchEntry(date, day, in, out string) model.TimecardEntry {
	e := model.TimecardEntry{Date: date, Day: day}
	if in != "" {
		e.ClockIn1 = strp(in)
	}
	if out != "" {
		e.ClockOut1 = strp(out)
	}
	return e
}

func TestTimecardFirstRun(t *testing.T) {
	cur := model.TimecardSnapshot{Entries: []model.TimecardEntry{punchEntry("02/20", "Fri", "8:58", "17:02")}}
	assert.Nil(t, Timecard(nil, cur))
}

func TestTimecardIdempotent(t *testing.T) {
	snap := model.TimecardSnapshot{Entries: []model.TimecardEntry{punchEntry("02/20", "Fri", "8:58", "17:02")}}
	assert.Nil(t, Timecard(&snap, snap))
}

func TestTimecardNewEntry(t *testing.T) {
	prev := model.TimecardSnapshot{Entries: []model.TimecardEntry{punchEntry("02/19", "Thu", "9:00", "17:00")}}
	cur := model.TimecardSnapshot{Entries: []model.TimecardEntry{
		punchEntry("02/19", "Thu", "9:00", "17:00"),
		punchEntry("02/20", "Fri", "8:58", "17:02"),
	}}
	changes := Timecard(&prev, cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Fri 02/20: new entry", changes[0])
}

func TestTimecardFieldChanges(t *testing.T) {
	prevEntry := punchEntry("02/20", "Fri", "8:58", "17:02")
	prevEntry.PayCode = strp("REG")

	curEntry := punchEntry("02/20", "Fri", "9:07", "17:02")
	curEntry.PayCode = strp("OT")

	prev := model.TimecardSnapshot{Entries: []model.TimecardEntry{prevEntry}}
	cur := model.TimecardSnapshot{Entries: []model.TimecardEntry{curEntry}}

	changes := Timecard(&prev, cur)
	require.Len(t, changes, 1)
	assert.Equal(t,
		"Fri 02/20:\n  Clock In: 8:58 → 9:07\n  Pay Code: REG → OT",
		changes[0])
}

func TestTimecardNullnessChange(t *testing.T) {
	prev := model.TimecardSnapshot{Entries: []model.TimecardEntry{punchEntry("02/20", "Fri", "8:58", "")}}
	cur := model.TimecardSnapshot{Entries: []model.TimecardEntry{punchEntry("02/20", "Fri", "8:58", "17:02")}}

	changes := Timecard(&prev, cur)
	require.Len(t, changes, 1)
	assert.Equal(t, "Fri 02/20:\n  Clock Out: — → 17:02", changes[0])
}

func TestTimecardNilToEmptyStringReported(t *testing.T) {
	// Pointer nullness is tracked, not just rendered text: a nil field
	// becoming an empty string is still a change.
	prevEntry := punchEntry("02/20", "Fri", "8:58", "17:02")
	curEntry := punchEntry("02/20", "Fri", "8:58", "17:02")
	curEntry.PayCode = strp("")

	prev := model.TimecardSnapshot{Entries: []model.TimecardEntry{prevEntry}}
	cur := model.TimecardSnapshot{Entries: []model.TimecardEntry{curEntry}}

	changes := Timecard(&prev, cur)
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "Pay Code")
}

func TestTimecardUnchangedEntryNoOutput(t *testing.T) {
	prev := model.TimecardSnapshot{Entries: []model.TimecardEntry{
		punchEntry("02/19", "Thu", "9:00", "17:00"),
		punchEntry("02/20", "Fri", "8:58", "17:02"),
	}}
	cur := model.TimecardSnapshot{Entries: []model.TimecardEntry{
		punchEntry("02/19", "Thu", "9:00", "17:00"),
		punchEntry("02/20", "Fri", "8:58", "18:00"),
	}}
	changes := Timecard(&prev, cur)
	require.Len(t, changes, 1)
	assert.Contains(t, changes[0], "02/20")
}
