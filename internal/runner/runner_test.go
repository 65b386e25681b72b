package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shiftwatch/internal/model"
)

func strp(s string) *string { return &s }

var ref = time.Date(2026, 2, 21, 8, 0, 0, 0, time.UTC)

type fakeScheduleSource struct {
	shifts []model.Shift
	err    error
}

func (f *fakeScheduleSource) FetchSchedule(context.Context, time.Time) ([]model.Shift, error) {
	return f.shifts, f.err
}

type fakeTimecardSource struct {
	entries []model.TimecardEntry
	err     error
}

func (f *fakeTimecardSource) FetchTimecard(context.Context, time.Time) ([]model.TimecardEntry, error) {
	return f.entries, f.err
}

type memStore struct {
	schedule *model.ScheduleSnapshot
	timecard *model.TimecardSnapshot
}

func (m *memStore) LoadSchedule() (*model.ScheduleSnapshot, error) { return m.schedule, nil }
func (m *memStore) SaveSchedule(_ time.Time, s model.ScheduleSnapshot) error {
	m.schedule = &s
	return nil
}
func (m *memStore) LoadTimecard() (*model.TimecardSnapshot, error) { return m.timecard, nil }
func (m *memStore) SaveTimecard(_ time.Time, s model.TimecardSnapshot) error {
	m.timecard = &s
	return nil
}

type recordingNotifier struct {
	subject, body string
	sent          bool
}

func (n *recordingNotifier) Send(_ context.Context, subject, body string) error {
	n.sent = true
	n.subject = subject
	n.body = body
	return nil
}

func workDay(date, day, start, end string) model.Shift {
	return model.Shift{Date: date, Day: day, Start: strp(start), End: strp(end)}
}

func newRunner(sched *fakeScheduleSource, tc *fakeTimecardSource, st *memStore, n *recordingNotifier) *Runner {
	return &Runner{Schedule: sched, Timecard: tc, Store: st, Notifier: n, Log: zap.NewNop()}
}

func TestRunFirstRunNoAlert(t *testing.T) {
	st := &memStore{}
	n := &recordingNotifier{}
	r := newRunner(
		&fakeScheduleSource{shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "14:00")}},
		&fakeTimecardSource{},
		st, n)

	report, err := r.Run(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, report.Alerted, "first run has no previous snapshot, so nothing to report")
	assert.False(t, n.sent)
	require.NotNil(t, st.schedule, "snapshot persisted for the next run")
}

func TestRunScheduleChangeAlerts(t *testing.T) {
	st := &memStore{
		schedule: &model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "17:00")}},
		timecard: &model.TimecardSnapshot{},
	}
	n := &recordingNotifier{}
	r := newRunner(
		&fakeScheduleSource{shifts: []model.Shift{workDay("2026-02-21", "Sat", "10:00", "18:00")}},
		&fakeTimecardSource{},
		st, n)

	report, err := r.Run(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, report.Alerted)
	require.True(t, n.sent)
	assert.Equal(t, "shiftwatch: changes for 2026-02-21", n.subject)
	assert.Contains(t, n.body, "Schedule Changes")
	assert.Contains(t, n.body, "Sat 2026-02-21: 9:00–17:00 → 10:00–18:00")
}

func TestRunFailureIsolation(t *testing.T) {
	// The schedule fetch dies; timecard changes still go out, and the
	// failure surfaces as an Errors section.
	st := &memStore{
		timecard: &model.TimecardSnapshot{},
	}
	n := &recordingNotifier{}
	in := "9:51"
	r := newRunner(
		&fakeScheduleSource{err: errors.New("portal timeout")},
		&fakeTimecardSource{entries: []model.TimecardEntry{{Date: "02/21", Day: "Sat", ClockIn1: &in}}},
		st, n)

	report, err := r.Run(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, report.Alerted)
	assert.Contains(t, n.body, "Timecard Changes")
	assert.Contains(t, n.body, "Errors")
	assert.Contains(t, n.body, "schedule: portal timeout")
	assert.Nil(t, st.schedule, "failed acquisition must not overwrite the stored snapshot")
	require.NotNil(t, st.timecard)
}

func TestRunDiscrepancySection(t *testing.T) {
	st := &memStore{
		schedule: &model.ScheduleSnapshot{Shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "17:00")}},
		timecard: &model.TimecardSnapshot{},
	}
	n := &recordingNotifier{}
	in, out := "10:30", "17:00"
	r := newRunner(
		&fakeScheduleSource{shifts: []model.Shift{workDay("2026-02-21", "Sat", "9:00", "17:00")}},
		&fakeTimecardSource{entries: []model.TimecardEntry{{Date: "02/21", Day: "Sat", ClockIn1: &in, ClockOut1: &out}}},
		st, n)

	report, err := r.Run(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, report.Alerted)
	assert.Contains(t, n.body, "Schedule vs. Timecard")
	assert.Contains(t, n.body, "Clock-in 10:30 vs scheduled 9:00 (off by 90 min)")
}

func TestRunNoChangesNoNotification(t *testing.T) {
	shifts := []model.Shift{workDay("2026-02-21", "Sat", "9:00", "14:00")}
	st := &memStore{
		schedule: &model.ScheduleSnapshot{Shifts: shifts},
		timecard: &model.TimecardSnapshot{},
	}
	n := &recordingNotifier{}
	r := newRunner(&fakeScheduleSource{shifts: shifts}, &fakeTimecardSource{}, st, n)

	report, err := r.Run(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, report.Alerted)
	assert.False(t, n.sent)
	assert.Empty(t, report.Body)
}
