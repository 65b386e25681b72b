// Package runner orchestrates one check cycle: fetch both data sets
// concurrently, normalize, diff against the persisted snapshots, run the
// discrepancy check, and assemble the alert.
package runner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shiftwatch/internal/alert"
	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/diff"
	"shiftwatch/internal/discrepancy"
	"shiftwatch/internal/model"
)

// ScheduleSource acquires and canonicalizes the schedule for a run.
type ScheduleSource interface {
	FetchSchedule(ctx context.Context, ref time.Time) ([]model.Shift, error)
}

// TimecardSource acquires and canonicalizes the timecard for a run.
type TimecardSource interface {
	FetchTimecard(ctx context.Context, ref time.Time) ([]model.TimecardEntry, error)
}

// SnapshotStore loads the previous run's snapshots and persists the new
// ones. Load returns nil on first run.
type SnapshotStore interface {
	LoadSchedule() (*model.ScheduleSnapshot, error)
	SaveSchedule(ref time.Time, snap model.ScheduleSnapshot) error
	LoadTimecard() (*model.TimecardSnapshot, error)
	SaveTimecard(ref time.Time, snap model.TimecardSnapshot) error
}

// Runner wires the collaborators of one check cycle.
type Runner struct {
	Schedule ScheduleSource
	Timecard TimecardSource
	Store    SnapshotStore
	Notifier alert.Notifier
	Log      *zap.Logger
}

// Report is the outcome of one run.
type Report struct {
	Sections []string
	Body     string
	// Alerted is true when any change, discrepancy or acquisition failure
	// was worth notifying about.
	Alerted bool
}

// Section titles in the alert body.
const (
	TitleScheduleChanges = "Schedule Changes"
	TitleTimecardChanges = "Timecard Changes"
	TitleDiscrepancy     = "Schedule vs. Timecard"
	TitleErrors          = "Errors"
)

// Run executes one check cycle against the given reference date. The two
// acquisitions run concurrently and fail independently: a dead schedule
// fetch still lets timecard changes go out, with the failure reported as an
// Errors section rather than an aborted run.
func (r *Runner) Run(ctx context.Context, ref time.Time) (Report, error) {
	var (
		shifts   []model.Shift
		schedErr error
		entries  []model.TimecardEntry
		tcErr    error
	)

	g := new(errgroup.Group)
	g.Go(func() error {
		shifts, schedErr = r.Schedule.FetchSchedule(ctx, ref)
		return nil
	})
	g.Go(func() error {
		entries, tcErr = r.Timecard.FetchTimecard(ctx, ref)
		return nil
	})
	_ = g.Wait()

	var sections []string
	var acquisitionErrors []string
	var schedSnap *model.ScheduleSnapshot
	var tcSnap *model.TimecardSnapshot

	if schedErr != nil {
		r.Log.Error("schedule acquisition failed", zap.Error(schedErr))
		acquisitionErrors = append(acquisitionErrors, fmt.Sprintf("schedule: %v", schedErr))
	} else {
		cur := model.ScheduleSnapshot{Shifts: shifts}
		schedSnap = &cur
		prev, err := r.Store.LoadSchedule()
		if err != nil {
			return Report{}, fmt.Errorf("loading previous schedule snapshot: %w", err)
		}
		if changes := diff.Schedule(prev, cur); len(changes) > 0 {
			sections = append(sections, alert.Section(TitleScheduleChanges, changes))
		}
		if err := r.Store.SaveSchedule(ref, cur); err != nil {
			return Report{}, fmt.Errorf("saving schedule snapshot: %w", err)
		}
		r.Log.Info("schedule snapshot stored", zap.Int("shifts", len(shifts)))
	}

	if tcErr != nil {
		r.Log.Error("timecard acquisition failed", zap.Error(tcErr))
		acquisitionErrors = append(acquisitionErrors, fmt.Sprintf("timecard: %v", tcErr))
	} else {
		cur := model.TimecardSnapshot{Entries: entries}
		tcSnap = &cur
		prev, err := r.Store.LoadTimecard()
		if err != nil {
			return Report{}, fmt.Errorf("loading previous timecard snapshot: %w", err)
		}
		if changes := diff.Timecard(prev, cur); len(changes) > 0 {
			sections = append(sections, alert.Section(TitleTimecardChanges, changes))
		}
		if err := r.Store.SaveTimecard(ref, cur); err != nil {
			return Report{}, fmt.Errorf("saving timecard snapshot: %w", err)
		}
		r.Log.Info("timecard snapshot stored", zap.Int("entries", len(entries)))
	}

	if schedSnap != nil && tcSnap != nil {
		if desc := discrepancy.Check(*schedSnap, *tcSnap, ref); desc != nil {
			sections = append(sections, alert.Section(TitleDiscrepancy, []string{*desc}))
		}
	}

	if len(acquisitionErrors) > 0 {
		sections = append(sections, alert.Section(TitleErrors, acquisitionErrors))
	}

	report := Report{
		Sections: sections,
		Body:     alert.Body(sections),
		Alerted:  len(sections) > 0,
	}

	if report.Alerted && r.Notifier != nil {
		subject := fmt.Sprintf("shiftwatch: changes for %s", ref.Format(dateutil.ISODate))
		if err := r.Notifier.Send(ctx, subject, report.Body); err != nil {
			return report, fmt.Errorf("sending notification: %w", err)
		}
	}
	return report, nil
}
