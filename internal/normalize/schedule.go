// Package normalize converts raw portal payloads into canonical per-day
// records. All entry points are pure: they accumulate into a local keyed map
// and drain it into a sorted slice, never aborting on a single bad record.
package normalize

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/model"
)

// ErrNoRecords is returned when a non-empty payload yields zero resolvable
// day records. Anything less total than that degrades record by record.
var ErrNoRecords = errors.New("no resolvable day records in payload")

// DefaultHolidayNote is the note used for a holiday entry whose name list is
// empty.
const DefaultHolidayNote = "Holiday"

// Options tunes normalization. The zero value uses the defaults.
type Options struct {
	// HolidayFallback replaces DefaultHolidayNote when non-empty.
	HolidayFallback string
}

func (o Options) holidayFallback() string {
	if o.HolidayFallback != "" {
		return o.HolidayFallback
	}
	return DefaultHolidayNote
}

// ScheduleBundle is the API-shaped raw schedule payload. Any subset of the
// top-level arrays may be absent; missing arrays are treated as empty.
type ScheduleBundle struct {
	RegularShifts   []RegularShift   `json:"regularShifts"`
	HolidayList     []HolidayEntry   `json:"holidayList"`
	TimeOffRequests []TimeOffRequest `json:"timeOffRequests"`
}

// RegularShift is a worked shift with full ISO datetimes.
type RegularShift struct {
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
}

// HolidayEntry lists the holidays falling on one date.
type HolidayEntry struct {
	Date     string    `json:"date"`
	Holidays []Holiday `json:"holidays"`
}

// Holiday is a named holiday.
type Holiday struct {
	DisplayName string `json:"displayName"`
}

// TimeOffRequest is an approved or submitted time-off request covering one or
// more day periods.
type TimeOffRequest struct {
	RequestSubType struct {
		LocalizedName string `json:"localizedName"`
	} `json:"requestSubType"`
	CurrentStatus struct {
		Name string `json:"name"`
	} `json:"currentStatus"`
	Periods []TimeOffPeriod `json:"periods"`
}

// TimeOffPeriod is one day covered by a time-off request.
type TimeOffPeriod struct {
	StartDate string `json:"startDate"`
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05.0000000",
	"2006-01-02 15:04:05",
}

func parseDateTime(s string) (time.Time, bool) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseDatePart accepts a bare ISO date or a full datetime and returns the
// date portion.
func parseDatePart(s string) (string, bool) {
	if _, err := time.Parse(dateutil.ISODate, s); err == nil {
		return s, true
	}
	if t, ok := parseDateTime(s); ok {
		return t.Format(dateutil.ISODate), true
	}
	return "", false
}

// Schedule normalizes an API-shaped schedule bundle into one Shift per date,
// sorted ascending. Precedence per date: a regular shift supplies start/end
// and off=false; a holiday annotates an existing shift's note or stands alone
// as an off day; time-off never overwrites an existing entry.
func Schedule(bundle ScheduleBundle, opts Options) ([]model.Shift, error) {
	byDate := make(map[string]*model.Shift)

	for _, rs := range bundle.RegularShifts {
		start, okStart := parseDateTime(rs.StartDateTime)
		end, okEnd := parseDateTime(rs.EndDateTime)
		if !okStart || !okEnd {
			continue
		}
		date := start.Format(dateutil.ISODate)
		startClock := dateutil.FormatClock(start)
		endClock := dateutil.FormatClock(end)
		byDate[date] = &model.Shift{
			Date:  date,
			Day:   dateutil.WeekdayAbbr(start),
			Start: &startClock,
			End:   &endClock,
			Off:   false,
			Note:  nil,
		}
	}

	for _, h := range bundle.HolidayList {
		date, ok := parseDatePart(h.Date)
		if !ok {
			continue
		}
		name := opts.holidayFallback()
		if len(h.Holidays) > 0 && h.Holidays[0].DisplayName != "" {
			name = h.Holidays[0].DisplayName
		}
		if existing, ok := byDate[date]; ok {
			// A worked shift on a holiday keeps its times; the holiday name
			// becomes an annotation.
			existing.Note = &name
			continue
		}
		day, _ := dateutil.WeekdayAbbrForDate(date)
		note := name
		byDate[date] = &model.Shift{Date: date, Day: day, Off: true, Note: &note}
	}

	for _, req := range bundle.TimeOffRequests {
		note := fmt.Sprintf("%s (%s)", req.RequestSubType.LocalizedName, req.CurrentStatus.Name)
		for _, p := range req.Periods {
			date, ok := parseDatePart(p.StartDate)
			if !ok {
				continue
			}
			if _, exists := byDate[date]; exists {
				continue
			}
			day, _ := dateutil.WeekdayAbbrForDate(date)
			n := note
			byDate[date] = &model.Shift{Date: date, Day: day, Off: true, Note: &n}
		}
	}

	total := len(bundle.RegularShifts) + len(bundle.HolidayList)
	for _, req := range bundle.TimeOffRequests {
		total += len(req.Periods)
	}
	if total > 0 && len(byDate) == 0 {
		return nil, ErrNoRecords
	}

	return drainShifts(byDate), nil
}

// drainShifts empties a per-date accumulation map into a slice sorted
// ascending by date. ISO dates sort lexicographically in chronological order.
func drainShifts(byDate map[string]*model.Shift) []model.Shift {
	shifts := make([]model.Shift, 0, len(byDate))
	for _, s := range byDate {
		shifts = append(shifts, *s)
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].Date < shifts[j].Date })
	return shifts
}
