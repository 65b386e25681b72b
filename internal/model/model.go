package model

// Shift is one calendar day's work status in a schedule snapshot.
// Day is always derived from Date; a weekday name coming from the source is
// never trusted when it conflicts with the date itself.
type Shift struct {
	Date  string  `json:"date"` // ISO date, unique key within a snapshot
	Day   string  `json:"day"`  // three-letter weekday name
	Start *string `json:"start"`
	End   *string `json:"end"`
	Off   bool    `json:"off"`
	Note  *string `json:"note"`
}

// TimecardEntry is one calendar day's actual clock activity. Date is a
// partial MM/DD key; the year is inferred from the reference date when the
// entry is windowed (see normalize.CombineTimecard).
type TimecardEntry struct {
	Date       string  `json:"date"` // MM/DD
	Day        string  `json:"day"`
	ClockIn1   *string `json:"clockIn1"`
	ClockOut1  *string `json:"clockOut1"`
	ClockIn2   *string `json:"clockIn2"`
	ClockOut2  *string `json:"clockOut2"`
	PayCode    *string `json:"payCode"`
	Amount     *string `json:"amount"`
	ShiftTotal *string `json:"shiftTotal"`
	DailyTotal *string `json:"dailyTotal"`
}

// ScheduleSnapshot is the full normalized schedule state at one point in
// time, sorted ascending by date. Snapshots are immutable once produced.
type ScheduleSnapshot struct {
	Shifts []Shift `json:"shifts"`
}

// TimecardSnapshot is the full normalized timecard state at one point in
// time, sorted ascending by resolved date.
type TimecardSnapshot struct {
	Entries []TimecardEntry `json:"entries"`
}
