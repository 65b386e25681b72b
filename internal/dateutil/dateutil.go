package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ISODate is the canonical date layout used as snapshot keys.
const ISODate = "2006-01-02"

// MonthDayLayout is the partial-date layout used by timecard entries.
const MonthDayLayout = "01/02"

var clockRe = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
var monthDayRe = regexp.MustCompile(`^(\d{1,2})/(\d{1,2})$`)

// WeekdayAbbr returns the three-letter weekday name for t ("Mon", "Tue", …).
func WeekdayAbbr(t time.Time) string {
	return t.Format("Mon")
}

// WeekdayAbbrForDate returns the three-letter weekday name for an ISO date
// string. The second return is false if the date does not parse.
func WeekdayAbbrForDate(date string) (string, bool) {
	t, err := time.Parse(ISODate, date)
	if err != nil {
		return "", false
	}
	return WeekdayAbbr(t), true
}

// FormatClock renders a time of day as hour:minute with no leading zero on
// the hour, e.g. "9:00" or "14:05".
func FormatClock(t time.Time) string {
	return fmt.Sprintf("%d:%02d", t.Hour(), t.Minute())
}

// FormatMinutes renders minutes-since-midnight the same way FormatClock does.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%d:%02d", m/60, m%60)
}

// ParseClock parses an "H:MM" or "HH:MM" time of day into minutes since
// midnight. Hours above 23 or minutes above 59 do not parse. The second
// return is false for any other shape; callers treat that as "absent".
func ParseClock(s string) (int, bool) {
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mm, _ := strconv.Atoi(m[2])
	if h > 23 || mm > 59 {
		return 0, false
	}
	return h*60 + mm, true
}

// NormalizeClock re-renders a parsable clock string without a leading zero on
// the hour. Unparsable input is returned unchanged.
func NormalizeClock(s string) string {
	m, ok := ParseClock(s)
	if !ok {
		return s
	}
	return FormatMinutes(m)
}

// ResolveMonthDay resolves a partial "MM/DD" date against a reference date.
// The year is the reference year, except that December entries resolve to the
// prior year when the reference month is January (a pay period spanning
// New Year). The second return is false if md does not look like MM/DD or is
// not a real calendar date.
func ResolveMonthDay(md string, ref time.Time) (time.Time, bool) {
	m := monthDayRe.FindStringSubmatch(md)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	year := ref.Year()
	if time.Month(month) == time.December && ref.Month() == time.January {
		year--
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, ref.Location())
	// time.Date normalizes overflow (e.g. 02/30 → March); reject that.
	if int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// DayKey identifies a calendar day by weekday name and day-of-month, the only
// identifying data a scraped schedule page exposes per day.
type DayKey struct {
	Day        string // three-letter weekday name
	DayOfMonth int
}

// BuildDayLookup maps (weekday, day-of-month) pairs to real dates for the
// week at the given offset from the reference date. The window spans 14 days
// (anchor minus 6 through plus 7), so it always covers the full calendar week
// containing the anchor no matter which weekday the anchor falls on, and
// stays well under the 28-day bound past which a (weekday, day-of-month) pair
// can repeat. A multi-week fetch builds one lookup per week offset so dates
// sharing a day-of-month across months never collide.
func BuildDayLookup(ref time.Time, weekOffset int) map[DayKey]time.Time {
	center := StartOfDay(ref).AddDate(0, 0, 7*weekOffset)
	lookup := make(map[DayKey]time.Time, 14)
	for i := -6; i <= 7; i++ {
		d := center.AddDate(0, 0, i)
		lookup[DayKey{Day: WeekdayAbbr(d), DayOfMonth: d.Day()}] = d
	}
	return lookup
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
