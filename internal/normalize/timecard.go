package normalize

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/model"
)

// Column-name suffixes of the timecard table. Scraped header cells carry
// portal-version prefixes, so cells are located by suffix rather than exact
// name.
const (
	ColDate       = "Date"
	ColInPunch1   = "In Punch"
	ColOutPunch1  = "Out Punch"
	ColInPunch2   = "In Punch 2"
	ColOutPunch2  = "Out Punch 2"
	ColPayCode    = "Pay Code"
	ColAmount     = "Amount"
	ColShiftTotal = "Shift"
	ColDailyTotal = "Daily"
)

// maxTimecardRows is how many rows one pay-period table can hold.
const maxTimecardRows = 7

var dateCellRe = regexp.MustCompile(`(Sun|Mon|Tue|Wed|Thu|Fri|Sat)[a-z]*\s+(\d{1,2}/\d{1,2})`)

// cellBySuffix finds the row value whose column name ends with the given
// suffix. Scraped headers carry layout-dependent prefixes but stable
// suffixes.
func cellBySuffix(row map[string]string, suffix string) (string, bool) {
	for name, v := range row {
		if strings.HasSuffix(strings.TrimSpace(name), suffix) {
			return strings.TrimSpace(v), true
		}
	}
	return "", false
}

// cleanPunch strips a semicolon-delimited note prefix from a punch cell,
// keeping only the trailing time token ("late; 9:07" yields "9:07").
func cleanPunch(v string) string {
	if i := strings.LastIndex(v, ";"); i >= 0 {
		return strings.TrimSpace(v[i+1:])
	}
	return strings.TrimSpace(v)
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func punchField(row map[string]string, suffix string) *string {
	v, ok := cellBySuffix(row, suffix)
	if !ok {
		return nil
	}
	return optional(cleanPunch(v))
}

func plainField(row map[string]string, suffix string) *string {
	v, ok := cellBySuffix(row, suffix)
	if !ok {
		return nil
	}
	return optional(v)
}

// TimecardRows converts one pay-period table's rows into timecard entries.
// At most maxTimecardRows rows are considered; rows without a parsable date
// cell are skipped.
func TimecardRows(rows []map[string]string) []model.TimecardEntry {
	var entries []model.TimecardEntry
	for i, row := range rows {
		if i >= maxTimecardRows {
			break
		}
		dateCell, ok := cellBySuffix(row, ColDate)
		if !ok {
			continue
		}
		m := dateCellRe.FindStringSubmatch(dateCell)
		if m == nil {
			continue
		}

		entries = append(entries, model.TimecardEntry{
			Date:       m[2],
			Day:        m[1],
			ClockIn1:   punchField(row, ColInPunch1),
			ClockOut1:  punchField(row, ColOutPunch1),
			ClockIn2:   punchField(row, ColInPunch2),
			ClockOut2:  punchField(row, ColOutPunch2),
			PayCode:    plainField(row, ColPayCode),
			Amount:     plainField(row, ColAmount),
			ShiftTotal: plainField(row, ColShiftTotal),
			DailyTotal: plainField(row, ColDailyTotal),
		})
	}
	return entries
}

// windowDays is the trailing window, in days, that CombineTimecard keeps:
// entries resolving to [ref-windowDays, ref] are retained.
const windowDays = 14

// CombineTimecard merges a previous pay period's entries with the current
// period's, resolves each MM/DD against the reference date, keeps only the
// trailing 14-day window ending at (and including) the reference date,
// deduplicates by MM/DD with the later-listed occurrence winning (current
// period over previous), and sorts ascending by resolved date.
func CombineTimecard(previous, current []model.TimecardEntry, ref time.Time) []model.TimecardEntry {
	refDay := dateutil.StartOfDay(ref)
	earliest := refDay.AddDate(0, 0, -windowDays)

	type resolved struct {
		entry model.TimecardEntry
		date  time.Time
	}
	byKey := make(map[string]resolved)

	all := make([]model.TimecardEntry, 0, len(previous)+len(current))
	all = append(all, previous...)
	all = append(all, current...)

	for _, e := range all {
		d, ok := dateutil.ResolveMonthDay(e.Date, refDay)
		if !ok {
			continue
		}
		if d.After(refDay) || d.Before(earliest) {
			continue
		}
		byKey[e.Date] = resolved{entry: e, date: d}
	}

	out := make([]resolved, 0, len(byKey))
	for _, r := range byKey {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].date.Before(out[j].date) })

	entries := make([]model.TimecardEntry, len(out))
	for i, r := range out {
		entries[i] = r.entry
	}
	return entries
}
