package normalize

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/model"
)

// DayBlock is one day's worth of scraped page text: the weekday name and
// day-of-month from the day boundary, plus every detail line up to the next
// boundary.
type DayBlock struct {
	Day     string
	DateNum int
	Details []string
}

// ScrapedWeek is the page text captured for one week of the schedule view,
// tagged with its offset in weeks from the reference date.
type ScrapedWeek struct {
	Offset int
	Text   string
}

var weekdayNames = map[string]string{
	"Sun": "Sun", "Mon": "Mon", "Tue": "Tue", "Wed": "Wed",
	"Thu": "Thu", "Fri": "Fri", "Sat": "Sat",
	"Tues": "Tue", "Thur": "Thu", "Thurs": "Thu",
	"Sunday": "Sun", "Monday": "Mon", "Tuesday": "Tue", "Wednesday": "Wed",
	"Thursday": "Thu", "Friday": "Fri", "Saturday": "Sat",
}

var (
	bareWeekdayRe = regexp.MustCompile(`^([A-Z][a-z]+)$`)
	bareDayNumRe  = regexp.MustCompile(`^(\d{1,2})$`)
	dayNumberRe   = regexp.MustCompile(`^([A-Z][a-z]+)\s+(\d{1,2})$`)
	longFormRe    = regexp.MustCompile(`^([A-Z][a-z]+),\s+[A-Z][a-z]+\s+(\d{1,2})$`)
)

// canonicalWeekday maps a weekday name or abbreviation to its three-letter
// form, or "" if the word is not a weekday.
func canonicalWeekday(word string) string {
	return weekdayNames[word]
}

// boundaryMatch is the result of recognizing a day boundary in the line
// stream: the weekday, the day-of-month, and how many lines the boundary
// consumed.
type boundaryMatch struct {
	day      string
	dateNum  int
	consumed int
}

// boundaryMatcher recognizes one layout variant of a day boundary starting at
// lines[i]. The portal has shipped several layouts over time; matchers are
// tried in priority order and the first match wins.
type boundaryMatcher func(lines []string, i int) (boundaryMatch, bool)

// matchSplitLines handles a bare weekday line immediately followed by a bare
// 1-2 digit day-of-month line.
func matchSplitLines(lines []string, i int) (boundaryMatch, bool) {
	if i+1 >= len(lines) {
		return boundaryMatch{}, false
	}
	wd := bareWeekdayRe.FindStringSubmatch(lines[i])
	if wd == nil {
		return boundaryMatch{}, false
	}
	day := canonicalWeekday(wd[1])
	if day == "" {
		return boundaryMatch{}, false
	}
	num := bareDayNumRe.FindStringSubmatch(lines[i+1])
	if num == nil {
		return boundaryMatch{}, false
	}
	n, _ := strconv.Atoi(num[1])
	return boundaryMatch{day: day, dateNum: n, consumed: 2}, true
}

// matchDayNumber handles a single "<Weekday> <day-of-month>" line.
func matchDayNumber(lines []string, i int) (boundaryMatch, bool) {
	m := dayNumberRe.FindStringSubmatch(lines[i])
	if m == nil {
		return boundaryMatch{}, false
	}
	day := canonicalWeekday(m[1])
	if day == "" {
		return boundaryMatch{}, false
	}
	n, _ := strconv.Atoi(m[2])
	return boundaryMatch{day: day, dateNum: n, consumed: 1}, true
}

// matchLongForm handles "<Weekday>, <Month> <day-of-month>" lines.
func matchLongForm(lines []string, i int) (boundaryMatch, bool) {
	m := longFormRe.FindStringSubmatch(lines[i])
	if m == nil {
		return boundaryMatch{}, false
	}
	day := canonicalWeekday(m[1])
	if day == "" {
		return boundaryMatch{}, false
	}
	n, _ := strconv.Atoi(m[2])
	return boundaryMatch{day: day, dateNum: n, consumed: 1}, true
}

var boundaryMatchers = []boundaryMatcher{
	matchSplitLines,
	matchDayNumber,
	matchLongForm,
}

func matchBoundary(lines []string, i int) (boundaryMatch, bool) {
	for _, m := range boundaryMatchers {
		if bm, ok := m(lines, i); ok {
			return bm, true
		}
	}
	return boundaryMatch{}, false
}

// SegmentDays splits free-form schedule page text into per-day blocks. Lines
// before the first day boundary are ignored; the literal line "Today" is
// discarded wherever it appears. Returns ErrNoRecords when non-blank text
// contains no recognizable day boundary at all.
func SegmentDays(text string) ([]DayBlock, error) {
	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || line == "Today" {
			continue
		}
		lines = append(lines, line)
	}

	var blocks []DayBlock
	var cur *DayBlock
	for i := 0; i < len(lines); {
		if bm, ok := matchBoundary(lines, i); ok {
			blocks = append(blocks, DayBlock{Day: bm.day, DateNum: bm.dateNum})
			cur = &blocks[len(blocks)-1]
			i += bm.consumed
			continue
		}
		if cur != nil {
			cur.Details = append(cur.Details, lines[i])
		}
		i++
	}

	if len(blocks) == 0 && len(lines) > 0 {
		return nil, ErrNoRecords
	}
	return blocks, nil
}

var (
	timeRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[–—-]\s*(\d{1,2}:\d{2})`)
	// Off/leave vocabulary seen across portal layouts, including the
	// time-off-request abbreviation.
	offVocabRe = regexp.MustCompile(`(?i)(day\s*off|nothing planned|absence|absent|holiday|leave|time[\s-]?off|vacation|\bTOR\b|\bPTO\b)`)
)

// shiftFromBlock resolves a day block against the (weekday, day-of-month)
// lookup and classifies its detail lines. An off-vocabulary line wins over a
// parsable time range when both appear. Blocks whose day cannot be resolved
// are dropped.
func shiftFromBlock(b DayBlock, lookup map[dateutil.DayKey]time.Time) (model.Shift, bool) {
	date, ok := lookup[dateutil.DayKey{Day: b.Day, DayOfMonth: b.DateNum}]
	if !ok {
		return model.Shift{}, false
	}

	shift := model.Shift{
		Date: date.Format(dateutil.ISODate),
		Day:  dateutil.WeekdayAbbr(date),
	}

	for _, d := range b.Details {
		if offVocabRe.MatchString(d) {
			note := d
			shift.Off = true
			shift.Note = &note
			return shift, true
		}
	}

	joined := strings.Join(b.Details, " ")
	if m := timeRangeRe.FindStringSubmatch(joined); m != nil {
		start := dateutil.NormalizeClock(m[1])
		end := dateutil.NormalizeClock(m[2])
		shift.Start = &start
		shift.End = &end
		return shift, true
	}
	if joined != "" {
		shift.Note = &joined
	}
	return shift, true
}

// ScrapedSchedule normalizes one or more weeks of scraped schedule text into
// sorted canonical shifts. Each week resolves its bare day numbers against
// its own lookup window. Returns ErrNoRecords only when the pages, taken
// together, produce no resolvable day at all.
func ScrapedSchedule(weeks []ScrapedWeek, ref time.Time) ([]model.Shift, error) {
	byDate := make(map[string]*model.Shift)
	sawText := false

	for _, w := range weeks {
		if strings.TrimSpace(w.Text) != "" {
			sawText = true
		}
		blocks, err := SegmentDays(w.Text)
		if err != nil {
			// A week with no recognizable boundaries degrades to empty;
			// the all-weeks-empty case is handled below.
			continue
		}
		lookup := dateutil.BuildDayLookup(ref, w.Offset)
		for _, b := range blocks {
			shift, ok := shiftFromBlock(b, lookup)
			if !ok {
				continue
			}
			s := shift
			byDate[s.Date] = &s
		}
	}

	if sawText && len(byDate) == 0 {
		return nil, ErrNoRecords
	}
	return drainShifts(byDate), nil
}
