package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shiftwatch/internal/config"
	"shiftwatch/internal/model"
	"shiftwatch/internal/store"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:       "export [schedule|timecard]",
	Short:     "Export the latest snapshot to stdout",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{store.NameSchedule, store.NameTimecard},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json")
}

func runExport(cmd *cobra.Command, args []string) error {
	name := store.NameSchedule
	if len(args) == 1 {
		name = args[0]
	}

	base, err := config.BaseDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	st := store.New(base)

	if name == store.NameTimecard {
		snap, err := st.LoadTimecard()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if snap == nil {
			snap = &model.TimecardSnapshot{}
		}
		if exportFormat == "json" {
			return printJSON(snap)
		}
		printTimecardCSV(snap.Entries)
		return nil
	}

	snap, err := st.LoadSchedule()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if snap == nil {
		snap = &model.ScheduleSnapshot{}
	}
	if exportFormat == "json" {
		return printJSON(snap)
	}
	printScheduleCSV(snap.Shifts)
	return nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintln(os.Stderr, "error encoding JSON:", err)
		os.Exit(2)
	}
	fmt.Println(string(data))
	return nil
}

func printScheduleCSV(shifts []model.Shift) {
	fmt.Println("date,day,start,end,off,note")
	for _, s := range shifts {
		fmt.Printf("%s,%s,%s,%s,%t,%s\n",
			s.Date, s.Day, deref(s.Start), deref(s.End), s.Off, csvEscape(deref(s.Note)))
	}
}

func printTimecardCSV(entries []model.TimecardEntry) {
	fmt.Println("date,day,clock_in_1,clock_out_1,clock_in_2,clock_out_2,pay_code,amount,shift_total,daily_total")
	for _, e := range entries {
		fmt.Printf("%s,%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			e.Date, e.Day,
			deref(e.ClockIn1), deref(e.ClockOut1), deref(e.ClockIn2), deref(e.ClockOut2),
			csvEscape(deref(e.PayCode)), deref(e.Amount), deref(e.ShiftTotal), deref(e.DailyTotal))
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
