package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"shiftwatch/internal/config"
	"shiftwatch/internal/diff"
	"shiftwatch/internal/store"
)

var showCmd = &cobra.Command{
	Use:       "show [schedule|timecard]",
	Short:     "Show the latest persisted snapshot",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{store.NameSchedule, store.NameTimecard},
	RunE:      runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
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

	switch name {
	case store.NameTimecard:
		snap, err := st.LoadTimecard()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if snap == nil {
			fmt.Println("No timecard snapshot yet. Run `shiftwatch run` first.")
			return nil
		}
		for _, e := range snap.Entries {
			fmt.Printf("%-3s %-5s  in %-6s out %-6s", e.Day, e.Date, orDash(e.ClockIn1), orDash(e.ClockOut1))
			if e.PayCode != nil {
				fmt.Printf("  %s %s", *e.PayCode, orDash(e.Amount))
			}
			fmt.Println()
		}

	default:
		snap, err := st.LoadSchedule()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		if snap == nil {
			fmt.Println("No schedule snapshot yet. Run `shiftwatch run` first.")
			return nil
		}
		for _, s := range snap.Shifts {
			fmt.Printf("%-3s %s  %s\n", s.Day, s.Date, diff.FormatShift(s))
		}
	}
	return nil
}

func orDash(v *string) string {
	if v == nil || *v == "" {
		return diff.NullPlaceholder
	}
	return *v
}
