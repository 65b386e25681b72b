package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shiftwatch/internal/alert"
	"shiftwatch/internal/config"
	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/logging"
	"shiftwatch/internal/portal"
	"shiftwatch/internal/runner"
	"shiftwatch/internal/store"
)

var (
	runDate     string
	runDryRun   bool
	runNoNotify bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, diff and alert once",
	Args:  cobra.NoArgs,
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&runDate, "date", "", "Reference date (YYYY-MM-DD); defaults to today")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Print the alert instead of emailing it")
	runCmd.Flags().BoolVar(&runNoNotify, "no-notify", false, "Update snapshots without notifying")
}

func referenceDate() (time.Time, error) {
	if runDate == "" {
		return dateutil.StartOfDay(time.Now()), nil
	}
	d, err := time.Parse(dateutil.ISODate, runDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date value %q: %w", runDate, err)
	}
	return d, nil
}

// buildRunner assembles the collaborators for one check cycle from config.
func buildRunner(cfg config.Config, log *zap.Logger, dryRun, noNotify bool) (*runner.Runner, error) {
	base, err := config.BaseDir()
	if err != nil {
		return nil, err
	}

	browser := &portal.BrowserSource{Cfg: cfg.Portal, Password: cfg.PortalPassword, Log: log}

	var schedule runner.ScheduleSource
	switch cfg.Portal.Source {
	case "browser":
		schedule = browser
	default:
		schedule = &portal.APIScheduleSource{Cfg: cfg.Portal, Password: cfg.PortalPassword}
	}

	var notifier alert.Notifier
	switch {
	case noNotify:
		notifier = nil
	case dryRun:
		notifier = alert.Console{}
	default:
		notifier = alert.NewMailer(cfg.SMTP, cfg.SMTPPassword, log)
	}

	return &runner.Runner{
		Schedule: schedule,
		Timecard: browser,
		Store:    store.New(base),
		Notifier: notifier,
		Log:      log,
	}, nil
}

func runRun(cmd *cobra.Command, args []string) error {
	ref, err := referenceDate()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logging.New(verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	r, err := buildRunner(cfg, log, runDryRun, runNoNotify)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	report, err := r.Run(context.Background(), ref)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if report.Alerted {
		fmt.Printf("Changes detected (%d section(s)).\n", len(report.Sections))
	} else {
		fmt.Println("No changes.")
	}
	return nil
}
