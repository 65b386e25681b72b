package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"shiftwatch/internal/config"
	"shiftwatch/internal/dateutil"
	"shiftwatch/internal/logging"
	"shiftwatch/internal/sched"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the check on an interval until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	r, err := buildRunner(cfg, log, false, false)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	interval := time.Duration(cfg.Watch.IntervalMinutes) * time.Minute
	s := sched.New(log)
	s.AddJob("check", interval, func(ctx context.Context) error {
		_, err := r.Run(ctx, dateutil.StartOfDay(time.Now()))
		return err
	})
	s.Start()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	s.Stop()
	return nil
}
