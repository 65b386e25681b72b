package portal

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shiftwatch/internal/config"
	"shiftwatch/internal/model"
	"shiftwatch/internal/normalize"
)

// APIScheduleSource fetches the schedule through the portal API and
// normalizes it.
type APIScheduleSource struct {
	Cfg      config.PortalConfig
	Password string
	Opts     normalize.Options
}

// FetchSchedule acquires and canonicalizes the schedule window: the current
// week through WeeksAhead weeks out.
func (s *APIScheduleSource) FetchSchedule(ctx context.Context, ref time.Time) ([]model.Shift, error) {
	client, err := NewClient(ctx, s.Cfg, s.Password)
	if err != nil {
		return nil, err
	}
	from := ref.AddDate(0, 0, -7)
	to := ref.AddDate(0, 0, 7*(s.Cfg.WeeksAhead+1))
	bundle, err := client.FetchScheduleBundle(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return normalize.Schedule(bundle, s.Opts)
}

// BrowserSource fetches schedule and timecard data by scraping the web UI.
// One logged-in browser serves both acquisitions.
type BrowserSource struct {
	Cfg      config.PortalConfig
	Password string
	Log      *zap.Logger
}

// FetchSchedule scrapes the schedule pages and canonicalizes them.
func (s *BrowserSource) FetchSchedule(ctx context.Context, ref time.Time) ([]model.Shift, error) {
	scraper, err := NewScraper(ctx, s.Cfg, s.Password, s.Log)
	if err != nil {
		return nil, err
	}
	defer scraper.Close()

	weeks, err := scraper.FetchScheduleWeeks(s.Cfg.WeeksAhead)
	if err != nil {
		return nil, err
	}
	return normalize.ScrapedSchedule(weeks, ref)
}

// FetchTimecard scrapes both pay-period tables and canonicalizes them into
// the trailing window ending at ref.
func (s *BrowserSource) FetchTimecard(ctx context.Context, ref time.Time) ([]model.TimecardEntry, error) {
	scraper, err := NewScraper(ctx, s.Cfg, s.Password, s.Log)
	if err != nil {
		return nil, err
	}
	defer scraper.Close()

	currentRows, previousRows, err := scraper.FetchTimecardRows()
	if err != nil {
		return nil, err
	}
	current := normalize.TimecardRows(currentRows)
	previous := normalize.TimecardRows(previousRows)
	return normalize.CombineTimecard(previous, current, ref), nil
}
