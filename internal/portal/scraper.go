package portal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"shiftwatch/internal/config"
	"shiftwatch/internal/normalize"
)

// Scraper drives a headless browser against the portal web UI. It is the
// acquisition path for timecard data (which has no API) and the fallback for
// schedule data.
type Scraper struct {
	cfg      config.PortalConfig
	password string
	log      *zap.Logger

	browser *rod.Browser
	cleanup func()
}

// NewScraper launches a browser and logs in to the portal. Close must be
// called when done.
func NewScraper(ctx context.Context, cfg config.PortalConfig, password string, log *zap.Logger) (*Scraper, error) {
	l := launcher.New().Headless(cfg.Headless)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	s := &Scraper{
		cfg:      cfg,
		password: password,
		log:      log,
		browser:  browser,
		cleanup:  l.Cleanup,
	}
	if err := s.login(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close shuts the browser down.
func (s *Scraper) Close() {
	if s.browser != nil {
		_ = s.browser.Close()
	}
	if s.cleanup != nil {
		s.cleanup()
	}
}

// login submits the portal sign-in form.
func (s *Scraper) login() error {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: s.cfg.LoginURL})
	if err != nil {
		return fmt.Errorf("opening login page: %w", err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("loading login page: %w", err)
	}

	user, err := page.Element(`input[name="username"]`)
	if err != nil {
		return fmt.Errorf("finding username field: %w", err)
	}
	if err := user.Input(s.cfg.Username); err != nil {
		return fmt.Errorf("entering username: %w", err)
	}

	pass, err := page.Element(`input[name="password"]`)
	if err != nil {
		return fmt.Errorf("finding password field: %w", err)
	}
	if err := pass.Input(s.password); err != nil {
		return fmt.Errorf("entering password: %w", err)
	}

	submit, err := page.Element(`button[type="submit"]`)
	if err != nil {
		return fmt.Errorf("finding submit button: %w", err)
	}
	if err := submit.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("submitting login form: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for login to complete: %w", err)
	}

	s.log.Info("portal login complete", zap.String("user", s.cfg.Username))
	return nil
}

// pageText opens a URL and returns the visible body text.
func (s *Scraper) pageText(url string) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", url, err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}
	// Give the schedule widget a beat to render its day cells.
	page.WaitRequestIdle(2*time.Second, nil, nil, nil)()

	body, err := page.Element("body")
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", url, err)
	}
	text, err := body.Text()
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", url, err)
	}
	return text, nil
}

// pageHTML opens a URL and returns the rendered HTML.
func (s *Scraper) pageHTML(url string) (string, error) {
	page, err := s.browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", url, err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return "", fmt.Errorf("loading %s: %w", url, err)
	}
	page.WaitRequestIdle(2*time.Second, nil, nil, nil)()

	html, err := page.HTML()
	if err != nil {
		return "", fmt.Errorf("reading HTML from %s: %w", url, err)
	}
	return html, nil
}

// FetchScheduleWeeks captures the schedule page text for the current week
// and weeksAhead following weeks.
func (s *Scraper) FetchScheduleWeeks(weeksAhead int) ([]normalize.ScrapedWeek, error) {
	var weeks []normalize.ScrapedWeek
	for offset := 0; offset <= weeksAhead; offset++ {
		url := s.cfg.ScheduleURL
		if offset > 0 {
			url = fmt.Sprintf("%s?week=%d", s.cfg.ScheduleURL, offset)
		}
		text, err := s.pageText(url)
		if err != nil {
			return nil, fmt.Errorf("fetching schedule week %d: %w", offset, err)
		}
		weeks = append(weeks, normalize.ScrapedWeek{Offset: offset, Text: text})
	}
	return weeks, nil
}

// FetchTimecardRows captures the current and previous pay-period tables and
// returns their rows as cell maps keyed by column name.
func (s *Scraper) FetchTimecardRows() (current, previous []map[string]string, err error) {
	html, err := s.pageHTML(s.cfg.TimecardURL)
	if err != nil {
		return nil, nil, err
	}
	current, err = ParseTimecardTable(html)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing current period: %w", err)
	}

	prevHTML, err := s.pageHTML(s.cfg.TimecardURL + "?period=previous")
	if err != nil {
		// The previous period is best effort; a portal without it still
		// yields a usable current window.
		s.log.Warn("previous pay period unavailable", zap.Error(err))
		return current, nil, nil
	}
	previous, err = ParseTimecardTable(prevHTML)
	if err != nil {
		s.log.Warn("previous pay period unparsable", zap.Error(err))
		return current, nil, nil
	}
	return current, previous, nil
}

// ParseTimecardTable extracts the timecard table from rendered HTML as one
// cell map per row, keyed by the header cell text. Header prefixes vary by
// portal version; the normalizer matches columns by suffix.
func ParseTimecardTable(html string) ([]map[string]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing timecard HTML: %w", err)
	}

	table := doc.Find("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		return strings.Contains(t.Find("th").Text(), "Punch")
	}).First()
	if table.Length() == 0 {
		return nil, nil
	}

	var headers []string
	table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
		headers = append(headers, strings.TrimSpace(th.Text()))
	})

	var rows []map[string]string
	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		row := make(map[string]string, len(headers))
		tr.Find("td").Each(func(i int, td *goquery.Selection) {
			if i < len(headers) {
				row[headers[i]] = strings.TrimSpace(td.Text())
			}
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows, nil
}
