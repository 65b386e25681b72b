package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config is the root configuration for shiftwatch, stored in
// ~/.shiftwatch/config.json. The file supports single-line // comments for
// documentation purposes. Secrets never live in the file; they come from the
// environment (optionally via a .env file).
type Config struct {
	Portal PortalConfig `json:"portal"`
	SMTP   SMTPConfig   `json:"smtp"`
	Watch  WatchConfig  `json:"watch"`

	// Secrets, populated from the environment on Load.
	PortalPassword string `json:"-"`
	SMTPPassword   string `json:"-"`
}

// PortalConfig holds workforce-portal access settings.
type PortalConfig struct {
	// BaseURL is the root of the portal's REST API.
	BaseURL string `json:"base_url"`
	// TokenURL is the OAuth2 token endpoint for API access.
	TokenURL string `json:"token_url"`
	// ClientID identifies this tool to the token endpoint.
	ClientID string `json:"client_id"`
	// LoginURL is the browser login page, used when Source is "browser".
	LoginURL string `json:"login_url"`
	// ScheduleURL and TimecardURL are the pages the browser scraper visits.
	ScheduleURL string `json:"schedule_url"`
	TimecardURL string `json:"timecard_url"`
	// Username is the portal account name.
	Username string `json:"username"`
	// Source selects the acquisition path: "api" or "browser".
	Source string `json:"source"`
	// WeeksAhead is how many schedule weeks past the current one to fetch.
	WeeksAhead int `json:"weeks_ahead"`
	// Headless controls the scraper's browser mode.
	Headless bool `json:"headless"`
}

// SMTPConfig holds outgoing mail settings for alerts.
type SMTPConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
}

// WatchConfig holds settings for the long-running watch command.
type WatchConfig struct {
	IntervalMinutes int `json:"interval_minutes"`
}

const (
	// DefaultSource is the acquisition path used when none is configured.
	DefaultSource = "api"
	// DefaultWeeksAhead covers the current and the next posted week.
	DefaultWeeksAhead = 1
	// DefaultSMTPPort is the submission port most providers use.
	DefaultSMTPPort = 587
	// DefaultIntervalMinutes is the watch cadence.
	DefaultIntervalMinutes = 60
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		Portal: PortalConfig{
			Source:     DefaultSource,
			WeeksAhead: DefaultWeeksAhead,
			Headless:   true,
		},
		SMTP: SMTPConfig{
			Port:     DefaultSMTPPort,
			FromName: "shiftwatch",
		},
		Watch: WatchConfig{IntervalMinutes: DefaultIntervalMinutes},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// shiftwatch configuration – ~/.shiftwatch/config.json
//
// Secrets are never read from this file. Set them in the environment or in a
// .env file next to where you run shiftwatch:
//   SHIFTWATCH_PORTAL_PASSWORD  portal account password
//   SHIFTWATCH_SMTP_PASSWORD    SMTP account password
{
  // ── Workforce portal access ──────────────────────────────────────────────
  "portal": {
    // Root of the portal's REST API (used when "source" is "api").
    "base_url": "",

    // OAuth2 token endpoint and client ID for API access.
    "token_url": "",
    "client_id": "",

    // Browser pages (used when "source" is "browser").
    "login_url": "",
    "schedule_url": "",
    "timecard_url": "",

    // Portal account name.
    "username": "",

    // Acquisition path: "api" or "browser".
    "source": "api",

    // Schedule weeks past the current one to fetch (0 = current week only).
    "weeks_ahead": 1,

    // Run the scraper's browser headless.
    "headless": true
  },

  // ── Alert mail ───────────────────────────────────────────────────────────
  // Leave "host" empty to disable mail; alerts are then only logged.
  "smtp": {
    "host": "",
    "port": 587,
    "username": "",
    "from": "",
    "from_name": "shiftwatch",
    "to": ""
  },

  // ── Watch mode ───────────────────────────────────────────────────────────
  "watch": {
    "interval_minutes": 60
  }
}
`

// BaseDir returns the root data directory (~/.shiftwatch).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".shiftwatch"), nil
}

func configFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.shiftwatch/config.json, creating it with annotated defaults
// on first run, and pulls secrets from the environment. A .env file in the
// working directory is honored when present.
func Load() (Config, error) {
	// Best effort; a missing .env just means the variables are already set
	// (or absent).
	_ = godotenv.Load()

	cfg := defaultConfig()

	path, err := configFilePath()
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		cfg.loadSecrets()
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	if err := json.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get a
	// usable Config even if the user only partially fills in the file.
	if cfg.Portal.Source == "" {
		cfg.Portal.Source = DefaultSource
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = DefaultSMTPPort
	}
	if cfg.SMTP.FromName == "" {
		cfg.SMTP.FromName = "shiftwatch"
	}
	if cfg.Watch.IntervalMinutes <= 0 {
		cfg.Watch.IntervalMinutes = DefaultIntervalMinutes
	}

	cfg.loadSecrets()
	return cfg, nil
}

func (c *Config) loadSecrets() {
	c.PortalPassword = os.Getenv("SHIFTWATCH_PORTAL_PASSWORD")
	c.SMTPPassword = os.Getenv("SHIFTWATCH_SMTP_PASSWORD")
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
