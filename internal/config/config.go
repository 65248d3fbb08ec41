package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Error describes a missing, unreadable, or invalid configuration.
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Reason, e.Err)
	}
	return "config: " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

// Config holds all application configuration. Immutable after Load.
type Config struct {
	Tickers      []string `yaml:"tickers"`
	StartDate    string   `yaml:"start_date"`
	EndDate      string   `yaml:"end_date"`
	LookbackDays int      `yaml:"lookback_days"`
	OutputPath   string   `yaml:"output_path"`
	ReportFormat string   `yaml:"report_format"`
	DataSource   struct {
		BaseURL        string `yaml:"base_url"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		MaxRetries     int    `yaml:"max_retries"`
	} `yaml:"data_source"`
	Schedule string `yaml:"schedule"`
	Proxy    string `yaml:"proxy"`

	start time.Time
	end   time.Time
}

// Load reads config from a YAML file, applies environment variable
// overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Reason: "read " + path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &Error{Reason: "parse " + path, Err: err}
	}

	// Environment variable overrides
	if v := os.Getenv("MARKET_TICKERS"); v != "" {
		cfg.Tickers = splitTickers(v)
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("REPORT_FORMAT"); v != "" {
		cfg.ReportFormat = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.OutputPath == "" {
		cfg.OutputPath = "reports/market_report.pdf"
	}
	if cfg.ReportFormat == "" {
		cfg.ReportFormat = "pdf"
	}
	if cfg.DataSource.TimeoutSeconds <= 0 {
		cfg.DataSource.TimeoutSeconds = 30
	}
	if cfg.DataSource.MaxRetries < 0 {
		cfg.DataSource.MaxRetries = 0
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Tickers) == 0 {
		return &Error{Reason: "tickers must be a non-empty list"}
	}
	for _, t := range c.Tickers {
		if strings.TrimSpace(t) == "" {
			return &Error{Reason: "tickers must not contain empty symbols"}
		}
	}

	hasDates := c.StartDate != "" || c.EndDate != ""
	switch {
	case hasDates && c.LookbackDays > 0:
		return &Error{Reason: "start_date/end_date and lookback_days are mutually exclusive"}
	case hasDates:
		if c.StartDate == "" || c.EndDate == "" {
			return &Error{Reason: "start_date and end_date must both be set"}
		}
		start, err := time.Parse(dateLayout, c.StartDate)
		if err != nil {
			return &Error{Reason: "invalid start_date", Err: err}
		}
		end, err := time.Parse(dateLayout, c.EndDate)
		if err != nil {
			return &Error{Reason: "invalid end_date", Err: err}
		}
		if !start.Before(end) {
			return &Error{Reason: fmt.Sprintf("start_date %s must be before end_date %s", c.StartDate, c.EndDate)}
		}
		c.start, c.end = start, end
	case c.LookbackDays > 0:
		// rolling window, resolved per run in Range
	default:
		return &Error{Reason: "a date range is required: set start_date/end_date or lookback_days"}
	}

	switch c.ReportFormat {
	case "pdf", "txt":
	default:
		return &Error{Reason: fmt.Sprintf("report_format must be pdf or txt, got %q", c.ReportFormat)}
	}

	if c.Schedule != "" && strings.TrimSpace(c.Schedule) == "" {
		return &Error{Reason: "schedule must be a cron expression"}
	}
	return nil
}

// Range returns the date range to fetch. With lookback_days configured the
// window ends today and is recomputed on every call, so scheduled runs roll
// forward.
func (c *Config) Range() (start, end time.Time) {
	if c.LookbackDays > 0 {
		end = time.Now().Truncate(24 * time.Hour)
		start = end.AddDate(0, 0, -c.LookbackDays)
		return start, end
	}
	return c.start, c.end
}

func splitTickers(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
