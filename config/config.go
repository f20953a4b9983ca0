// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/shopspring/decimal"

	"github.com/keystone/rent-engine/engine"
	"github.com/keystone/rent-engine/reports"
)

// Config holds application configuration. Engine knobs (fiscal anchor,
// historical floor, tolerance) are deployment-specific, never hard-coded.
type Config struct {
	Port     int    `env:"PORT" envDefault:"8080"`
	DBPath   string `env:"DB_PATH" envDefault:"rentbook.db"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// FiscalYearStartMonth is the month (1-12) the fiscal year begins on.
	FiscalYearStartMonth int `env:"FISCAL_YEAR_START_MONTH" envDefault:"4"`

	// MinTrackedPeriod is the historical floor ("YYYY-MM"): delinquency is
	// never computed for periods before it.
	MinTrackedPeriod string `env:"MIN_TRACKED_PERIOD" envDefault:"2024-01"`

	// DelinquencyTolerance is the shortfall below which a period is not
	// reported delinquent.
	DelinquencyTolerance string `env:"DELINQUENCY_TOLERANCE" envDefault:"0.01"`

	ReportSchedulerEnabled bool          `env:"REPORT_SCHEDULER_ENABLED" envDefault:"true"`
	ReportCheckInterval    time.Duration `env:"REPORT_CHECK_INTERVAL" envDefault:"1h"`
}

// Load reads configuration from the environment and validates the engine
// knobs eagerly, so a bad deployment fails at startup rather than on the
// first scan.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if _, err := cfg.ReportConfig(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ReportConfig converts the raw environment values into the typed report
// and scan configuration.
func (c *Config) ReportConfig() (reports.Config, error) {
	if c.FiscalYearStartMonth < 1 || c.FiscalYearStartMonth > 12 {
		return reports.Config{}, fmt.Errorf("FISCAL_YEAR_START_MONTH %d: month outside 1-12", c.FiscalYearStartMonth)
	}
	floor, err := engine.ParseRentalPeriod(c.MinTrackedPeriod)
	if err != nil {
		return reports.Config{}, fmt.Errorf("MIN_TRACKED_PERIOD: %w", err)
	}
	tolerance, err := decimal.NewFromString(c.DelinquencyTolerance)
	if err != nil || tolerance.IsNegative() {
		return reports.Config{}, fmt.Errorf("DELINQUENCY_TOLERANCE %q: want a non-negative decimal", c.DelinquencyTolerance)
	}

	return reports.Config{
		FiscalYearStart: time.Month(c.FiscalYearStartMonth),
		Scan: engine.ScanConfig{
			MinTrackedPeriod: floor,
			Tolerance:        tolerance,
		},
	}, nil
}
