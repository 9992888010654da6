// Package hltv fetches tournament demo files from HLTV result pages.
package hltv

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the scraper settings. All fields can be overridden from
// the environment so rate limits can be tuned without a rebuild.
type Config struct {
	BaseURL      string        `env:"HLTV_BASE_URL" envDefault:"https://www.hltv.org"`
	UserAgent    string        `env:"HLTV_USER_AGENT" envDefault:"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"`
	RequestDelay time.Duration `env:"HLTV_REQUEST_DELAY" envDefault:"2s"`
	Timeout      time.Duration `env:"HLTV_TIMEOUT" envDefault:"60s"`
}

// ConfigFromEnv builds a Config from defaults and HLTV_* variables.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse hltv env: %w", err)
	}
	return cfg, nil
}
