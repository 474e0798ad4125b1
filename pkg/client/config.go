package client

import (
	"os"
	"time"
)

// Config is read from the environment by LoadConfig.
type Config struct {
	BaseURL      string
	Token        string
	PollInterval time.Duration
}

const (
	DefaultBaseURL      = "http://localhost:8080"
	DefaultPollInterval = 20 * time.Second
)

// LoadConfig reads HOTEL_API_URL, HOTEL_TOKEN and HOTEL_POLL_INTERVAL.
// Malformed or non-positive intervals fall back to the default.
func LoadConfig() Config {
	cfg := Config{
		BaseURL:      DefaultBaseURL,
		Token:        os.Getenv("HOTEL_TOKEN"),
		PollInterval: DefaultPollInterval,
	}
	if v := os.Getenv("HOTEL_API_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("HOTEL_POLL_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.PollInterval = d
		}
	}
	return cfg
}
