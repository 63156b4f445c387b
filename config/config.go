package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client settings. The backend owns all chat and widget
// data; nothing here is more than connection and presentation preferences.
type Config struct {
	ServerURL      string `json:"server_url"`
	UserID         string `json:"user_id"`
	RequestTimeout int    `json:"request_timeout_seconds"`
	Theme          string `json:"theme"`
	Debug          bool   `json:"debug"`
}

func DefaultConfig() *Config {
	cfg := &Config{
		ServerURL:      "http://localhost:8000",
		UserID:         "default_user",
		RequestTimeout: 30,
		Theme:          "auto",
		Debug:          false,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("WIDGETCHAT_SERVER_URL"); val != "" {
		c.ServerURL = val
	}
	if val := os.Getenv("WIDGETCHAT_USER_ID"); val != "" {
		c.UserID = val
	}
	if val := os.Getenv("WIDGETCHAT_TIMEOUT"); val != "" {
		if secs, err := strconv.Atoi(val); err == nil {
			c.RequestTimeout = secs
		}
	}
	if val := os.Getenv("WIDGETCHAT_THEME"); val != "" {
		c.Theme = val
	}
	if val := os.Getenv("WIDGETCHAT_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("server_url must not be empty")
	}
	if !strings.HasPrefix(c.ServerURL, "http://") && !strings.HasPrefix(c.ServerURL, "https://") {
		return fmt.Errorf("server_url must be an http(s) URL, got %q", c.ServerURL)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return fmt.Errorf("user_id must not be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout_seconds must be positive, got %d", c.RequestTimeout)
	}
	switch c.Theme {
	case "light", "dark", "auto":
	default:
		return fmt.Errorf("theme must be one of light, dark, auto, got %q", c.Theme)
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
