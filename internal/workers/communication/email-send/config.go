package emailsend

import (
	"fmt"
	"time"
)

type Config struct {
	Enabled        bool          `mapstructure:"enabled"`
	MaxJobsActive  int           `mapstructure:"max_jobs_active"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Provider       string        `mapstructure:"provider"` // "ses" or "smtp"
	FromEmail      string        `mapstructure:"from_email"`
	DailySendLimit int           `mapstructure:"daily_send_limit"`
	SMTPHost       string        `mapstructure:"smtp_host"`
	SMTPPort       int           `mapstructure:"smtp_port"`
	SMTPUsername   string        `mapstructure:"smtp_username"`
	SMTPPassword   string        `mapstructure:"smtp_password"`
	UseTLS         bool          `mapstructure:"use_tls"`
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		MaxJobsActive:  5,
		Timeout:        30 * time.Second,
		Provider:       "ses",
		DailySendLimit: 50,
		SMTPPort:       587,
		UseTLS:         true,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.Provider != "ses" && c.Provider != "smtp" {
		return fmt.Errorf("provider must be ses or smtp")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from_email is required")
	}
	if c.DailySendLimit <= 0 {
		return fmt.Errorf("daily_send_limit must be positive")
	}
	if c.Provider == "smtp" {
		if c.SMTPHost == "" {
			return fmt.Errorf("smtp_host is required")
		}
		if c.SMTPPort <= 0 || c.SMTPPort > 65535 {
			return fmt.Errorf("smtp_port must be between 1 and 65535")
		}
	}
	return nil
}
