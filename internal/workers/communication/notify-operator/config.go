package notifyoperator

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	EmailTo      string
	EmailFrom    string
	SMSEnabled   bool
	SMSPhone     string
	SMSSenderID  string
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
	}
}
