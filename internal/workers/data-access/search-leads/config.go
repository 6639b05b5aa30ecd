package searchleads

import "time"

type Config struct {
	Timeout   time.Duration
	IndexName string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   30 * time.Second,
		IndexName: "leads",
	}
}
