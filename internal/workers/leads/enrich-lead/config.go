package enrichlead

import "time"

type Config struct {
	SearchAPIBaseURL string
	SearchAPIKey     string
	SearchEngineID   string
	Timeout          time.Duration
	MaxResults       int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    30 * time.Second,
		MaxResults: 5,
	}
}
