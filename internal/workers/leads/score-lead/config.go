package scorelead

import "time"

type Config struct {
	Timeout            time.Duration
	QualifiedThreshold float64
	HotLeadThreshold   float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:            10 * time.Second,
		QualifiedThreshold: 70,
		HotLeadThreshold:   90,
	}
}
