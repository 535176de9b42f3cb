// internal/workers/suggestions/enrich-record/config.go
package enrichrecord

import "time"

type Config struct {
	Table   string
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Table:   "restaurants",
		Timeout: 5 * time.Second,
	}
}
