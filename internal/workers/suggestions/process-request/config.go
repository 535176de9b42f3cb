// internal/workers/suggestions/process-request/config.go
package processrequest

import "time"

type Config struct {
	BatchSize  int
	SampleSize int
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		BatchSize:  5,
		SampleSize: 3,
		Timeout:    30 * time.Second,
	}
}
