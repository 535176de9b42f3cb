// internal/workers/dialog/dining-hook/config.go
package dininghook

import "time"

type Config struct {
	EnqueueTimeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EnqueueTimeout: 5 * time.Second,
	}
}
