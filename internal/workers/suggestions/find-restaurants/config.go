// internal/workers/suggestions/find-restaurants/config.go
package findrestaurants

import "time"

type Config struct {
	Index      string
	MaxResults int
	SampleSize int
	Timeout    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:      "restaurants",
		MaxResults: 50,
		SampleSize: 3,
		Timeout:    8 * time.Second,
	}
}
