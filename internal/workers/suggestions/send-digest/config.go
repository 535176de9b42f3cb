// internal/workers/suggestions/send-digest/config.go
package senddigest

import "time"

type Config struct {
	EmailEnabled bool
	FromEmail    string
	SMSEnabled   bool
	TopicARN     string
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		EmailEnabled: true,
		Timeout:      10 * time.Second,
	}
}
