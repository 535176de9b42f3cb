// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Gateway       GatewayConfig      `mapstructure:"gateway"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Queue         QueueConfig        `mapstructure:"queue"`
	Search        SearchConfig       `mapstructure:"search"`
	Worker        WorkerConfig       `mapstructure:"worker"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Ingest        IngestConfig       `mapstructure:"ingest"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// GatewayConfig holds settings for the chat gateway binary.
type GatewayConfig struct {
	ListenAddress  string `mapstructure:"listen_address"`
	SessionTTL     int    `mapstructure:"session_ttl"`     // seconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
	NLU            struct {
		Endpoint string `mapstructure:"endpoint"`
		APIKey   string `mapstructure:"api_key"`
		Timeout  int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"nlu"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// QueueConfig holds settings for the request queue.
type QueueConfig struct {
	Name              string `mapstructure:"name"`
	VisibilityTimeout int    `mapstructure:"visibility_timeout"` // seconds
	MaxAttempts       int    `mapstructure:"max_attempts"`
}

// SearchConfig holds settings for the restaurant search index.
type SearchConfig struct {
	Index      string `mapstructure:"index"`
	MaxResults int    `mapstructure:"max_results"`
	SampleSize int    `mapstructure:"sample_size"`
	Timeout    int    `mapstructure:"timeout"` // milliseconds
}

// WorkerConfig holds settings for the suggestion worker loop.
type WorkerConfig struct {
	PollInterval   int    `mapstructure:"poll_interval"` // milliseconds
	BatchSize      int    `mapstructure:"batch_size"`
	Timeout        int    `mapstructure:"timeout"` // milliseconds, per message
	MetricsAddress string `mapstructure:"metrics_address"`
}

// NotificationConfig holds settings for the suggestion digest dispatch.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled  bool   `mapstructure:"enabled"`
		SenderID string `mapstructure:"sender_id"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sms"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// IngestConfig holds settings for the restaurant-ingest tool.
type IngestConfig struct {
	YelpAPIKey    string   `mapstructure:"yelp_api_key"`
	YelpBaseURL   string   `mapstructure:"yelp_base_url"`
	Cuisines      []string `mapstructure:"cuisines"`
	Neighborhoods []string `mapstructure:"neighborhoods"`
	PerCuisine    int      `mapstructure:"per_cuisine"`
	Timeout       int      `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
