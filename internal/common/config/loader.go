// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like DATABASE_POSTGRES_PASSWORD
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile tries the usual .env locations so binaries and tests can run
// from any directory.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders left in YAML values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "dining-concierge"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	if cfg.Gateway.ListenAddress == "" {
		cfg.Gateway.ListenAddress = ":8080"
	}
	if cfg.Gateway.SessionTTL <= 0 {
		cfg.Gateway.SessionTTL = 1800
	}
	if cfg.Gateway.RequestTimeout <= 0 {
		cfg.Gateway.RequestTimeout = 10000
	}
	if cfg.Gateway.NLU.Timeout <= 0 {
		cfg.Gateway.NLU.Timeout = 5000
	}

	if cfg.Queue.Name == "" {
		cfg.Queue.Name = "dining-requests"
	}
	if cfg.Queue.VisibilityTimeout <= 0 {
		cfg.Queue.VisibilityTimeout = 60
	}
	if cfg.Queue.MaxAttempts <= 0 {
		cfg.Queue.MaxAttempts = 3
	}

	if cfg.Search.Index == "" {
		cfg.Search.Index = "restaurants"
	}
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = 50
	}
	if cfg.Search.SampleSize <= 0 {
		cfg.Search.SampleSize = 3
	}
	if cfg.Search.Timeout <= 0 {
		cfg.Search.Timeout = 8000
	}

	if cfg.Worker.PollInterval <= 0 {
		cfg.Worker.PollInterval = 2000
	}
	if cfg.Worker.BatchSize <= 0 {
		cfg.Worker.BatchSize = 5
	}
	if cfg.Worker.Timeout <= 0 {
		cfg.Worker.Timeout = 30000
	}
	if cfg.Worker.MetricsAddress == "" {
		cfg.Worker.MetricsAddress = ":9102"
	}

	if cfg.Database.Postgres.MaxConnections <= 0 {
		cfg.Database.Postgres.MaxConnections = 10
	}
	if cfg.Database.Postgres.MaxIdle <= 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	if cfg.Ingest.YelpBaseURL == "" {
		cfg.Ingest.YelpBaseURL = "https://api.yelp.com/v3"
	}
	if cfg.Ingest.PerCuisine <= 0 {
		cfg.Ingest.PerCuisine = 200
	}
	if cfg.Ingest.Timeout <= 0 {
		cfg.Ingest.Timeout = 10000
	}
	if len(cfg.Ingest.Cuisines) == 0 {
		cfg.Ingest.Cuisines = []string{"Chinese", "Indian", "Italian", "Japanese", "Thai", "Mexican"}
	}
	if len(cfg.Ingest.Neighborhoods) == 0 {
		cfg.Ingest.Neighborhoods = []string{"Manhattan, NY"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	if cfg.Notifications.Email.Enabled && cfg.Notifications.Email.FromEmail == "" {
		return fmt.Errorf("notifications.email.from_email is required when email is enabled")
	}
	if cfg.Notifications.Email.Enabled && cfg.Notifications.AWS.Region == "" {
		return fmt.Errorf("notifications.aws.region is required when email is enabled")
	}
	if cfg.Search.MaxResults < cfg.Search.SampleSize {
		return fmt.Errorf("search.max_results must be >= search.sample_size")
	}
	return nil
}
