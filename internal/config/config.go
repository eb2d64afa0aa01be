package config

import (
	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort        string `mapstructure:"SERVER_PORT"`
	DataDir           string `mapstructure:"DATA_DIR"`
	FirecrawlAPIKey   string `mapstructure:"FIRECRAWL_API_KEY"`
	FirecrawlURL      string `mapstructure:"FIRECRAWL_URL"`
	SearchRetries     int    `mapstructure:"SEARCH_RETRIES"`
	SearchRetryDelay  int    `mapstructure:"SEARCH_RETRY_DELAY"`   // in seconds
	SearchRateLimitMS int    `mapstructure:"SEARCH_RATE_LIMIT_MS"` // min interval between provider calls
	DownloadWorkers   int    `mapstructure:"DOWNLOAD_WORKERS"`
	DownloadTimeout   int    `mapstructure:"DOWNLOAD_TIMEOUT"` // per-request, in seconds
	UserAgent         string `mapstructure:"USER_AGENT"`
	DocClassesFile    string `mapstructure:"DOC_CLASSES_FILE"`
}

// Load reads configuration from file or environment variables.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	// Attempt to read the .env file, but don't fail if it's not present
	// This allows configuration purely through environment variables in production
	_ = viper.ReadInConfig()

	// Set default values
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATA_DIR", "data/raw_docs")
	viper.SetDefault("FIRECRAWL_URL", "https://api.firecrawl.dev/search")
	viper.SetDefault("SEARCH_RETRIES", 3)
	viper.SetDefault("SEARCH_RETRY_DELAY", 2)
	viper.SetDefault("SEARCH_RATE_LIMIT_MS", 500)
	viper.SetDefault("DOWNLOAD_WORKERS", 5)
	viper.SetDefault("DOWNLOAD_TIMEOUT", 30)
	viper.SetDefault("USER_AGENT", "docuscraper/1.0")

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
