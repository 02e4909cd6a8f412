// Package config provides configuration management for the bot.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/GuyAfik/MrKnowledgeBot/internal/constants"
	"github.com/joho/godotenv"
)

const defaultConfigFile = "config.json"

// Config holds the application configuration. Values are loaded from a
// .env file when present, then from environment variables, then from
// an optional JSON file; environment variables take precedence over
// file values.
type Config struct {
	// The Movie DB
	APIMovieToken string `json:"API_MOVIE_TOKEN"`
	MovieBaseURL  string `json:"MOVIE_BASE_URL"`
	VerifyTLS     bool   `json:"VERIFY_TLS"`

	// Chat transport
	BotToken    string `json:"BOT_TOKEN"`
	Port        string `json:"PORT"`
	OutboundURL string `json:"OUTBOUND_URL"`

	// Result aggregation
	PageLimit   int `json:"PAGE_LIMIT"`
	ResultLimit int `json:"RESULT_LIMIT"`

	// Storage settings
	DatabasePath string        `json:"DATABASE_PATH"`
	CacheSize    int           `json:"CACHE_SIZE"`
	CacheTTL     time.Duration `json:"-"`
}

// Load reads configuration from the environment and an optional JSON
// file. Returns an error only when the configuration is unusable.
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg := &Config{
		MovieBaseURL: constants.DefaultBaseURL,
		VerifyTLS:    true,
		Port:         constants.DefaultPort,
		PageLimit:    constants.DefaultPageLimit,
		ResultLimit:  constants.DefaultResultLimit,
		DatabasePath: "./cache.db",
		CacheSize:    constants.DefaultCacheSize,
		CacheTTL:     time.Duration(constants.DefaultCacheTTL) * time.Hour,
	}

	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if token := os.Getenv("API_MOVIE_TOKEN"); token != "" {
		c.APIMovieToken = token
	}
	if baseURL := os.Getenv("MOVIE_BASE_URL"); baseURL != "" {
		c.MovieBaseURL = baseURL
	}
	if botToken := os.Getenv("BOT_TOKEN"); botToken != "" {
		c.BotToken = botToken
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if outbound := os.Getenv("OUTBOUND_URL"); outbound != "" {
		c.OutboundURL = outbound
	}
	if dbPath := os.Getenv("DATABASE_PATH"); dbPath != "" {
		c.DatabasePath = dbPath
	}
	if verify := os.Getenv("VERIFY_TLS"); verify != "" {
		if parsed, err := strconv.ParseBool(verify); err == nil {
			c.VerifyTLS = parsed
		}
	}
	if limit := os.Getenv("PAGE_LIMIT"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			c.PageLimit = parsed
		}
	}
	if limit := os.Getenv("RESULT_LIMIT"); limit != "" {
		if parsed, err := strconv.Atoi(limit); err == nil && parsed > 0 {
			c.ResultLimit = parsed
		}
	}
	if size := os.Getenv("CACHE_SIZE"); size != "" {
		if parsed, err := strconv.Atoi(size); err == nil && parsed > 0 {
			c.CacheSize = parsed
		}
	}
	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if parsed, err := strconv.Atoi(ttl); err == nil && parsed > 0 {
			c.CacheTTL = time.Duration(parsed) * time.Hour
		}
	}
}

func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, c)
}

// Validate checks if the configuration is valid and clamps the result
// limit to the hard ceiling.
func (c *Config) Validate() error {
	if c.APIMovieToken == "" {
		return fmt.Errorf("API_MOVIE_TOKEN must be set")
	}
	if c.ResultLimit > constants.MaxResultLimit {
		c.ResultLimit = constants.MaxResultLimit
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
