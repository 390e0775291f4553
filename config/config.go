package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"

	"lotto/database"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP server configuration
	HTTPAddr       string
	AllowedOrigins []string

	// Auth configuration
	JWTSigningKey string
	TokenTTL      time.Duration

	// Lottery configuration
	DefaultJackpotILS int64
	Timezone          string

	// NATS configuration. Empty disables event publishing.
	NATSServers string

	// Environment is "development", "production" or "test"
	Environment string
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL from base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// Location resolves the configured timezone, falling back to UTC
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// load reads configuration from the environment. A .env file, when present,
// seeds variables that are not already set.
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		HTTPAddr:      getEnvWithDefault("HTTP_ADDR", ":8080"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		TokenTTL:      24 * time.Hour,

		DefaultJackpotILS: 2500000,
		Timezone:          getEnvWithDefault("TIMEZONE", "Asia/Jerusalem"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		Environment: getEnvWithDefault("ENVIRONMENT", "development"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				config.AllowedOrigins = append(config.AllowedOrigins, origin)
			}
		}
	}

	if jackpot := os.Getenv("DEFAULT_JACKPOT_ILS"); jackpot != "" {
		parsed, err := strconv.ParseInt(jackpot, 10, 64)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid DEFAULT_JACKPOT_ILS: %q", jackpot)
		}
		config.DefaultJackpotILS = parsed
	}

	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid TOKEN_TTL: %q", ttl)
		}
		config.TokenTTL = parsed
	}

	if config.Environment != "test" {
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.JWTSigningKey == "" {
			return nil, fmt.Errorf("JWT_SIGNING_KEY is required")
		}
	}

	return config, nil
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:       "test",
		HTTPAddr:          ":0",
		JWTSigningKey:     "test-signing-key",
		TokenTTL:          time.Hour,
		DefaultJackpotILS: 2500000,
		Timezone:          "UTC",
	}
}
