package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	SMS       SMSConfig
	OTP       OTPConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port            string
	Env             string // dev or prod
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	TrustedOrigins  []string
}

type DatabaseConfig struct {
	Driver      string // postgres or sqlite
	Host        string
	Port        string
	User        string
	Password    string
	DBName      string
	SSLMode     string
	SQLitePath  string
	AutoMigrate bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SMSConfig holds the gateway credentials. The API key and originating line
// number are read once at startup.
type SMSConfig struct {
	BaseURL    string
	APIKey     string
	LineNumber string
	Timeout    time.Duration
}

type OTPConfig struct {
	TTL         time.Duration
	MaxAttempts int
}

type TelemetryConfig struct {
	// OTLP HTTP endpoint URL, e.g. http://localhost:4318; tracing is disabled when empty
	OTLPEndpoint string
	ServiceName  string
}

// Load reads configuration from environment variables.
// A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Env:             getEnv("APP_ENV", "dev"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 15*time.Second),
			TrustedOrigins:  getSliceEnv("TRUSTED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: loadDatabase(),
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		SMS: SMSConfig{
			BaseURL:    getEnv("SMS_BASE_URL", "https://api.sms.ir/v1"),
			APIKey:     getEnv("SMS_API_KEY", ""),
			LineNumber: getEnv("SMS_LINE_NUMBER", ""),
			Timeout:    getDurationEnv("SMS_TIMEOUT", 10*time.Second),
		},
		OTP: OTPConfig{
			TTL:         getDurationEnv("OTP_TTL", 90*time.Second),
			MaxAttempts: getIntEnv("OTP_MAX_ATTEMPTS", 5),
		},
		Telemetry: TelemetryConfig{
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "library-api"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadDatabase reads only the database section. Tools that never serve
// requests use it so they do not need the SMS or Redis settings.
func LoadDatabase() (DatabaseConfig, error) {
	_ = godotenv.Load()

	cfg := loadDatabase()
	if err := cfg.validate(); err != nil {
		return DatabaseConfig{}, err
	}
	return cfg, nil
}

func loadDatabase() DatabaseConfig {
	return DatabaseConfig{
		Driver:      getEnv("DB_DRIVER", "postgres"),
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", "postgres"),
		DBName:      getEnv("DB_NAME", "library"),
		SSLMode:     getEnv("DB_SSLMODE", "disable"),
		SQLitePath:  getEnv("DB_SQLITE_PATH", "library.db"),
		AutoMigrate: getBoolEnv("DB_AUTO_MIGRATE", true),
	}
}

func (c *DatabaseConfig) validate() error {
	switch c.Driver {
	case "postgres", "sqlite":
		return nil
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Driver)
	}
}

func (c *Config) validate() error {
	if err := c.Database.validate(); err != nil {
		return err
	}

	if c.OTP.TTL <= 0 {
		return fmt.Errorf("OTP_TTL must be positive")
	}
	if c.OTP.MaxAttempts < 1 {
		return fmt.Errorf("OTP_MAX_ATTEMPTS must be at least 1, got %d", c.OTP.MaxAttempts)
	}

	// the dev environment runs with the logging SMS sender
	if !c.Server.IsDevelopment() {
		if c.SMS.APIKey == "" {
			return fmt.Errorf("SMS_API_KEY is required outside dev")
		}
		if c.SMS.LineNumber == "" {
			return fmt.Errorf("SMS_LINE_NUMBER is required outside dev")
		}
	}

	return nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Address returns Redis connection address (host:port)
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Address returns the listen address for the HTTP server
func (c *ServerConfig) Address() string {
	return ":" + c.Port
}

// IsDevelopment returns true if the environment is set to dev
func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "dev"
}

// HasCredentials reports whether both API key and line number are set
func (c *SMSConfig) HasCredentials() bool {
	return c.APIKey != "" && c.LineNumber != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return b
}

// getDurationEnv reads a whole number of seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	seconds, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return time.Duration(seconds) * time.Second
}

func getSliceEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}

	if len(result) == 0 {
		return defaultValue
	}

	return result
}
