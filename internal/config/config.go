package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Cache    CacheConfig
	Logger   LoggerConfig
	Metrics  MetricsConfig
	Report   ReportConfig
}

// ServerConfig represents gRPC server configuration
type ServerConfig struct {
	Port     int
	APIToken string
	SeedDemo bool
}

// DatabaseConfig represents PostgreSQL configuration
type DatabaseConfig struct {
	ConnStr      string // Takes precedence over the individual fields when set
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	StartupDelay time.Duration
}

// CacheConfig represents Redis report cache configuration
type CacheConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// LoggerConfig represents logging configuration
type LoggerConfig struct {
	Level  string
	Format string // "json" or "text"
}

// MetricsConfig represents the Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// ReportConfig tunes how reports are built
type ReportConfig struct {
	// StrictOrdering rejects balance changes that are not sorted by date
	// instead of aggregating them as they come
	StrictOrdering bool
}

// Load loads configuration from the environment, reading an optional .env file first
func Load() *Config {
	// A missing .env file is fine, the environment is enough
	_ = godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:     getEnvInt("GRPC_PORT", 8080),
			APIToken: getEnv("API_TOKEN", "dev-token"),
			SeedDemo: getEnvBool("SEED_DEMO", false),
		},
		Database: DatabaseConfig{
			ConnStr:      getEnv("DB_CONN_STR", ""),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Name:         getEnv("DB_NAME", "wealthtrack"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
			StartupDelay: getEnvDuration("DB_STARTUP_DELAY", 2*time.Second),
		},
		Cache: CacheConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", false),
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			TTL:      getEnvDuration("REPORT_CACHE_TTL", 10*time.Minute),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Port:    getEnvInt("METRICS_PORT", 9090),
		},
		Report: ReportConfig{
			StrictOrdering: getEnvBool("STRICT_ORDERING", false),
		},
	}
}

// ConnectionString returns the lib/pq connection string
func (c DatabaseConfig) ConnectionString() string {
	if c.ConnStr != "" {
		return c.ConnStr
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.Host, c.Port, c.User, c.Password, c.Name)
}

// GRPCAddr returns the listen address of the gRPC server
func (c ServerConfig) GRPCAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Addr returns the listen address of the metrics endpoint
func (c MetricsConfig) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
