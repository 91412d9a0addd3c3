package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	Session struct {
		CookieName   string `yaml:"cookie_name" env:"SESSION_COOKIE_NAME"`
		TTL          string `yaml:"ttl" env:"SESSION_TTL"`
		CookieSecure bool   `yaml:"cookie_secure" env:"SESSION_COOKIE_SECURE"`
		// Store selects the backing store: "memory" or "redis"
		Store         string `yaml:"store" env:"SESSION_STORE"`
		RedisAddr     string `yaml:"redis_addr" env:"SESSION_REDIS_ADDR"`
		RedisPassword string `yaml:"redis_password" env:"SESSION_REDIS_PASSWORD"`
		RedisDB       int    `yaml:"redis_db" env:"SESSION_REDIS_DB"`
	} `yaml:"session"`

	Kakao struct {
		RESTAPIKey      string `yaml:"rest_api_key" env:"KAKAO_REST_API_KEY"`
		LocalBaseURL    string `yaml:"local_base_url" env:"KAKAO_LOCAL_BASE_URL"`
		MobilityBaseURL string `yaml:"mobility_base_url" env:"KAKAO_MOBILITY_BASE_URL"`
		Timeout         string `yaml:"timeout" env:"KAKAO_TIMEOUT"`
	} `yaml:"kakao"`

	Kafka struct {
		// Brokers is a comma-separated list; empty disables the producer
		Brokers string `yaml:"brokers" env:"KAFKA_BROKERS"`
		Topic   string `yaml:"topic" env:"KAFKA_TOPIC"`
	} `yaml:"kafka"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The config file is optional; env vars can carry everything
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// Override with environment variables
	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "tastemap"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	config.Session.CookieName = "sid"
	config.Session.TTL = "720h"
	config.Session.Store = "memory"
	config.Session.RedisAddr = "localhost:6379"

	config.Kakao.LocalBaseURL = "https://dapi.kakao.com"
	config.Kakao.MobilityBaseURL = "https://apis-navi.kakaomobility.com"
	config.Kakao.Timeout = "5s"

	config.Kafka.Topic = "tastemap.guild-activity"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	switch strings.ToLower(config.Session.Store) {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session store %q (expected memory or redis)", config.Session.Store)
	}

	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session TTL format: %w", err)
	}

	if _, err := time.ParseDuration(config.Kakao.Timeout); err != nil {
		return fmt.Errorf("invalid kakao timeout format: %w", err)
	}

	return nil
}

// IsDevelopment reports whether the server runs in development mode.
// Development mode exposes raw error messages in API responses.
func (c *Config) IsDevelopment() bool {
	return strings.ToLower(c.Server.Mode) != "production"
}

// GetPostgresConnectionString returns the postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// KafkaBrokerList splits the configured broker string into addresses.
// Returns nil when the producer is disabled.
func (c *Config) KafkaBrokerList() []string {
	if strings.TrimSpace(c.Kafka.Brokers) == "" {
		return nil
	}
	parts := strings.Split(c.Kafka.Brokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}
