package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server      ServerConfig    `yaml:"server"`
	Auth        AuthConfig      `yaml:"auth"`
	Sessions    SessionsConfig  `yaml:"sessions"`
	RateLimit   RateLimitConfig `yaml:"rate_limit"`
	Logging     LoggingConfig   `yaml:"logging"`
	Theme       ThemeConfig     `yaml:"theme"`
	Environment string          `yaml:"environment"`
}

type ServerConfig struct {
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	JWTExpiry time.Duration `yaml:"jwt_expiry"`
}

type SessionsConfig struct {
	IdleTimeout   time.Duration `yaml:"idle_timeout"`
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

type RateLimitConfig struct {
	PublicPerMinute int `yaml:"public_per_minute"`
	LoginPerMinute  int `yaml:"login_per_minute"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type ThemeConfig struct {
	Default string `yaml:"default"`
}

// Load builds configuration from environment variables. An optional YAML
// file, given by path, is applied first; env vars override it.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)
	cfg.Server.BaseURL = getEnv("SERVER_BASE_URL", cfg.Server.BaseURL)
	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpiry = getEnvDuration("JWT_EXPIRY", cfg.Auth.JWTExpiry)
	cfg.Sessions.IdleTimeout = getEnvDuration("SESSION_IDLE_TIMEOUT", cfg.Sessions.IdleTimeout)
	cfg.Sessions.SweepInterval = getEnvDuration("SESSION_SWEEP_INTERVAL", cfg.Sessions.SweepInterval)
	cfg.RateLimit.PublicPerMinute = getEnvInt("RATE_LIMIT_PUBLIC", cfg.RateLimit.PublicPerMinute)
	cfg.RateLimit.LoginPerMinute = getEnvInt("RATE_LIMIT_LOGIN", cfg.RateLimit.LoginPerMinute)
	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)
	cfg.Theme.Default = getEnv("THEME_DEFAULT", cfg.Theme.Default)
	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)

	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			BaseURL: "http://localhost:8080",
		},
		Auth: AuthConfig{
			JWTExpiry: 24 * time.Hour,
		},
		Sessions: SessionsConfig{
			IdleTimeout:   24 * time.Hour,
			SweepInterval: 30 * time.Minute,
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: 120,
			LoginPerMinute:  10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Theme: ThemeConfig{
			Default: "light",
		},
		Environment: "development",
	}
}

// fileConfig mirrors Config for YAML decoding. Durations are strings so the
// file can say "30m" instead of nanosecond counts.
type fileConfig struct {
	Server struct {
		Host    *string `yaml:"host"`
		Port    *int    `yaml:"port"`
		BaseURL *string `yaml:"base_url"`
	} `yaml:"server"`
	Auth struct {
		JWTSecret *string `yaml:"jwt_secret"`
		JWTExpiry *string `yaml:"jwt_expiry"`
	} `yaml:"auth"`
	Sessions struct {
		IdleTimeout   *string `yaml:"idle_timeout"`
		SweepInterval *string `yaml:"sweep_interval"`
	} `yaml:"sessions"`
	RateLimit struct {
		PublicPerMinute *int `yaml:"public_per_minute"`
		LoginPerMinute  *int `yaml:"login_per_minute"`
	} `yaml:"rate_limit"`
	Logging struct {
		Level  *string `yaml:"level"`
		Format *string `yaml:"format"`
	} `yaml:"logging"`
	Theme struct {
		Default *string `yaml:"default"`
	} `yaml:"theme"`
	Environment *string `yaml:"environment"`
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var file fileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.Server.Host, file.Server.Host)
	setInt(&cfg.Server.Port, file.Server.Port)
	setString(&cfg.Server.BaseURL, file.Server.BaseURL)
	setString(&cfg.Auth.JWTSecret, file.Auth.JWTSecret)
	if err := setDuration(&cfg.Auth.JWTExpiry, file.Auth.JWTExpiry); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := setDuration(&cfg.Sessions.IdleTimeout, file.Sessions.IdleTimeout); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := setDuration(&cfg.Sessions.SweepInterval, file.Sessions.SweepInterval); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	setInt(&cfg.RateLimit.PublicPerMinute, file.RateLimit.PublicPerMinute)
	setInt(&cfg.RateLimit.LoginPerMinute, file.RateLimit.LoginPerMinute)
	setString(&cfg.Logging.Level, file.Logging.Level)
	setString(&cfg.Logging.Format, file.Logging.Format)
	setString(&cfg.Theme.Default, file.Theme.Default)
	setString(&cfg.Environment, file.Environment)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string) error {
	if src == nil {
		return nil
	}
	parsed, err := time.ParseDuration(*src)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
