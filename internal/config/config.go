package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BackendMode selects which implementation of the data access layer serves requests.
type BackendMode string

const (
	// ModeLive talks to the configured database, object storage and Redis.
	ModeLive BackendMode = "live"
	// ModeMock serves everything from process-local sample data.
	ModeMock BackendMode = "mock"
)

// ParseBackendMode validates a BACKEND_MODE value.
func ParseBackendMode(s string) (BackendMode, error) {
	switch BackendMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLive:
		return ModeLive, nil
	case ModeMock:
		return ModeMock, nil
	default:
		return "", fmt.Errorf("unknown BACKEND_MODE %q (want live or mock)", s)
	}
}

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	Environment string
	LogLevel    string
	SwaggerHost string

	Backend BackendConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Storage StorageConfig
	Site    SiteConfig
}

// BackendConfig is the "service URL" half of the backend credentials.
type BackendConfig struct {
	Mode        BackendMode
	DatabaseURL string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret     string
	AdminEmail    string
	AdminPassword string
	CookieSecure  bool
}

// StorageConfig selects S3 when Bucket is set, local disk otherwise.
type StorageConfig struct {
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	PublicURL      string
	Dir            string
	MaxUploadBytes int64
}

type SiteConfig struct {
	ContactRatePerMinute int
	LoginRatePerMinute   int
	SeedSamples          bool
}

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory and a CONFIG_FILE (any format viper reads) are
// consulted before the process environment; the environment always wins.
func Load() (*Config, error) {
	_ = godotenv.Load()

	viper.AutomaticEnv()
	if p := os.Getenv("CONFIG_FILE"); p != "" {
		viper.SetConfigFile(p)
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", p, err)
		}
	}

	mode, err := ParseBackendMode(getEnv("BACKEND_MODE", string(ModeLive)))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		SwaggerHost: getEnv("SWAGGER_HOST", ""),
		Backend: BackendConfig{
			Mode:        mode,
			DatabaseURL: getEnv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret:     getEnv("JWT_SECRET", "change-me"),
			AdminEmail:    getEnv("ADMIN_EMAIL", ""),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
			CookieSecure:  getEnvBool("COOKIE_SECURE", false),
		},
		Storage: StorageConfig{
			S3Bucket:       getEnv("STORAGE_S3_BUCKET", ""),
			S3Region:       getEnv("STORAGE_S3_REGION", "us-east-1"),
			S3Endpoint:     getEnv("STORAGE_S3_ENDPOINT", ""),
			PublicURL:      strings.TrimRight(getEnv("STORAGE_PUBLIC_URL", ""), "/"),
			Dir:            getEnv("STORAGE_DIR", "data/uploads"),
			MaxUploadBytes: int64(getEnvInt("UPLOAD_MAX_BYTES", 10<<20)),
		},
		Site: SiteConfig{
			ContactRatePerMinute: getEnvInt("CONTACT_RATE_PER_MINUTE", 10),
			LoginRatePerMinute:   getEnvInt("LOGIN_RATE_PER_MINUTE", 10),
			SeedSamples:          getEnvBool("SEED_SAMPLES", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
// Live mode has no silent fallback: a missing DATABASE_URL is an error, mock mode must be
// requested explicitly.
func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}
	if c.Backend.Mode == ModeLive && c.Backend.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required in live mode (set BACKEND_MODE=mock to run on sample data)")
	}
	if c.Backend.Mode == ModeLive && c.Storage.S3Bucket != "" && c.Storage.PublicURL == "" {
		return fmt.Errorf("STORAGE_PUBLIC_URL is required when STORAGE_S3_BUCKET is set")
	}
	if c.Storage.MaxUploadBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive")
	}
	if c.Site.ContactRatePerMinute <= 0 {
		return fmt.Errorf("CONTACT_RATE_PER_MINUTE must be positive")
	}
	if c.Site.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
}

// IsDevelopment reports whether the app runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if v := viper.GetString(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := getEnv(key, ""); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := getEnv(key, ""); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
