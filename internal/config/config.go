package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Server modes
const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port          string `yaml:"port" env:"SERVER_PORT"`
		Mode          string `yaml:"mode" env:"SERVER_MODE"`
		ReadTimeout   string `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout  string `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		StoragePath   string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL string `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
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
		MigrationsDir   string `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
		CookieName            string `yaml:"cookie_name" env:"JWT_COOKIE_NAME"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Gate struct {
		PublicAPIPrefix    string `yaml:"public_api_prefix" env:"GATE_PUBLIC_API_PREFIX"`
		DashboardPrefix    string `yaml:"dashboard_prefix" env:"GATE_DASHBOARD_PREFIX"`
		SignInCallbackPath string `yaml:"sign_in_callback_path" env:"GATE_SIGN_IN_CALLBACK_PATH"`
		LoginPath          string `yaml:"login_path" env:"GATE_LOGIN_PATH"`
	} `yaml:"gate"`

	Import struct {
		BatchSize      int   `yaml:"batch_size" env:"IMPORT_BATCH_SIZE"`
		MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"IMPORT_MAX_UPLOAD_BYTES"`
		MaxRows        int   `yaml:"max_rows" env:"IMPORT_MAX_ROWS"`
	} `yaml:"import"`

	Storage struct {
		S3Bucket        string `yaml:"s3_bucket" env:"STORAGE_S3_BUCKET"`
		S3Region        string `yaml:"s3_region" env:"STORAGE_S3_REGION"`
		S3Endpoint      string `yaml:"s3_endpoint" env:"AWS_ENDPOINT_URL"`
		S3PublicBaseURL string `yaml:"s3_public_base_url" env:"STORAGE_S3_PUBLIC_BASE_URL"`
	} `yaml:"storage"`

	Geo struct {
		BaseURL string `yaml:"base_url" env:"GEO_BASE_URL"`
		Token   string `yaml:"token" env:"GEO_TOKEN"`
		Timeout string `yaml:"timeout" env:"GEO_TIMEOUT"`
	} `yaml:"geo"`

	Seed struct {
		Enabled      bool   `yaml:"enabled" env:"SEED_ENABLED"`
		DemoPassword string `yaml:"demo_password" env:"SEED_DEMO_PASSWORD"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file, an optional .env file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	// A missing .env is normal outside local development
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	if err := loadFromEnv(config); err != nil {
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
	config.Server.Mode = ModeDevelopment
	config.Server.ReadTimeout = "15s"
	config.Server.WriteTimeout = "120s"
	config.Server.StoragePath = "uploads"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "memorial"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.MigrationsDir = "migrations"

	config.JWT.AccessTokenExpiration = "24h"
	config.JWT.Issuer = "memorial.app"
	config.JWT.CookieName = "session_token"

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Gate.PublicAPIPrefix = "/api/public"
	config.Gate.DashboardPrefix = "/dashboard"
	config.Gate.SignInCallbackPath = "/api/auth/login"
	config.Gate.LoginPath = "/login"

	config.Import.BatchSize = 1000
	config.Import.MaxUploadBytes = 20 << 20
	config.Import.MaxRows = 200000

	config.Storage.S3Region = "us-east-1"

	config.Geo.BaseURL = "https://ipinfo.io"
	config.Geo.Timeout = "3s"

	config.Seed.Enabled = true
	config.Seed.DemoPassword = "DemoPassword123!"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	mode := strings.ToLower(config.Server.Mode)
	if mode != ModeDevelopment && mode != ModeProduction {
		return fmt.Errorf("server mode must be %q or %q, got %q", ModeDevelopment, ModeProduction, config.Server.Mode)
	}
	config.Server.Mode = mode

	for name, value := range map[string]string{
		"JWT access token expiration": config.JWT.AccessTokenExpiration,
		"server read timeout":         config.Server.ReadTimeout,
		"server write timeout":        config.Server.WriteTimeout,
		"geo timeout":                 config.Geo.Timeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Import.BatchSize <= 0 {
		return fmt.Errorf("import batch size must be positive")
	}
	if config.Import.MaxUploadBytes <= 0 {
		return fmt.Errorf("import max upload bytes must be positive")
	}

	for name, prefix := range map[string]string{
		"public API prefix":     config.Gate.PublicAPIPrefix,
		"dashboard prefix":      config.Gate.DashboardPrefix,
		"sign-in callback path": config.Gate.SignInCallbackPath,
		"login path":            config.Gate.LoginPath,
	} {
		if !strings.HasPrefix(prefix, "/") {
			return fmt.Errorf("gate %s must start with '/'", name)
		}
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Mode == ModeProduction
}

// GetPostgresConnectionString returns postgres connection string
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
