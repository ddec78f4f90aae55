package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

// ConvertConfig holds conversion settings.
type ConvertConfig struct {
	RenderDPI   float64
	TimeoutSec  int
	MaxUploadMB int
}

// Timeout returns the per-conversion deadline; zero means none.
func (c ConvertConfig) Timeout() time.Duration {
	if c.TimeoutSec <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSec) * time.Second
}

// DatabaseConfig holds PostgreSQL connection settings for conversion history.
type DatabaseConfig struct {
	Enabled            bool
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for archiving converted documents.
type MinIOConfig struct {
	Enabled      bool
	Endpoint     string
	AccessKey    string
	SecretKey    string
	Bucket       string
	UseSSL       bool
	URLExpiryMin int
}

// URLExpiry returns how long presigned download links stay valid.
func (c MinIOConfig) URLExpiry() time.Duration {
	if c.URLExpiryMin <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.URLExpiryMin) * time.Minute
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost  string
	Port     string
	TimeZone string
	Convert  ConvertConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
}

// Location resolves TimeZone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	if loc, err := time.LoadLocation(c.TimeZone); err == nil {
		return loc
	}
	return time.UTC
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// History and archiving are off unless HISTORY_ENABLED / ARCHIVE_ENABLED are set.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:  getEnv("APP_HOST", "localhost:8080"),
		Port:     getEnv("PORT", "8080"),
		TimeZone: getEnv("TZ_NAME", "UTC"),
		Convert: ConvertConfig{
			RenderDPI:   getEnvFloat("RENDER_DPI", 144),
			TimeoutSec:  getEnvInt("CONVERT_TIMEOUT_SEC", 120),
			MaxUploadMB: getEnvInt("MAX_UPLOAD_MB", 50),
		},
		Database: DatabaseConfig{
			Enabled:            getEnvBool("HISTORY_ENABLED", false),
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Enabled:      getEnvBool("ARCHIVE_ENABLED", false),
			Endpoint:     getEnv("MINIO_ENDPOINT", ""),
			AccessKey:    getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:    getEnv("MINIO_SECRET_KEY", ""),
			Bucket:       getEnv("MINIO_BUCKET", ""),
			UseSSL:       getEnvBool("MINIO_USE_SSL", false),
			URLExpiryMin: getEnvInt("ARCHIVE_URL_EXPIRY_MIN", 15),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}
