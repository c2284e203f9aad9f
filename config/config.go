// Package config loads the application settings from the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting the server and the migrator need.
type Config struct {
	Port           string
	SessionSecret  string
	SessionTTL     time.Duration
	CookieSecure   bool
	UploadDir      string
	PublicDir      string
	AllowedOrigins []string
	LogLevel       string
	Database       DatabaseConfig
}

// DatabaseConfig describes the PostgreSQL connection and pool.
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

// DSN builds a postgres:// URL for lib/pq. Every part is escaped, so
// credentials may contain spaces or quotes.
func (d DatabaseConfig) DSN() string {
	user := url.User(d.User)
	if d.Password != "" {
		user = url.UserPassword(d.User, d.Password)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     net.JoinHostPort(d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return dsn.String()
}

// Load reads the configuration from environment variables. The .env file, if any,
// must already have been loaded by the caller.
func Load() (*Config, error) {
	var err error
	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		SessionSecret:  os.Getenv("SESSION_SECRET"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		PublicDir:      getEnv("PUBLIC_DIR", "public"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		LogLevel:       strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
	}
	if cfg.Database, err = LoadDatabase(); err != nil {
		return nil, err
	}

	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("SESSION_TTL must be positive, got %s", cfg.SessionTTL)
	}
	if cfg.CookieSecure, err = getBool("COOKIE_SECURE", false); err != nil {
		return nil, err
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_SECRET must be set")
	}
	return cfg, nil
}

// LoadDatabase reads only the DB_* settings. The migrator uses it directly.
func LoadDatabase() (DatabaseConfig, error) {
	var err error
	d := DatabaseConfig{
		Host:     os.Getenv("DB_HOST"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		Name:     os.Getenv("DB_NAME"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
	if d.MaxOpenConns, err = getInt("DB_MAX_OPEN_CONNS", 10); err != nil {
		return d, err
	}
	if d.MaxIdleConns, err = getInt("DB_MAX_IDLE_CONNS", 5); err != nil {
		return d, err
	}
	if d.ConnMaxLifetime, err = getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute); err != nil {
		return d, err
	}
	if d.AutoMigrate, err = getBool("DB_AUTO_MIGRATE", false); err != nil {
		return d, err
	}
	return d, d.Validate()
}

// Validate reports missing connection settings. The password may be empty for
// trust authentication setups.
func (d DatabaseConfig) Validate() error {
	var missing []string
	if d.Host == "" {
		missing = append(missing, "DB_HOST")
	}
	if d.User == "" {
		missing = append(missing, "DB_USER")
	}
	if d.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("database environment variables %s must be set", strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func getBool(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
