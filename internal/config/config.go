package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHost          = "127.0.0.1"
	defaultPort          = "8080"
	defaultDBPath        = "./timehair.db"
	defaultDBLogLevel    = "warn"
	defaultJWTTTL        = "24h"
	defaultBcryptCost    = "10"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin"
	defaultSeatCount     = "6"
)

type Config struct {
	AppEnv             string
	Host               string
	Port               string
	DatabaseURL        string
	DBPath             string
	DBLogLevel         string
	JWTSecret          string
	JWTSecretFile      string
	JWTTTL             time.Duration
	BcryptCost         int
	AdminUsername      string
	AdminPassword      string
	SeatCount          int
	CORSAllowedOrigins []string
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.Host = strings.TrimSpace(getEnv("HOST", defaultHost))
	cfg.Port = strings.TrimSpace(getEnv("PORT", defaultPort))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.DBPath = strings.TrimSpace(getEnv("DB_PATH", defaultDBPath))
	cfg.DBLogLevel = strings.ToLower(strings.TrimSpace(getEnv("DB_LOG_LEVEL", defaultDBLogLevel)))
	cfg.AdminUsername = strings.TrimSpace(getEnv("ADMIN_USERNAME", defaultAdminUsername))
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", defaultAdminPassword)
	cfg.JWTSecretFile = strings.TrimSpace(getEnv("JWT_SECRET_FILE", filepath.Join(filepath.Dir(cfg.DBPath), "jwt_secret.txt")))

	var err error
	cfg.JWTTTL, err = parseDurationEnv("JWT_TTL", defaultJWTTTL)
	if err != nil {
		return nil, err
	}
	cfg.BcryptCost, err = parseIntEnv("BCRYPT_COST", defaultBcryptCost)
	if err != nil {
		return nil, err
	}
	cfg.SeatCount, err = parseIntEnv("SEAT_COUNT", defaultSeatCount)
	if err != nil {
		return nil, err
	}

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	cfg.JWTSecret, err = resolveJWTSecret(strings.TrimSpace(os.Getenv("JWT_SECRET")), cfg.JWTSecretFile)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	log.Printf("config loaded: env=%s addr=%s storage=%s jwt_ttl=%s seats=%d", cfg.AppEnv, cfg.Addr(), cfg.StorageLabel(), cfg.JWTTTL, cfg.SeatCount)

	return cfg, nil
}

// Addr is the listen address. The API serves the local desktop shell, so
// it binds to loopback unless HOST says otherwise.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// DSN is the connection string handed to database.Connect.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DBPath
}

func (c *Config) StorageLabel() string {
	if c.DatabaseURL != "" {
		return "postgres"
	}
	return "sqlite:" + c.DBPath
}

func validateConfig(cfg *Config) error {
	if cfg.Host == "" {
		return fmt.Errorf("HOST must not be empty")
	}
	if cfg.Port == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	if cfg.DatabaseURL == "" && cfg.DBPath == "" {
		return fmt.Errorf("DB_PATH or DATABASE_URL must be set")
	}
	if cfg.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.SeatCount <= 0 {
		return fmt.Errorf("SEAT_COUNT must be > 0")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must not be empty")
	}
	switch cfg.DBLogLevel {
	case "silent", "error", "warn", "info":
	default:
		return fmt.Errorf("DB_LOG_LEVEL must be one of: silent, error, warn, info")
	}

	if isProdLike(cfg.AppEnv) && cfg.AdminPassword == defaultAdminPassword {
		return fmt.Errorf("in prod/release ADMIN_PASSWORD must be set and not default")
	}

	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseIntEnv(name, fallback string) (int, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return n, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
