package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/pharmacy_moneybox/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	DBMaxConns        int32
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	MigrationsPath string
	RunMigrations  bool

	// Ledger policy
	BaseCurrency         string
	AllowNegativeBalance bool
	DisplayCurrencies    []string

	RateLimit          string
	CORSAllowedOrigins []string
	ShutdownTimeout    time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "pharmacy-moneybox")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("MONEYBOX_BASE_CURRENCY", domain.CurrencySYP)
	v.SetDefault("MONEYBOX_ALLOW_NEGATIVE_BALANCE", true)
	v.SetDefault("MONEYBOX_DISPLAY_CURRENCIES", "USD,EUR")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:          v.GetString("PGSQL_URL"),
		DBMaxConns:           v.GetInt32("DB_MAX_CONNS"),
		Port:                 v.GetString("PORT"),
		IsProduction:         v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:        v.GetBool("ENABLE_DB_CHECK"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		JWTIssuer:            v.GetString("JWT_ISSUER"),
		MigrationsPath:       v.GetString("MIGRATIONS_PATH"),
		RunMigrations:        v.GetBool("RUN_MIGRATIONS"),
		AllowNegativeBalance: v.GetBool("MONEYBOX_ALLOW_NEGATIVE_BALANCE"),
		RateLimit:            v.GetString("RATE_LIMIT"),
		CORSAllowedOrigins:   splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	if cfg.DBMaxConns <= 0 {
		cfg.DBMaxConns = 10
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOr(v.GetString("JWT_EXPIRY_DURATION"), time.Hour, "JWT_EXPIRY_DURATION")
	cfg.ShutdownTimeout = durationOr(v.GetString("SHUTDOWN_TIMEOUT"), 10*time.Second, "SHUTDOWN_TIMEOUT")

	base, err := domain.NormalizeCurrencyCode(v.GetString("MONEYBOX_BASE_CURRENCY"))
	if err != nil {
		return nil, fmt.Errorf("invalid MONEYBOX_BASE_CURRENCY: %w", err)
	}
	cfg.BaseCurrency = base

	for _, code := range splitList(v.GetString("MONEYBOX_DISPLAY_CURRENCIES")) {
		normalized, err := domain.NormalizeCurrencyCode(code)
		if err != nil {
			return nil, fmt.Errorf("invalid MONEYBOX_DISPLAY_CURRENCIES: %w", err)
		}
		if normalized != base {
			cfg.DisplayCurrencies = append(cfg.DisplayCurrencies, normalized)
		}
	}

	return cfg, nil
}

func durationOr(raw string, fallback time.Duration, key string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
