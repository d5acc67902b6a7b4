package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Store drivers understood by main.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	StoreDriver    string
	DatabaseURL    string
	MigrationsPath string
	WALPath        string // Memory store only; empty disables the write-ahead log

	DefaultCreditCeiling  decimal.Decimal
	WithdrawalFeeRate     decimal.Decimal
	TransferFeeRate       decimal.Decimal
	CreditTransferFeeRate decimal.Decimal

	BatchWorkers     int
	OperationTimeout time.Duration // Zero means no deadline

	RateLimit          string // ulule/limiter format, e.g. "100-S"; empty disables
	RateLimitRedisURL  string // Shared limiter counters; empty keeps them in process
	CORSAllowedOrigins []string
	JWTSecret          string // Empty disables bearer auth
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()
	return load(viper.New()), nil
}

func load(v *viper.Viper) *Config {
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("STORE_DRIVER", StoreMemory)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("WAL_PATH", "")
	v.SetDefault("DEFAULT_CREDIT_CEILING", "1000")
	v.SetDefault("WITHDRAWAL_FEE_RATE", "0.01")
	v.SetDefault("TRANSFER_FEE_RATE", "0.01")
	v.SetDefault("CREDIT_TRANSFER_FEE_RATE", "0.02")
	v.SetDefault("BATCH_WORKERS", 8)
	v.SetDefault("OPERATION_TIMEOUT", "0s")
	v.SetDefault("RATE_LIMIT", "100-S")
	v.SetDefault("RATE_LIMIT_REDIS_URL", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("JWT_SECRET", "")

	// Environment variables override defaults (and anything godotenv put in the environment).
	// A set-but-empty variable counts, so RATE_LIMIT= switches the limiter off.
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER")))
	switch cfg.StoreDriver {
	case StoreMemory, StorePostgres:
	default:
		log.Printf("Warning: Invalid value for STORE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StoreDriver, StoreMemory)
		cfg.StoreDriver = StoreMemory
	}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.StoreDriver == StorePostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}
	cfg.MigrationsPath = v.GetString("MIGRATIONS_PATH")
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "file://migrations"
	}
	cfg.WALPath = v.GetString("WAL_PATH")

	cfg.DefaultCreditCeiling = nonNegativeDecimal(v, "DEFAULT_CREDIT_CEILING", "1000")
	cfg.WithdrawalFeeRate = nonNegativeDecimal(v, "WITHDRAWAL_FEE_RATE", "0.01")
	cfg.TransferFeeRate = nonNegativeDecimal(v, "TRANSFER_FEE_RATE", "0.01")
	cfg.CreditTransferFeeRate = nonNegativeDecimal(v, "CREDIT_TRANSFER_FEE_RATE", "0.02")

	cfg.BatchWorkers = v.GetInt("BATCH_WORKERS")
	if cfg.BatchWorkers < 1 {
		log.Printf("Warning: Invalid value for BATCH_WORKERS (%d). Defaulting to 8.\n", cfg.BatchWorkers)
		cfg.BatchWorkers = 8
	}

	timeoutStr := v.GetString("OPERATION_TIMEOUT")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout < 0 {
		log.Printf("Warning: Invalid value for OPERATION_TIMEOUT ('%s'). Disabling operation deadlines.\n", timeoutStr)
		timeout = 0
	}
	cfg.OperationTimeout = timeout

	cfg.RateLimit = strings.TrimSpace(v.GetString("RATE_LIMIT"))
	cfg.RateLimitRedisURL = v.GetString("RATE_LIMIT_REDIS_URL")
	cfg.CORSAllowedOrigins = splitList(v.GetString("CORS_ALLOWED_ORIGINS"))

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" && cfg.IsProduction {
		log.Println("Warning: JWT_SECRET not set. The API is running without authentication.")
	}

	return cfg
}

func nonNegativeDecimal(v *viper.Viper, key, fallback string) decimal.Decimal {
	raw := v.GetString(key)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback)
		return decimal.RequireFromString(fallback)
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
