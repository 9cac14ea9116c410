package config

import (
	"fmt"
	"net/url"
	"os"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/config"
)

// DSNEnv names the variable that enables the E2E suite
const DSNEnv = "TEST_DATABASE_DSN"

// RedisEnv optionally points the suite at a real Redis for the account cache
const RedisEnv = "TEST_REDIS_ADDR"

// LoadTestConfig loads configuration for E2E testing from .env.test and the
// environment. It reports false when no test database is configured.
func LoadTestConfig() (*config.Config, bool, error) {
	// Fallback to environment variables if .env.test doesn't exist
	_ = godotenv.Load(".env.test")

	dsn := os.Getenv(DSNEnv)
	if dsn == "" {
		return nil, false, nil
	}

	cfg, err := config.Load("")
	if err != nil {
		return nil, false, fmt.Errorf("failed to load test configuration: %w", err)
	}

	cfg.DBDriver = "postgres"
	cfg.DSN = dsn
	cfg.DBMaxOpenConns = 20
	cfg.DBMaxIdleConns = 10
	cfg.GinMode = "test"
	cfg.BcryptCost = bcrypt.MinCost
	cfg.S3Bucket = ""
	cfg.TwilioFrom = ""
	if cfg.OwnershipRules == nil {
		cfg.OwnershipRules = config.DefaultOwnershipRules
	}

	if addr := os.Getenv(RedisEnv); addr != "" {
		cfg.CacheEnabled = true
		cfg.RedisAddr = addr
		// Use DB 1 for tests to avoid conflicts with dev data
		cfg.RedisDB = 1
	} else {
		cfg.CacheEnabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	return cfg, true, nil
}

// MaskDSN hides the password of a DSN for logging
func MaskDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return "***"
	}
	return u.Redacted()
}
