package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// OwnershipRule says where a route carries the id of the account it acts on.
// A request whose id matches the authenticated account is checked as role_owner.
type OwnershipRule struct {
	Method    string `yaml:"method"`
	Path      string `yaml:"path"`
	Source    string `yaml:"source"`
	ParamName string `yaml:"paramName"`
}

// DefaultOwnershipRules cover the owner-only account routes
var DefaultOwnershipRules = []OwnershipRule{
	{Method: "PATCH", Path: "/api/accounts/:id", Source: "path", ParamName: "id"},
	{Method: "POST", Path: "/api/accounts/:id/photo", Source: "path", ParamName: "id"},
}

type AppConfig struct {
	Port     int    `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
}

type DatabaseConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	ConnMaxLife  string `yaml:"conn_max_lifetime"`
	LogSQL       bool   `yaml:"log_sql"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	TTL     string `yaml:"ttl"`
}

type CasbinConfig struct {
	ModelPath      string          `yaml:"model_path"`
	OwnershipRules []OwnershipRule `yaml:"ownershipRules"`
}

type S3Config struct {
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	Bucket       string `yaml:"bucket"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
	PresignTTL   string `yaml:"presign_ttl"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type SecurityConfig struct {
	BcryptCost int `yaml:"bcrypt_cost"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Cache    CacheConfig    `yaml:"cache"`
	Casbin   CasbinConfig   `yaml:"casbin"`
	S3       S3Config       `yaml:"s3"`
	Twilio   TwilioConfig   `yaml:"twilio"`
	Security SecurityConfig `yaml:"security"`
}

// Config is the flattened runtime configuration. Every field with an env tag
// can be overridden from the environment after the file is read.
type Config struct {
	Port     string `env:"PORT"`
	GinMode  string `env:"GIN_MODE"`
	Env      string `env:"APP_ENV"`
	LogLevel string `env:"LOG_LEVEL"`

	DBDriver       string        `env:"DATABASE_DRIVER"`
	DSN            string        `env:"DATABASE_DSN"`
	DBMaxOpenConns int           `env:"DATABASE_MAX_OPEN_CONNS"`
	DBMaxIdleConns int           `env:"DATABASE_MAX_IDLE_CONNS"`
	DBConnMaxLife  time.Duration `env:"DATABASE_CONN_MAX_LIFETIME"`
	DBLogSQL       bool          `env:"DATABASE_LOG_SQL"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"`
	CacheEnabled  bool          `env:"CACHE_ENABLED"`
	CacheTTL      time.Duration `env:"CACHE_TTL"`

	CasbinModelPath string `env:"CASBIN_MODEL_PATH"`
	OwnershipRules  []OwnershipRule

	S3Region       string        `env:"S3_REGION"`
	S3Endpoint     string        `env:"S3_ENDPOINT"`
	S3Bucket       string        `env:"S3_BUCKET"`
	S3AccessKey    string        `env:"S3_ACCESS_KEY"`
	S3SecretKey    string        `env:"S3_SECRET_KEY"`
	S3UsePathStyle bool          `env:"S3_USE_PATH_STYLE"`
	S3PresignTTL   time.Duration `env:"S3_PRESIGN_TTL"`

	TwilioSID   string `env:"TWILIO_ACCOUNT_SID"`
	TwilioToken string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom  string `env:"TWILIO_FROM_NUMBER"`

	BcryptCost int `env:"BCRYPT_COST"`
}

// Load reads .env (if present), then the YAML file at path (skipped when path
// is empty), then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	configFile := &ConfigFile{}
	if path != "" {
		var err error
		configFile, err = loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	cfg, err := fromFile(configFile)
	if err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func fromFile(f *ConfigFile) (*Config, error) {
	connMaxLife, err := parseDuration(f.Database.ConnMaxLife, 0)
	if err != nil {
		return nil, fmt.Errorf("invalid database conn_max_lifetime: %w", err)
	}
	cacheTTL, err := parseDuration(f.Cache.TTL, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid cache TTL: %w", err)
	}
	presignTTL, err := parseDuration(f.S3.PresignTTL, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid S3 presign TTL: %w", err)
	}

	port := "8080"
	if f.App.Port != 0 {
		port = fmt.Sprintf("%d", f.App.Port)
	}
	rules := f.Casbin.OwnershipRules
	if len(rules) == 0 {
		rules = DefaultOwnershipRules
	}

	return &Config{
		Port:     port,
		GinMode:  f.App.GinMode,
		Env:      f.App.Env,
		LogLevel: f.App.LogLevel,

		DBDriver:       f.Database.Driver,
		DSN:            f.Database.DSN,
		DBMaxOpenConns: f.Database.MaxOpenConns,
		DBMaxIdleConns: f.Database.MaxIdleConns,
		DBConnMaxLife:  connMaxLife,
		DBLogSQL:       f.Database.LogSQL,

		RedisAddr:     f.Redis.Addr,
		RedisPassword: f.Redis.Password,
		RedisDB:       f.Redis.DB,
		CacheEnabled:  f.Cache.Enabled,
		CacheTTL:      cacheTTL,

		CasbinModelPath: f.Casbin.ModelPath,
		OwnershipRules:  rules,

		S3Region:       f.S3.Region,
		S3Endpoint:     f.S3.Endpoint,
		S3Bucket:       f.S3.Bucket,
		S3AccessKey:    f.S3.AccessKey,
		S3SecretKey:    f.S3.SecretKey,
		S3UsePathStyle: f.S3.UsePathStyle,
		S3PresignTTL:   presignTTL,

		TwilioSID:   f.Twilio.AccountSID,
		TwilioToken: f.Twilio.AuthToken,
		TwilioFrom:  f.Twilio.FromNumber,

		BcryptCost: f.Security.BcryptCost,
	}, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

// Validate reports configuration that cannot start the service
func (c *Config) Validate() error {
	var problems []string
	if c.DSN == "" {
		problems = append(problems, "database dsn is required")
	}
	switch strings.ToLower(c.DBDriver) {
	case "", "postgres", "postgresql", "sqlite", "sqlite3":
	default:
		problems = append(problems, fmt.Sprintf("unsupported database driver %q", c.DBDriver))
	}
	if c.CacheEnabled && c.RedisAddr == "" {
		problems = append(problems, "redis addr is required when the cache is enabled")
	}
	for _, rule := range c.OwnershipRules {
		switch rule.Source {
		case "path", "query", "header":
		default:
			problems = append(problems, fmt.Sprintf("ownership rule %s %s: unsupported source %q", rule.Method, rule.Path, rule.Source))
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// S3Enabled reports whether a bucket is configured
func (c *Config) S3Enabled() bool {
	return c.S3Bucket != ""
}
