package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/config"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/audit"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/auth"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/database"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/notifications"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/repositories"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/infrastructure/storage"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/logging"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/services"
)

// Container holds all dependencies
type Container struct {
	// Config
	Config *config.Config
	Logger *zap.Logger
	Clock  domain.Clock

	// Infrastructure
	DB     *gorm.DB
	Redis  *database.RedisClient
	Casbin *auth.CasbinService

	// Repositories
	AccountRepo domain.AccountRepository

	// Services
	PasswordSvc     domain.PasswordService
	NotificationSvc domain.NotificationService
	AuditLogger     domain.AuditLogger
	AccountSvc      domain.AccountManager
	PolicySvc       domain.PolicyService
	PhotoStore      domain.PhotoStore
}

// NewContainer creates and initializes all dependencies
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger, err := logging.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return NewContainerWithLogger(ctx, cfg, logger)
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger
func NewContainerWithLogger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger, Clock: time.Now}

	// Initialize infrastructure
	if err := c.initDatabase(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.initRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}

	// Initialize repositories
	c.initRepositories()

	// Initialize services
	if err := c.initServices(ctx); err != nil {
		c.Close()
		return nil, err
	}

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(database.Options{
		Driver:       c.Config.DBDriver,
		DSN:          c.Config.DSN,
		MaxOpenConns: c.Config.DBMaxOpenConns,
		MaxIdleConns: c.Config.DBMaxIdleConns,
		ConnMaxLife:  c.Config.DBConnMaxLife,
		LogSQL:       c.Config.DBLogSQL,
	})
	if err != nil {
		return err
	}
	c.DB = db

	// Auto-migrate
	return database.AutoMigrate(db)
}

func (c *Container) initRedis(ctx context.Context) error {
	if !c.Config.CacheEnabled {
		return nil
	}
	c.Redis = database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := c.Redis.Ping(ctx); err != nil {
		return fmt.Errorf("redis ping %s: %w", c.Config.RedisAddr, err)
	}
	return nil
}

func (c *Container) initRepositories() {
	c.AccountRepo = repositories.NewAccountRepository(c.DB, c.Clock)
	if c.Redis != nil {
		c.AccountRepo = repositories.NewCachedAccountRepository(c.AccountRepo, c.Redis.Client, c.Config.CacheTTL, c.Logger)
	}
}

func (c *Container) initServices(ctx context.Context) error {
	// Initialize basic services
	c.PasswordSvc = auth.NewPasswordServiceWithCost(c.Config.BcryptCost)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
		c.Logger,
	)
	c.AuditLogger = audit.NewZapAuditLogger(c.Logger)

	c.AccountSvc = services.NewAccountService(
		c.AccountRepo,
		c.PasswordSvc,
		c.NotificationSvc,
		c.AuditLogger,
		c.Logger,
		c.Clock,
	)

	// Policies
	cas, err := auth.NewCasbinService(c.DB, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}
	if _, err := cas.SeedDefaults(c.Logger); err != nil {
		return err
	}
	c.Casbin = cas
	c.PolicySvc = services.NewPolicyService(cas.E)

	// Photo storage
	if !c.Config.S3Enabled() {
		c.Logger.Info("s3 not configured, profile photo uploads disabled")
		c.PhotoStore = storage.NoopPhotoStore{}
		return nil
	}
	store, err := storage.NewS3PhotoStore(ctx, storage.S3Options{
		Region:       c.Config.S3Region,
		Endpoint:     c.Config.S3Endpoint,
		Bucket:       c.Config.S3Bucket,
		AccessKey:    c.Config.S3AccessKey,
		SecretKey:    c.Config.S3SecretKey,
		UsePathStyle: c.Config.S3UsePathStyle,
		PresignTTL:   c.Config.S3PresignTTL,
	})
	if err != nil {
		return err
	}
	c.PhotoStore = store
	return nil
}

// Close closes all connections
func (c *Container) Close() error {
	var errs []error
	if c.Redis != nil {
		errs = append(errs, c.Redis.Client.Close())
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, sqlDB.Close())
		}
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return errors.Join(errs...)
}
