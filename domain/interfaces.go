package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountRepository defines account data access operations
type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	FindByID(ctx context.Context, id uuid.UUID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Search(ctx context.Context, filter AccountFilter) ([]*Account, error)
	Update(ctx context.Context, account *Account) error
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// AccountManager defines the account lifecycle: creation workflows and safe lookups
type AccountManager interface {
	CreateUser(ctx context.Context, email, password string, fields AccountFields) (*Account, error)
	CreateSuperuser(ctx context.Context, email, password string, fields AccountFields) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, bool, error)
	GetByNormalizedEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]*Account, error)
	Search(ctx context.Context, filter AccountFilter) ([]*Account, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update ProfileUpdate) (*Account, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*Account, error)
	Authenticate(ctx context.Context, email, password string) (*Account, error)
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// PolicyService defines authorization policy operations
type PolicyService interface {
	AddPolicy(role, resource, action string) error
	RemovePolicy(role, resource, action string) error
	CheckPermission(role, resource, action string) (bool, error)
	GetPolicies() [][]string
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	RemovePolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}

// PhotoStore defines profile photo blob operations
type PhotoStore interface {
	PresignUpload(ctx context.Context, accountID uuid.UUID) (key string, url string, err error)
	URL(ctx context.Context, key string) (string, error)
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(to, message string) error
}

// Clock returns the current time
type Clock func() time.Time
