package mocks

import (
	"context"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
)

// MockAccountManager implements domain.AccountManager interface for testing
type MockAccountManager struct {
	CreateUserFunc           func(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error)
	CreateSuperuserFunc      func(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error)
	GetByIDFunc              func(ctx context.Context, id string) (*domain.Account, bool, error)
	GetByNormalizedEmailFunc func(ctx context.Context, email string) (*domain.Account, error)
	ListFunc                 func(ctx context.Context) ([]*domain.Account, error)
	SearchFunc               func(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
	UpdateProfileFunc        func(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error)
	SetActiveFunc            func(ctx context.Context, id uuid.UUID, active bool) (*domain.Account, error)
	AuthenticateFunc         func(ctx context.Context, email, password string) (*domain.Account, error)
}

// NewMockAccountManager creates a new MockAccountManager
func NewMockAccountManager() *MockAccountManager {
	return &MockAccountManager{}
}

// CreateUser creates a regular account
func (m *MockAccountManager) CreateUser(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error) {
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(ctx, email, password, fields)
	}
	// echo the input back as a tenant
	return &domain.Account{
		ID:          uuid.New(),
		Email:       domain.NormalizeEmail(email),
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		PhoneNumber: fields.PhoneNumber,
		Credentials: domain.Credentials{PasswordHash: "hashed_" + password, IsActive: true},
		Permissions: domain.Permissions{Role: domain.RoleTenant},
	}, nil
}

// CreateSuperuser creates a privileged account
func (m *MockAccountManager) CreateSuperuser(ctx context.Context, email, password string, fields domain.AccountFields) (*domain.Account, error) {
	if m.CreateSuperuserFunc != nil {
		return m.CreateSuperuserFunc(ctx, email, password, fields)
	}
	return &domain.Account{
		ID:          uuid.New(),
		Email:       domain.NormalizeEmail(email),
		FirstName:   fields.FirstName,
		Credentials: domain.Credentials{PasswordHash: "hashed_" + password, IsActive: true, IsVerified: true},
		Permissions: domain.Permissions{Role: domain.RoleAdmin, IsStaff: true, IsSuperuser: true},
	}, nil
}

// GetByID looks an account up by ID
func (m *MockAccountManager) GetByID(ctx context.Context, id string) (*domain.Account, bool, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	// unknown by default
	return nil, false, nil
}

// GetByNormalizedEmail looks an account up by email
func (m *MockAccountManager) GetByNormalizedEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.GetByNormalizedEmailFunc != nil {
		return m.GetByNormalizedEmailFunc(ctx, email)
	}
	return nil, domain.ErrAccountNotFound
}

// List returns every account
func (m *MockAccountManager) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.Account{}, nil
}

// Search returns accounts matching filter
func (m *MockAccountManager) Search(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return []*domain.Account{}, nil
}

// UpdateProfile applies a profile write
func (m *MockAccountManager) UpdateProfile(ctx context.Context, id uuid.UUID, update domain.ProfileUpdate) (*domain.Account, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, update)
	}
	return nil, domain.ErrAccountNotFound
}

// SetActive activates or deactivates an account
func (m *MockAccountManager) SetActive(ctx context.Context, id uuid.UUID, active bool) (*domain.Account, error) {
	if m.SetActiveFunc != nil {
		return m.SetActiveFunc(ctx, id, active)
	}
	return nil, domain.ErrAccountNotFound
}

// Authenticate verifies credentials
func (m *MockAccountManager) Authenticate(ctx context.Context, email, password string) (*domain.Account, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	// reject unless overridden
	return nil, domain.ErrInvalidCredentials
}

// Compile-time interface compliance verification
var _ domain.AccountManager = (*MockAccountManager)(nil)
