package mocks

import (
	"context"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
)

// MockAccountRepository implements domain.AccountRepository interface for testing
type MockAccountRepository struct {
	CreateFunc         func(ctx context.Context, account *domain.Account) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	FindByEmailFunc    func(ctx context.Context, email string) (*domain.Account, error)
	ListFunc           func(ctx context.Context) ([]*domain.Account, error)
	SearchFunc         func(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error)
	UpdateFunc         func(ctx context.Context, account *domain.Account) error
	TouchLastLoginFunc func(ctx context.Context, id uuid.UUID, at time.Time) error
}

// NewMockAccountRepository creates a new MockAccountRepository
func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{}
}

// Create stores a new account
func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	return nil
}

// FindByID finds an account by ID
func (m *MockAccountRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// unknown by default
	return nil, domain.ErrAccountNotFound
}

// FindByEmail finds an account by email
func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// unknown by default
	return nil, domain.ErrAccountNotFound
}

// List returns every account
func (m *MockAccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []*domain.Account{}, nil
}

// Search returns accounts matching filter
func (m *MockAccountRepository) Search(ctx context.Context, filter domain.AccountFilter) ([]*domain.Account, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, filter)
	}
	return []*domain.Account{}, nil
}

// Update updates an existing account
func (m *MockAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, account)
	}
	return nil
}

// TouchLastLogin records a login time
func (m *MockAccountRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, id, at)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountRepository = (*MockAccountRepository)(nil)
