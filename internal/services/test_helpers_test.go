package services

import (
	"context"
	"testing"
	"time"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/internal/mocks"
	"github.com/google/uuid"
)

// testNow is the fixed "current time" used by account service tests
var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

func testClock() time.Time { return testNow }

// accountServiceFixture bundles an account service with its mocks
type accountServiceFixture struct {
	svc      domain.AccountManager
	repo     *mocks.MockAccountRepository
	password *mocks.MockPasswordService
	notifier *mocks.MockNotificationService
	audit    *mocks.MockAuditLogger
}

// createAccountServiceForTest creates an AccountService with mock dependencies for testing
func createAccountServiceForTest(t *testing.T) *accountServiceFixture {
	t.Helper()

	f := &accountServiceFixture{
		repo:     mocks.NewMockAccountRepository(),
		password: mocks.NewMockPasswordService(),
		notifier: mocks.NewMockNotificationService(),
		audit:    mocks.NewMockAuditLogger(),
	}
	f.svc = NewAccountService(f.repo, f.password, f.notifier, f.audit, nil, testClock)
	return f
}

// createValidAccount creates a valid account entity for testing
func createValidAccount(t *testing.T) *domain.Account {
	t.Helper()

	dob := time.Date(2000, time.March, 2, 0, 0, 0, 0, time.UTC)
	return &domain.Account{
		ID:          uuid.MustParse("6f1c2b8e-1d3a-4c55-9a0e-2f7b6a1d9c01"),
		FirstName:   "Ada",
		LastName:    "Obi",
		Email:       "ada@example.com",
		PhoneNumber: "+2348000000001",
		Sex:         domain.SexFemale,
		DOB:         &dob,
		Credentials: domain.Credentials{
			PasswordHash: "hashed_password123",
			IsActive:     true,
		},
		Permissions: domain.Permissions{Role: domain.RoleTenant},
		DateJoined:  testNow.Add(-24 * time.Hour),
		DateUpdated: testNow.Add(-1 * time.Hour),
	}
}

// createInactiveAccount creates an inactive account entity for testing
func createInactiveAccount(t *testing.T) *domain.Account {
	t.Helper()

	account := createValidAccount(t)
	account.IsActive = false
	return account
}

// storeAccounts makes the mock repository serve the given accounts by id and email
func storeAccounts(repo *mocks.MockAccountRepository, accounts ...*domain.Account) {
	repo.FindByIDFunc = func(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
		for _, acc := range accounts {
			if acc.ID == id {
				copied := *acc
				return &copied, nil
			}
		}
		return nil, domain.ErrAccountNotFound
	}
	repo.FindByEmailFunc = func(ctx context.Context, email string) (*domain.Account, error) {
		for _, acc := range accounts {
			if acc.Email == email {
				copied := *acc
				return &copied, nil
			}
		}
		return nil, domain.ErrAccountNotFound
	}
}

// createTestContext creates a context for testing with timeout
func createTestContext(t *testing.T) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func strPtr(s string) *string { return &s }
