package mocks

import (
	"strings"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
)

// HashPrefix marks passwords "hashed" by MockPasswordService
const HashPrefix = "hashed_"

// MockPasswordService implements domain.PasswordService with a reversible
// fake hash. HashCalls counts Hash invocations.
type MockPasswordService struct {
	HashFunc   func(password string) (string, error)
	VerifyFunc func(hashedPassword, password string) bool
	HashCalls  int
}

// NewMockPasswordService creates a new MockPasswordService
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

// Hash prefixes password with HashPrefix
func (m *MockPasswordService) Hash(password string) (string, error) {
	m.HashCalls++
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return HashPrefix + password, nil
}

// Verify accepts password when hashedPassword is its fake hash
func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return strings.HasPrefix(hashedPassword, HashPrefix) && strings.TrimPrefix(hashedPassword, HashPrefix) == password
}

var _ domain.PasswordService = (*MockPasswordService)(nil)
