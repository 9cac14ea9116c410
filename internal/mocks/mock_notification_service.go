package mocks

import "github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"

// MockNotificationService implements domain.NotificationService interface for testing
type MockNotificationService struct {
	SendSMSFunc func(to, message string) error
	Sent        []string
}

// NewMockNotificationService creates a new MockNotificationService
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS sends an SMS message
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.Sent = append(m.Sent, to)
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	// records the recipient only
	return nil
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
