package mocks

import (
	"context"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
)

// MockPhotoStore implements domain.PhotoStore interface for testing
type MockPhotoStore struct {
	PresignUploadFunc func(ctx context.Context, accountID uuid.UUID) (string, string, error)
	URLFunc           func(ctx context.Context, key string) (string, error)
}

// NewMockPhotoStore creates a new MockPhotoStore
func NewMockPhotoStore() *MockPhotoStore {
	return &MockPhotoStore{}
}

// PresignUpload returns an upload key and URL
func (m *MockPhotoStore) PresignUpload(ctx context.Context, accountID uuid.UUID) (string, string, error) {
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, accountID)
	}
	key := "accounts/" + accountID.String() + "/photo"
	return key, "https://storage.test/" + key + "?upload", nil
}

// URL returns a download URL for key
func (m *MockPhotoStore) URL(ctx context.Context, key string) (string, error) {
	if m.URLFunc != nil {
		return m.URLFunc(ctx, key)
	}
	return "https://storage.test/" + key, nil
}

// Compile-time interface compliance verification
var _ domain.PhotoStore = (*MockPhotoStore)(nil)
