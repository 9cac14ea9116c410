package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	AccountCreatedEvent     AuditEventType = "ACCOUNT_CREATED"
	SuperuserCreatedEvent   AuditEventType = "SUPERUSER_CREATED"
	ProfileUpdatedEvent     AuditEventType = "PROFILE_UPDATED"
	AccountDeactivatedEvent AuditEventType = "ACCOUNT_DEACTIVATED"
	AccountActivatedEvent   AuditEventType = "ACCOUNT_ACTIVATED"

	LoginEvent        AuditEventType = "ACCOUNT_LOGIN"
	LoginFailureEvent AuditEventType = "ACCOUNT_LOGIN_FAILED"
)

// AuditEvent represents a business event that occurred in the system
type AuditEvent struct {
	EventType AuditEventType         `json:"event_type"`
	AccountID uuid.UUID              `json:"account_id"`
	Email     string                 `json:"email,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	ErrorMsg  string                 `json:"error_msg,omitempty"`
	Success   bool                   `json:"success"`
}

// AuditLogger records audit events
type AuditLogger interface {
	LogEvent(ctx context.Context, event *AuditEvent) error
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, accountID uuid.UUID) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		AccountID: accountID,
		Timestamp: time.Now().UTC(),
		Metadata:  make(map[string]interface{}),
		Success:   true,
	}
}

// WithError marks the event as failed
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// WithEmail sets the email field
func (e *AuditEvent) WithEmail(email string) *AuditEvent {
	e.Email = email
	return e
}

// WithMetadata adds metadata to the event
func (e *AuditEvent) WithMetadata(key string, value interface{}) *AuditEvent {
	e.Metadata[key] = value
	return e
}
