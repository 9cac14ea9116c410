package audit

import (
	"context"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZapAuditLogger writes audit events as structured log entries
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger creates an audit logger on a named child of logger
func NewZapAuditLogger(logger *zap.Logger) domain.AuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (l *ZapAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	if event == nil {
		return nil
	}

	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Time("timestamp", event.Timestamp),
		zap.Bool("success", event.Success),
	}
	if event.AccountID != uuid.Nil {
		fields = append(fields, zap.String("account_id", event.AccountID.String()))
	}
	if event.Email != "" {
		fields = append(fields, zap.String("email", event.Email))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}

	if event.Success {
		l.logger.Info("audit event", fields...)
	} else {
		l.logger.Warn("audit event", fields...)
	}
	return nil
}
