package notifications

import (
	"fmt"

	"github.com/EmmanuelOnyekachi21/SmartRent-Backend/domain"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// messageCreator is the slice of the Twilio REST API used for SMS
type messageCreator interface {
	CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error)
}

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	api        messageCreator
	fromNumber string
	logger     *zap.Logger
}

// NewTwilioService creates a new Twilio notification service. Without a sender
// number messages are logged instead of sent.
func NewTwilioService(accountSID, authToken, fromNumber string, logger *zap.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return newTwilioService(client.Api, fromNumber, logger)
}

func newTwilioService(api messageCreator, fromNumber string, logger *zap.Logger) *TwilioServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TwilioServiceImpl{
		api:        api,
		fromNumber: fromNumber,
		logger:     logger,
	}
}

// SendSMS implements domain.NotificationService
func (t *TwilioServiceImpl) SendSMS(to, message string) error {
	if t.fromNumber == "" {
		t.logger.Info("sms not configured, dropping message",
			zap.String("to", to),
			zap.Int("length", len(message)))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(t.fromNumber)
	params.SetBody(message)

	resp, err := t.api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		t.logger.Debug("sms sent", zap.String("sid", *resp.Sid))
	}
	return nil
}
