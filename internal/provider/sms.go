package provider

import (
	"context"

	"github.com/fabiobufalari/communication-service/internal/domain"
)

// smsNotImplementedMessage is the exact failure description recorded on every
// SMS dispatch until a real provider is wired in.
const smsNotImplementedMessage = "SMS functionality not implemented"

// SMSSender is a stub: it rejects every send. Extending it with a real
// provider (e.g. Twilio) does not change the dispatch contract.
type SMSSender struct{}

func NewSMSSender() *SMSSender {
	return &SMSSender{}
}

func (s *SMSSender) Send(ctx context.Context, notification domain.Notification) (*SendResult, error) {
	return nil, &SendError{Message: smsNotImplementedMessage}
}
