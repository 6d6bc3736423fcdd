package provider

import (
	"context"
	"time"

	"github.com/fabiobufalari/communication-service/internal/domain"
)

// InAppSender is a placeholder: every send succeeds immediately. A real
// implementation would persist to an inbox store or push over a live channel.
type InAppSender struct {
	now func() time.Time
}

func NewInAppSender() *InAppSender {
	return &InAppSender{now: time.Now}
}

func (s *InAppSender) Send(ctx context.Context, notification domain.Notification) (*SendResult, error) {
	now := time.Now
	if s != nil && s.now != nil {
		now = s.now
	}
	return &SendResult{SentAt: now().UTC()}, nil
}
