package provider

import (
	"context"
	"time"

	"github.com/fabiobufalari/communication-service/internal/domain"
)

// Sender is the outbound delivery port for one notification channel.
type Sender interface {
	Send(ctx context.Context, notification domain.Notification) (*SendResult, error)
}

// SendResult carries delivery metadata for a successful send.
type SendResult struct {
	SentAt time.Time
}

// Registry maps notification types to their channel senders.
type Registry struct {
	senders map[domain.Type]Sender
}

func NewRegistry(email, sms, inApp Sender) *Registry {
	return &Registry{
		senders: map[domain.Type]Sender{
			domain.TypeEmail: email,
			domain.TypeSMS:   sms,
			domain.TypeInApp: inApp,
		},
	}
}

// ForType returns the sender for a type; ok is false for unknown types so the
// caller can take the explicit unsupported arm instead of falling through.
func (r *Registry) ForType(t domain.Type) (Sender, bool) {
	if r == nil {
		return nil, false
	}
	sender, ok := r.senders[t]
	if !ok || sender == nil {
		return nil, false
	}
	return sender, true
}
