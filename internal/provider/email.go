package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fabiobufalari/communication-service/internal/domain"
	"github.com/fabiobufalari/communication-service/internal/mail"
)

// defaultEmailSubject is used when a request carries no subject.
const defaultEmailSubject = "Notification from Build System"

// EmailSender delivers EMAIL notifications through a mail transport.
type EmailSender struct {
	transport mail.Transport
	from      string
	now       func() time.Time
}

func NewEmailSender(transport mail.Transport, senderAddress string) (*EmailSender, error) {
	if transport == nil {
		return nil, fmt.Errorf("mail transport is required")
	}
	if strings.TrimSpace(senderAddress) == "" {
		return nil, fmt.Errorf("mail sender address is required")
	}

	return &EmailSender{
		transport: transport,
		from:      strings.TrimSpace(senderAddress),
		now:       time.Now,
	}, nil
}

func (s *EmailSender) Send(ctx context.Context, notification domain.Notification) (*SendResult, error) {
	if s == nil || s.transport == nil {
		return nil, &SendError{Message: "email sender is not initialized"}
	}

	subject := defaultEmailSubject
	if notification.Subject != nil && strings.TrimSpace(*notification.Subject) != "" {
		subject = *notification.Subject
	}

	msg := mail.Message{
		From:    s.from,
		To:      notification.Recipient,
		Subject: subject,
		Body:    notification.Content,
	}

	if err := s.transport.Send(ctx, msg); err != nil {
		return nil, &SendError{
			Message: "Email sending failed",
			Cause:   err,
		}
	}

	return &SendResult{SentAt: s.now().UTC()}, nil
}
