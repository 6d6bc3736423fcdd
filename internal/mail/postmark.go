package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrz1836/postmark"
)

// postmarkSender is the interface implemented by *postmark.Client; kept
// narrow so tests can substitute the outbound call.
type postmarkSender interface {
	SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

// PostmarkTransport submits plain-text mail through Postmark's transactional API.
type PostmarkTransport struct {
	client postmarkSender
}

func NewPostmarkTransport(serverToken, accountToken string) (*PostmarkTransport, error) {
	if strings.TrimSpace(serverToken) == "" {
		return nil, fmt.Errorf("postmark server token is required")
	}
	if strings.TrimSpace(accountToken) == "" {
		return nil, fmt.Errorf("postmark account token is required")
	}

	return &PostmarkTransport{
		client: postmark.NewClient(serverToken, accountToken),
	}, nil
}

func (t *PostmarkTransport) Send(ctx context.Context, msg Message) error {
	if t == nil || t.client == nil {
		return fmt.Errorf("mail transport is not initialized")
	}
	if strings.TrimSpace(msg.From) == "" {
		return fmt.Errorf("mail sender address is required")
	}
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("mail recipient is required")
	}

	resp, err := t.client.SendEmail(ctx, postmark.Email{
		From:     msg.From,
		To:       msg.To,
		Subject:  msg.Subject,
		TextBody: msg.Body,
	})
	if err != nil {
		return fmt.Errorf("postmark send failed: %w", err)
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark error %d: %s", resp.ErrorCode, resp.Message)
	}

	return nil
}
