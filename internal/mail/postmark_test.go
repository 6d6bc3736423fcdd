package mail

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrz1836/postmark"
)

type fakePostmarkSender struct {
	sendFn func(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error)
}

func (f *fakePostmarkSender) SendEmail(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
	return f.sendFn(ctx, email)
}

func TestNewPostmarkTransportRequiresTokens(t *testing.T) {
	t.Parallel()

	if _, err := NewPostmarkTransport("", "account"); err == nil {
		t.Fatal("expected error for missing server token")
	}
	if _, err := NewPostmarkTransport("server", " "); err == nil {
		t.Fatal("expected error for missing account token")
	}
	if _, err := NewPostmarkTransport("server", "account"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostmarkTransportSendSuccess(t *testing.T) {
	t.Parallel()

	var got postmark.Email
	transport := &PostmarkTransport{
		client: &fakePostmarkSender{
			sendFn: func(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
				got = email
				return postmark.EmailResponse{MessageID: "msg-1"}, nil
			},
		},
	}

	msg := Message{
		From:    "noreply@buildsystem.ca",
		To:      "user@example.com",
		Subject: "Weekly report",
		Body:    "your report is ready",
	}
	if err := transport.Send(context.Background(), msg); err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if got.From != msg.From || got.To != msg.To {
		t.Fatalf("addresses = %s -> %s, want %s -> %s", got.From, got.To, msg.From, msg.To)
	}
	if got.TextBody != msg.Body {
		t.Fatalf("TextBody = %q, want %q", got.TextBody, msg.Body)
	}
}

func TestPostmarkTransportSendFailures(t *testing.T) {
	t.Parallel()

	transportErr := &PostmarkTransport{
		client: &fakePostmarkSender{
			sendFn: func(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
				return postmark.EmailResponse{}, errors.New("connection refused")
			},
		},
	}
	err := transportErr.Send(context.Background(), Message{From: "a@b.c", To: "d@e.f"})
	if err == nil || !strings.Contains(err.Error(), "connection refused") {
		t.Fatalf("Send() error = %v, want to contain transport cause", err)
	}

	transportAPIErr := &PostmarkTransport{
		client: &fakePostmarkSender{
			sendFn: func(ctx context.Context, email postmark.Email) (postmark.EmailResponse, error) {
				return postmark.EmailResponse{ErrorCode: 300, Message: "invalid recipient"}, nil
			},
		},
	}
	err = transportAPIErr.Send(context.Background(), Message{From: "a@b.c", To: "d@e.f"})
	if err == nil || !strings.Contains(err.Error(), "invalid recipient") {
		t.Fatalf("Send() error = %v, want postmark api error", err)
	}

	if err := transportAPIErr.Send(context.Background(), Message{To: "d@e.f"}); err == nil {
		t.Fatal("Send() should reject empty from address")
	}
}
