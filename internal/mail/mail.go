package mail

import "context"

// Message is a plain-text mail submission.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

// Transport is the outbound mail port. Implementations return a descriptive
// error on rejection; they never retry.
type Transport interface {
	Send(ctx context.Context, msg Message) error
}
