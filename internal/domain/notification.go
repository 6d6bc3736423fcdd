package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status represents the lifecycle state of a notification.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusSent      Status = "SENT"
	StatusFailed    Status = "FAILED"
	StatusDelivered Status = "DELIVERED"
	StatusRead      Status = "READ"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusSent, StatusFailed, StatusDelivered, StatusRead:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition may leave this status.
func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusPending
}

func ParseStatusFromString(s string) (Status, error) {
	st := Status(strings.ToUpper(strings.TrimSpace(s)))
	if !st.IsValid() {
		return "", fmt.Errorf("%w: invalid status %q", ErrValidation, s)
	}
	return st, nil
}

// Type represents the delivery channel of a notification.
type Type string

const (
	TypeEmail Type = "EMAIL"
	TypeSMS   Type = "SMS"
	TypeInApp Type = "IN_APP"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case TypeEmail, TypeSMS, TypeInApp:
		return true
	}
	return false
}

func ParseTypeFromString(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: invalid type %q", ErrValidation, s)
	}
	return t, nil
}

// Notification is the core entity: exactly one record per dispatch request.
type Notification struct {
	ID           uint
	Recipient    string
	Type         Type
	Status       Status
	Subject      *string
	Content      string
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SentAt       *time.Time
}

// Validate checks the fields a record must carry before its first write.
// Type is deliberately not checked: the HTTP boundary parses it, and a
// dispatch of an unrecognized type is still recorded and marked failed.
func (n *Notification) Validate() error {
	if strings.TrimSpace(n.Recipient) == "" {
		return fmt.Errorf("%w: recipient is required", ErrValidation)
	}
	if strings.TrimSpace(n.Content) == "" {
		return fmt.Errorf("%w: content is required", ErrValidation)
	}
	return nil
}

// MarkSent records a successful delivery. ErrorMessage is cleared so the
// errorMessage-iff-FAILED invariant holds.
func (n *Notification) MarkSent(sentAt time.Time) {
	n.Status = StatusSent
	n.SentAt = &sentAt
	n.ErrorMessage = nil
}

// MarkFailed records a terminal delivery failure with its description.
func (n *Notification) MarkFailed(message string) {
	n.Status = StatusFailed
	n.SentAt = nil
	n.ErrorMessage = &message
}
