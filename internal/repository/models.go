package repository

import (
	"time"

	"github.com/fabiobufalari/communication-service/internal/domain"
)

// NotificationModel is the persistence model for the notifications table.
type NotificationModel struct {
	ID           uint          `gorm:"primaryKey;autoIncrement"`
	Recipient    string        `gorm:"type:varchar(255);not null"`
	Type         domain.Type   `gorm:"type:varchar(10);not null"`
	Status       domain.Status `gorm:"type:varchar(20);not null"`
	Subject      *string       `gorm:"type:varchar(255)"`
	Content      string        `gorm:"type:text;not null"`
	ErrorMessage *string       `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	SentAt       *time.Time
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func notificationModelFromDomain(n *domain.Notification) *NotificationModel {
	if n == nil {
		return nil
	}

	return &NotificationModel{
		ID:           n.ID,
		Recipient:    n.Recipient,
		Type:         n.Type,
		Status:       n.Status,
		Subject:      n.Subject,
		Content:      n.Content,
		ErrorMessage: n.ErrorMessage,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
		SentAt:       n.SentAt,
	}
}

func notificationModelToDomain(m *NotificationModel) *domain.Notification {
	if m == nil {
		return nil
	}

	return &domain.Notification{
		ID:           m.ID,
		Recipient:    m.Recipient,
		Type:         m.Type,
		Status:       m.Status,
		Subject:      m.Subject,
		Content:      m.Content,
		ErrorMessage: m.ErrorMessage,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		SentAt:       m.SentAt,
	}
}
