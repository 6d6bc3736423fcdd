package repository

import (
	"context"
	"errors"

	"github.com/fabiobufalari/communication-service/internal/domain"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ListParams is an offset/limit page request. Page is zero-based.
type ListParams struct {
	Page     int
	PageSize int
}

func (p ListParams) normalized() ListParams {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.PageSize < 1 {
		p.PageSize = defaultPageSize
	}
	if p.PageSize > maxPageSize {
		p.PageSize = maxPageSize
	}
	return p
}

type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	Update(ctx context.Context, n *domain.Notification) error
	GetByID(ctx context.Context, id uint) (*domain.Notification, error)
	List(ctx context.Context, params ListParams) ([]domain.Notification, int64, error)
}

type GormNotificationRepo struct {
	db *gorm.DB
}

func NewGormNotificationRepo(db *gorm.DB) *GormNotificationRepo {
	return &GormNotificationRepo{db: db}
}

func (r *GormNotificationRepo) Create(ctx context.Context, n *domain.Notification) error {
	model := notificationModelFromDomain(n)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	if n != nil {
		*n = *notificationModelToDomain(model)
	}
	return nil
}

// Update persists the mutable fields only; id, type, recipient, content and
// created_at are immutable post-creation.
func (r *GormNotificationRepo) Update(ctx context.Context, n *domain.Notification) error {
	if n == nil || n.ID == 0 {
		return domain.ErrNotFound
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationModel{}).
		Where("id = ?", n.ID).
		Updates(map[string]any{
			"status":        n.Status,
			"error_message": n.ErrorMessage,
			"sent_at":       n.SentAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}

	var model NotificationModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", n.ID).Error; err != nil {
		return err
	}
	*n = *notificationModelToDomain(&model)
	return nil
}

func (r *GormNotificationRepo) GetByID(ctx context.Context, id uint) (*domain.Notification, error) {
	var model NotificationModel
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return notificationModelToDomain(&model), nil
}

func (r *GormNotificationRepo) List(ctx context.Context, params ListParams) ([]domain.Notification, int64, error) {
	params = params.normalized()
	query := r.db.WithContext(ctx).Model(&NotificationModel{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []NotificationModel
	// id DESC breaks ties when created_at values collide.
	err := query.
		Order("created_at DESC, id DESC").
		Offset(params.Page * params.PageSize).
		Limit(params.PageSize).
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	notifications := make([]domain.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, *notificationModelToDomain(&models[i]))
	}

	return notifications, total, nil
}
