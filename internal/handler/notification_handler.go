package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fabiobufalari/communication-service/internal/auth"
	"github.com/fabiobufalari/communication-service/internal/domain"
	"github.com/fabiobufalari/communication-service/internal/observability"
	"github.com/fabiobufalari/communication-service/internal/repository"
	"github.com/fabiobufalari/communication-service/internal/service"
	"github.com/fabiobufalari/communication-service/internal/transport"
	"github.com/gofiber/fiber/v2"
)

const (
	defaultPage     = 0
	defaultPageSize = 20
	maxPageSize     = 100
)

type NotificationService interface {
	Dispatch(ctx context.Context, req service.DispatchRequest) (*domain.Notification, error)
	GetByID(ctx context.Context, id uint) (*domain.Notification, error)
	List(ctx context.Context, params repository.ListParams) ([]domain.Notification, int64, error)
}

type NotificationHandler struct {
	service NotificationService
}

func NewNotificationHandler(service NotificationService) (*NotificationHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("notification service is required")
	}
	return &NotificationHandler{service: service}, nil
}

// RegisterNotificationRoutes wires the notification API. Sending is gated to
// ADMIN/SYSTEM, reading to ADMIN/SUPPORT.
func RegisterNotificationRoutes(router fiber.Router, service NotificationService, tokens *auth.TokenService) error {
	h, err := NewNotificationHandler(service)
	if err != nil {
		return err
	}
	if tokens == nil {
		return fmt.Errorf("token service is required")
	}

	v1 := router.Group("/api/v1")
	v1.Post("/notifications", auth.RequireRoles(tokens, auth.RoleAdmin, auth.RoleSystem), h.SendNotification)
	v1.Get("/notifications/:id", auth.RequireRoles(tokens, auth.RoleAdmin, auth.RoleSupport), h.GetNotification)
	v1.Get("/notifications", auth.RequireRoles(tokens, auth.RoleAdmin, auth.RoleSupport), h.ListNotifications)

	return nil
}

type sendNotificationRequest struct {
	Recipient string  `json:"recipient"`
	Type      string  `json:"type"`
	Subject   *string `json:"subject,omitempty"`
	Content   string  `json:"content"`
}

type notificationResponse struct {
	ID           uint       `json:"id"`
	Recipient    string     `json:"recipient"`
	Type         string     `json:"type"`
	Status       string     `json:"status"`
	Subject      *string    `json:"subject,omitempty"`
	Content      string     `json:"content"`
	ErrorMessage *string    `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	SentAt       *time.Time `json:"sentAt,omitempty"`
}

type listNotificationsResponse struct {
	Items      []notificationResponse `json:"items"`
	TotalCount int64                  `json:"totalCount"`
	PageNumber int                    `json:"pageNumber"`
	PageSize   int                    `json:"pageSize"`
}

func (h *NotificationHandler) SendNotification(c *fiber.Ctx) error {
	var req sendNotificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if strings.TrimSpace(req.Recipient) == "" {
		return fmt.Errorf("%w: recipient is required", domain.ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return fmt.Errorf("%w: content is required", domain.ErrValidation)
	}
	notificationType, err := domain.ParseTypeFromString(req.Type)
	if err != nil {
		return err
	}

	created, err := h.service.Dispatch(requestContext(c), service.DispatchRequest{
		Recipient: strings.TrimSpace(req.Recipient),
		Type:      notificationType,
		Subject:   req.Subject,
		Content:   strings.TrimSpace(req.Content),
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(toNotificationResponse(created))
}

func (h *NotificationHandler) GetNotification(c *fiber.Ctx) error {
	id, err := parseID(c.Params("id"))
	if err != nil {
		return err
	}

	notification, err := h.service.GetByID(requestContext(c), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(toNotificationResponse(notification))
}

func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return err
	}

	notifications, total, err := h.service.List(requestContext(c), params)
	if err != nil {
		return err
	}

	items := make([]notificationResponse, 0, len(notifications))
	for i := range notifications {
		items = append(items, toNotificationResponse(&notifications[i]))
	}

	return c.Status(fiber.StatusOK).JSON(listNotificationsResponse{
		Items:      items,
		TotalCount: total,
		PageNumber: params.Page,
		PageSize:   params.PageSize,
	})
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: id must be a positive integer", domain.ErrValidation)
	}
	return uint(id), nil
}

func parseListParams(c *fiber.Ctx) (repository.ListParams, error) {
	params := repository.ListParams{
		Page:     c.QueryInt("page", defaultPage),
		PageSize: c.QueryInt("size", defaultPageSize),
	}

	if params.Page < 0 {
		return repository.ListParams{}, fmt.Errorf("%w: page must be >= 0", domain.ErrValidation)
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return repository.ListParams{}, fmt.Errorf("%w: size must be between 1 and %d", domain.ErrValidation, maxPageSize)
	}

	return params, nil
}

func requestContext(c *fiber.Ctx) context.Context {
	ctx := c.Context()
	if requestID := transport.RequestIDFromContext(c); requestID != "" {
		return observability.WithCorrelationID(ctx, requestID)
	}
	return ctx
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	if n == nil {
		return notificationResponse{}
	}

	return notificationResponse{
		ID:           n.ID,
		Recipient:    n.Recipient,
		Type:         n.Type.String(),
		Status:       n.Status.String(),
		Subject:      n.Subject,
		Content:      n.Content,
		ErrorMessage: n.ErrorMessage,
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
		SentAt:       n.SentAt,
	}
}
