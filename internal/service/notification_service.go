package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fabiobufalari/communication-service/internal/domain"
	"github.com/fabiobufalari/communication-service/internal/observability"
	"github.com/fabiobufalari/communication-service/internal/provider"
	"github.com/fabiobufalari/communication-service/internal/repository"
	"go.uber.org/zap"
)

const unsupportedTypeMessage = "Unsupported notification type"

// Cache is the read cache consumed by notification lookups. The dispatch flow
// invalidates entries after its final write; lookups repopulate on miss.
type Cache interface {
	Get(ctx context.Context, id uint) (*domain.Notification, bool, error)
	Set(ctx context.Context, n *domain.Notification) error
	Invalidate(ctx context.Context, id uint) error
}

// DispatchRequest is a validated request to notify a single recipient.
type DispatchRequest struct {
	Recipient string
	Type      domain.Type
	Subject   *string
	Content   string
}

type NotificationService struct {
	notifications repository.NotificationRepository
	senders       *provider.Registry
	cache         Cache
	logger        *zap.Logger
	metrics       *observability.Metrics
	sendTimeout   time.Duration
}

func NewNotificationService(
	notifications repository.NotificationRepository,
	senders *provider.Registry,
	cache Cache,
	sendTimeout time.Duration,
	logger *zap.Logger,
) (*NotificationService, error) {
	if notifications == nil {
		return nil, fmt.Errorf("notification repository is required")
	}
	if senders == nil {
		return nil, fmt.Errorf("sender registry is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &NotificationService{
		notifications: notifications,
		senders:       senders,
		cache:         cache,
		logger:        logger,
		sendTimeout:   sendTimeout,
	}, nil
}

func (s *NotificationService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// Dispatch persists a PENDING record, attempts delivery on the matching
// channel, and persists the outcome. Send failures of any kind are recorded
// on the returned record, never surfaced as a call failure; only validation
// and persistence errors propagate.
func (s *NotificationService) Dispatch(ctx context.Context, req DispatchRequest) (*domain.Notification, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := observability.WithContextLogger(s.logger, ctx)

	notification := &domain.Notification{
		Recipient: strings.TrimSpace(req.Recipient),
		Type:      req.Type,
		Status:    domain.StatusPending,
		Subject:   normalizeOptionalString(req.Subject),
		Content:   strings.TrimSpace(req.Content),
	}
	// An unrecognized type is not rejected by Validate: the attempt is still
	// recorded and marked failed in the unsupported arm below.
	if err := notification.Validate(); err != nil {
		return nil, err
	}

	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to persist notification: %w", err)
	}
	logger.Info("notification accepted",
		zap.Uint("notificationId", notification.ID),
		zap.String("type", notification.Type.String()),
	)

	channelName := strings.ToLower(notification.Type.String())
	sender, ok := s.senders.ForType(notification.Type)
	if !ok {
		notification.MarkFailed(unsupportedTypeMessage)
		if s.metrics != nil {
			s.metrics.IncNotificationFailed(channelName, "unsupported_type")
		}
	} else {
		sendStart := time.Now()
		result, sendErr := s.attemptSend(ctx, sender, *notification)
		if s.metrics != nil {
			s.metrics.ObserveNotificationSendDuration(channelName, time.Since(sendStart))
		}

		if sendErr != nil {
			logger.Warn("notification send failed",
				zap.Uint("notificationId", notification.ID),
				zap.String("type", notification.Type.String()),
				zap.Error(sendErr),
			)
			notification.MarkFailed(sendErr.Error())
			if s.metrics != nil {
				s.metrics.IncNotificationFailed(channelName, "send_error")
			}
		} else {
			notification.MarkSent(result.SentAt)
			if s.metrics != nil {
				s.metrics.IncNotificationSent(channelName)
			}
		}
	}

	if err := s.notifications.Update(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to persist notification outcome: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, notification.ID); err != nil {
			logger.Warn("failed to invalidate notification cache",
				zap.Uint("notificationId", notification.ID),
				zap.Error(err),
			)
		}
	}

	logger.Info("notification finalized",
		zap.Uint("notificationId", notification.ID),
		zap.String("status", notification.Status.String()),
	)

	return notification, nil
}

// attemptSend bounds the sender call with the configured timeout and converts
// panics into a send failure, so dispatch always reaches its final write.
func (s *NotificationService) attemptSend(
	ctx context.Context,
	sender provider.Sender,
	notification domain.Notification,
) (result *provider.SendResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("unexpected send failure: %v", r)
		}
	}()

	sendCtx := ctx
	if s.sendTimeout > 0 {
		var cancel context.CancelFunc
		sendCtx, cancel = context.WithTimeout(ctx, s.sendTimeout)
		defer cancel()
	}

	result, err = sender.Send(sendCtx, notification)
	if err == nil && result == nil {
		err = fmt.Errorf("sender returned no result")
	}
	return result, err
}

func (s *NotificationService) GetByID(ctx context.Context, id uint) (*domain.Notification, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if id == 0 {
		return nil, fmt.Errorf("%w: notification with id 0", domain.ErrNotFound)
	}
	logger := observability.WithContextLogger(s.logger, ctx)

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, id)
		if err != nil {
			logger.Warn("notification cache read failed",
				zap.Uint("notificationId", id),
				zap.Error(err),
			)
		} else if found {
			return cached, nil
		}
	}

	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// A PENDING row read here can be finalized by a concurrent dispatch before
	// this Set lands, which would pin the stale snapshot for a full TTL. Only
	// outcomes are cached.
	if s.cache != nil && notification.Status != domain.StatusPending {
		if err := s.cache.Set(ctx, notification); err != nil {
			logger.Warn("notification cache write failed",
				zap.Uint("notificationId", id),
				zap.Error(err),
			)
		}
	}

	return notification, nil
}

func (s *NotificationService) List(ctx context.Context, params repository.ListParams) ([]domain.Notification, int64, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return s.notifications.List(ctx, params)
}

func normalizeOptionalString(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
