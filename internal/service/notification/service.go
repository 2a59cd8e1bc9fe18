package notification

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/rahat-sukari/api/internal/access"
	"github.com/rahat-sukari/api/internal/model"
	"github.com/rahat-sukari/api/internal/repository"
	apperrors "github.com/rahat-sukari/api/pkg/errors"
	"github.com/rahat-sukari/api/pkg/messaging"
)

const channel = "notifications"

type Service struct {
	repo   repository.NotificationRepository
	broker messaging.Broker
}

func NewService(repo repository.NotificationRepository, broker messaging.Broker) *Service {
	return &Service{repo: repo, broker: broker}
}

// Notify persists the notification and fans it out to the in-app
// channel. The broker publish is best-effort: the row is the source of
// truth and a failed publish never fails the request.
func (s *Service) Notify(ctx context.Context, accountID uuid.UUID, message string, relatedType model.RelatedType, relatedID *uuid.UUID) error {
	n := &model.Notification{
		AccountID:   accountID,
		Message:     message,
		RelatedType: relatedType,
		RelatedID:   relatedID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	event := &model.NotificationEvent{
		ID:             uuid.New(),
		NotificationID: n.ID,
		AccountID:      n.AccountID,
		Message:        n.Message,
		RelatedType:    n.RelatedType,
		RelatedID:      n.RelatedID,
		CreatedAt:      time.Now(),
	}
	if err := s.broker.Publish(ctx, channel, event); err != nil {
		log.Warn().Err(err).Str("notification_id", n.ID.String()).Msg("notification publish failed")
	}
	return nil
}

func (s *Service) List(ctx context.Context, actor model.Actor) ([]*model.Notification, error) {
	notifications, err := s.repo.ListByAccount(ctx, actor.AccountID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return notifications, nil
}

func (s *Service) MarkRead(ctx context.Context, actor model.Actor, id uuid.UUID) (*model.Notification, error) {
	n, err := s.repo.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound("notification")
	}
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	if !access.CanReadNotification(actor, n.AccountID) {
		return nil, apperrors.Forbidden()
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return nil, apperrors.Internal(err)
	}
	n.IsRead = true
	return n, nil
}
