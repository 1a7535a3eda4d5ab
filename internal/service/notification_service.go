package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// defaultNotificationPageSize caps one page of the notification list
const defaultNotificationPageSize = 20

// Notifier is the event-producing side of notifications. The resource
// services emit through it; delivery failures are logged and never fail
// the operation that triggered them.
type Notifier interface {
	CardAssigned(ctx context.Context, recipientID uuid.UUID, card *domain.Card)
	MemberAdded(ctx context.Context, recipientID uuid.UUID, project *domain.Project, role domain.ProjectRole)
	MemberRemoved(ctx context.Context, recipientID uuid.UUID, project *domain.Project)
}

// NotificationService defines the recipient-facing notification operations
type NotificationService interface {
	Notifier
	ListNotifications(ctx context.Context, recipientID uuid.UUID, before *time.Time) (*dto.NotificationListResponse, error)
	MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
}

// notificationServiceImpl is the implementation of NotificationService
type notificationServiceImpl struct {
	notificationRepo repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new instance of NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository, logger *zap.Logger) NotificationService {
	return &notificationServiceImpl{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CardAssigned notifies a user they were assigned to a card
func (s *notificationServiceImpl) CardAssigned(ctx context.Context, recipientID uuid.UUID, card *domain.Card) {
	s.emit(ctx, recipientID, domain.NotificationCardAssigned, map[string]interface{}{
		"cardId":   card.ID,
		"columnId": card.ColumnID,
		"title":    card.Title,
	})
}

// MemberAdded notifies a user they were added to a project
func (s *notificationServiceImpl) MemberAdded(ctx context.Context, recipientID uuid.UUID, project *domain.Project, role domain.ProjectRole) {
	s.emit(ctx, recipientID, domain.NotificationMemberAdded, map[string]interface{}{
		"projectId":   project.ID,
		"projectName": project.Name,
		"role":        role,
	})
}

// MemberRemoved notifies a user they were removed from a project
func (s *notificationServiceImpl) MemberRemoved(ctx context.Context, recipientID uuid.UUID, project *domain.Project) {
	s.emit(ctx, recipientID, domain.NotificationMemberRemoved, map[string]interface{}{
		"projectId":   project.ID,
		"projectName": project.Name,
	})
}

// emit persists a notification; failures only log
func (s *notificationServiceImpl) emit(ctx context.Context, recipientID uuid.UUID, typ domain.NotificationType, payload map[string]interface{}) {
	raw, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to encode notification payload", zap.Error(err))
		return
	}
	notification := &domain.Notification{
		RecipientID: recipientID,
		Type:        typ,
		Payload:     raw,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Error("Failed to persist notification",
			zap.String("type", string(typ)),
			zap.String("recipient_id", recipientID.String()),
			zap.Error(err),
		)
	}
}

// ListNotifications returns one page of the recipient's notifications,
// newest first, plus the unread count and the cursor for the next page.
func (s *notificationServiceImpl) ListNotifications(ctx context.Context, recipientID uuid.UUID, before *time.Time) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindByRecipient(ctx, recipientID, before, defaultNotificationPageSize)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to list notifications", err.Error())
	}
	unread, err := s.notificationRepo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, response.NewAppError(response.ErrCodeInternal, "Failed to count notifications", err.Error())
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]*dto.NotificationResponse, len(notifications)),
		UnreadCount:   unread,
	}
	for i, n := range notifications {
		resp.Notifications[i] = dto.ToNotificationResponse(n)
	}
	if len(notifications) == defaultNotificationPageSize {
		cursor := notifications[len(notifications)-1].CreatedAt
		resp.NextBefore = &cursor
	}
	return resp, nil
}

// MarkRead marks one of the recipient's notifications as read
func (s *notificationServiceImpl) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	if err := s.notificationRepo.MarkRead(ctx, recipientID, notificationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewNotFoundError("Notification not found", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to mark notification read", err.Error())
	}
	return nil
}

// MarkAllRead marks every unread notification of the recipient as read
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.notificationRepo.MarkAllRead(ctx, recipientID); err != nil {
		return response.NewAppError(response.ErrCodeInternal, "Failed to mark notifications read", err.Error())
	}
	return nil
}
