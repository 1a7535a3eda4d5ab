package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/response"
)

func TestNotificationService_CardAssigned_PersistsPayload(t *testing.T) {
	repo := &MockNotificationRepository{}
	var stored *domain.Notification
	repo.CreateFunc = func(ctx context.Context, notification *domain.Notification) error {
		stored = notification
		return nil
	}
	svc := NewNotificationService(repo, zap.NewNop())

	recipient := uuid.New()
	card := &domain.Card{
		BaseModel: domain.BaseModel{ID: uuid.New()},
		ColumnID:  uuid.New(),
		Title:     "Ship it",
	}
	svc.CardAssigned(context.Background(), recipient, card)

	require.NotNil(t, stored)
	assert.Equal(t, recipient, stored.RecipientID)
	assert.Equal(t, domain.NotificationCardAssigned, stored.Type)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(stored.Payload, &payload))
	assert.Equal(t, card.ID.String(), payload["cardId"])
	assert.Equal(t, "Ship it", payload["title"])
}

func TestNotificationService_EmitFailureDoesNotPanic(t *testing.T) {
	repo := &MockNotificationRepository{}
	repo.CreateFunc = func(ctx context.Context, notification *domain.Notification) error {
		return errors.New("database error")
	}
	svc := NewNotificationService(repo, zap.NewNop())

	assert.NotPanics(t, func() {
		svc.MemberAdded(context.Background(), uuid.New(), &domain.Project{Name: "Launch"}, domain.ProjectRoleMember)
	})
}

func TestNotificationService_ListNotifications_Cursor(t *testing.T) {
	repo := &MockNotificationRepository{}
	recipient := uuid.New()
	base := time.Now().UTC()

	fullPage := make([]*domain.Notification, defaultNotificationPageSize)
	for i := range fullPage {
		fullPage[i] = &domain.Notification{
			BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: base.Add(-time.Duration(i) * time.Minute)},
			RecipientID: recipient,
			Type:        domain.NotificationCardAssigned,
		}
	}
	repo.FindByRecipientFunc = func(ctx context.Context, recipientID uuid.UUID, before *time.Time, limit int) ([]*domain.Notification, error) {
		assert.Equal(t, defaultNotificationPageSize, limit)
		return fullPage, nil
	}
	repo.CountUnreadFunc = func(ctx context.Context, recipientID uuid.UUID) (int64, error) {
		return 7, nil
	}
	svc := NewNotificationService(repo, zap.NewNop())

	resp, err := svc.ListNotifications(context.Background(), recipient, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, defaultNotificationPageSize)
	assert.Equal(t, int64(7), resp.UnreadCount)
	require.NotNil(t, resp.NextBefore)
	assert.Equal(t, fullPage[len(fullPage)-1].CreatedAt, *resp.NextBefore)
}

func TestNotificationService_ListNotifications_PartialPageEndsPaging(t *testing.T) {
	repo := &MockNotificationRepository{}
	repo.FindByRecipientFunc = func(ctx context.Context, recipientID uuid.UUID, before *time.Time, limit int) ([]*domain.Notification, error) {
		return []*domain.Notification{{
			BaseModel:   domain.BaseModel{ID: uuid.New(), CreatedAt: time.Now().UTC()},
			RecipientID: recipientID,
			Type:        domain.NotificationMemberAdded,
		}}, nil
	}
	svc := NewNotificationService(repo, zap.NewNop())

	resp, err := svc.ListNotifications(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Len(t, resp.Notifications, 1)
	assert.Nil(t, resp.NextBefore)
}

func TestNotificationService_MarkRead_Missing(t *testing.T) {
	repo := &MockNotificationRepository{}
	repo.MarkReadFunc = func(ctx context.Context, recipientID, notificationID uuid.UUID) error {
		return gorm.ErrRecordNotFound
	}
	svc := NewNotificationService(repo, zap.NewNop())

	err := svc.MarkRead(context.Background(), uuid.New(), uuid.New())
	assertAppErrorCode(t, err, response.ErrCodeNotFound)
}
