package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/access"
	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/repository"
	"kanban-board-api/internal/response"
)

// MockProjectRepository is a mock implementation of ProjectRepository
type MockProjectRepository struct {
	CreateFunc                     func(ctx context.Context, project *domain.Project) error
	FindByIDFunc                   func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	FindByUserIDFunc               func(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error)
	UpdateFunc                     func(ctx context.Context, project *domain.Project) error
	AddMemberFunc                  func(ctx context.Context, member *domain.ProjectMember) error
	RemoveMemberFunc               func(ctx context.Context, projectID, userID uuid.UUID) error
	FindMemberByProjectAndUserFunc func(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMember, error)
	FindMembersByProjectIDFunc     func(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectMember, error)
	GetRoleFunc                    func(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error)
}

func (m *MockProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*domain.Project, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, project)
	}
	return nil
}

func (m *MockProjectRepository) AddMember(ctx context.Context, member *domain.ProjectMember) error {
	if m.AddMemberFunc != nil {
		return m.AddMemberFunc(ctx, member)
	}
	return nil
}

func (m *MockProjectRepository) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	if m.RemoveMemberFunc != nil {
		return m.RemoveMemberFunc(ctx, projectID, userID)
	}
	return nil
}

func (m *MockProjectRepository) FindMemberByProjectAndUser(ctx context.Context, projectID, userID uuid.UUID) (*domain.ProjectMember, error) {
	if m.FindMemberByProjectAndUserFunc != nil {
		return m.FindMemberByProjectAndUserFunc(ctx, projectID, userID)
	}
	return nil, nil
}

func (m *MockProjectRepository) FindMembersByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.ProjectMember, error) {
	if m.FindMembersByProjectIDFunc != nil {
		return m.FindMembersByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockProjectRepository) GetRole(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error) {
	if m.GetRoleFunc != nil {
		return m.GetRoleFunc(ctx, projectID, userID)
	}
	return "", gorm.ErrRecordNotFound
}

// MockBoardRepository is a mock implementation of BoardRepository
type MockBoardRepository struct {
	CreateFunc          func(ctx context.Context, board *domain.Board) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Board, error)
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Board, error)
	UpdateFunc          func(ctx context.Context, board *domain.Board) error
	ArchiveFunc         func(ctx context.Context, id uuid.UUID) error
	RestoreFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *MockBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Board, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockBoardRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Board, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockBoardRepository) Update(ctx context.Context, board *domain.Board) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, board)
	}
	return nil
}

func (m *MockBoardRepository) Archive(ctx context.Context, id uuid.UUID) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	return nil
}

func (m *MockBoardRepository) Restore(ctx context.Context, id uuid.UUID) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

// MockColumnRepository is a mock implementation of ColumnRepository
type MockColumnRepository struct {
	CreateFunc        func(ctx context.Context, column *domain.Column) error
	FindByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Column, error)
	FindByBoardIDFunc func(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error)
	UpdateFunc        func(ctx context.Context, column *domain.Column) error
	ReorderFunc       func(ctx context.Context, boardID, columnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Column, error)
	ArchiveFunc       func(ctx context.Context, id uuid.UUID) error
	RestoreFunc       func(ctx context.Context, id uuid.UUID) error
}

func (m *MockColumnRepository) Create(ctx context.Context, column *domain.Column) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Column, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockColumnRepository) FindByBoardID(ctx context.Context, boardID uuid.UUID) ([]*domain.Column, error) {
	if m.FindByBoardIDFunc != nil {
		return m.FindByBoardIDFunc(ctx, boardID)
	}
	return nil, nil
}

func (m *MockColumnRepository) Update(ctx context.Context, column *domain.Column) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, column)
	}
	return nil
}

func (m *MockColumnRepository) Reorder(ctx context.Context, boardID, columnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Column, error) {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, boardID, columnID, beforeID, afterID)
	}
	return nil, nil
}

func (m *MockColumnRepository) Archive(ctx context.Context, id uuid.UUID) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	return nil
}

func (m *MockColumnRepository) Restore(ctx context.Context, id uuid.UUID) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

// MockCardRepository is a mock implementation of CardRepository
type MockCardRepository struct {
	CreateFunc         func(ctx context.Context, card *domain.Card) error
	FindByIDFunc       func(ctx context.Context, id uuid.UUID) (*domain.Card, error)
	FindByColumnIDFunc func(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error)
	UpdateContentFunc  func(ctx context.Context, id uuid.UUID, content repository.CardContent, expectedVersion int) (*domain.Card, error)
	ReorderFunc        func(ctx context.Context, columnID, cardID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error)
	MoveToColumnFunc   func(ctx context.Context, cardID, targetColumnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error)
	ArchiveFunc        func(ctx context.Context, id uuid.UUID) error
	RestoreFunc        func(ctx context.Context, id uuid.UUID) error
	AddTagFunc         func(ctx context.Context, cardID, tagID uuid.UUID) error
	RemoveTagFunc      func(ctx context.Context, cardID, tagID uuid.UUID) error
}

func (m *MockCardRepository) Create(ctx context.Context, card *domain.Card) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, card)
	}
	return nil
}

func (m *MockCardRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockCardRepository) FindByColumnID(ctx context.Context, columnID uuid.UUID) ([]*domain.Card, error) {
	if m.FindByColumnIDFunc != nil {
		return m.FindByColumnIDFunc(ctx, columnID)
	}
	return nil, nil
}

func (m *MockCardRepository) UpdateContent(ctx context.Context, id uuid.UUID, content repository.CardContent, expectedVersion int) (*domain.Card, error) {
	if m.UpdateContentFunc != nil {
		return m.UpdateContentFunc(ctx, id, content, expectedVersion)
	}
	return nil, nil
}

func (m *MockCardRepository) Reorder(ctx context.Context, columnID, cardID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error) {
	if m.ReorderFunc != nil {
		return m.ReorderFunc(ctx, columnID, cardID, beforeID, afterID)
	}
	return nil, nil
}

func (m *MockCardRepository) MoveToColumn(ctx context.Context, cardID, targetColumnID uuid.UUID, beforeID, afterID *uuid.UUID) (*domain.Card, error) {
	if m.MoveToColumnFunc != nil {
		return m.MoveToColumnFunc(ctx, cardID, targetColumnID, beforeID, afterID)
	}
	return nil, nil
}

func (m *MockCardRepository) Archive(ctx context.Context, id uuid.UUID) error {
	if m.ArchiveFunc != nil {
		return m.ArchiveFunc(ctx, id)
	}
	return nil
}

func (m *MockCardRepository) Restore(ctx context.Context, id uuid.UUID) error {
	if m.RestoreFunc != nil {
		return m.RestoreFunc(ctx, id)
	}
	return nil
}

func (m *MockCardRepository) AddTag(ctx context.Context, cardID, tagID uuid.UUID) error {
	if m.AddTagFunc != nil {
		return m.AddTagFunc(ctx, cardID, tagID)
	}
	return nil
}

func (m *MockCardRepository) RemoveTag(ctx context.Context, cardID, tagID uuid.UUID) error {
	if m.RemoveTagFunc != nil {
		return m.RemoveTagFunc(ctx, cardID, tagID)
	}
	return nil
}

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	CreateFunc          func(ctx context.Context, tag *domain.Tag) error
	FindByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	FindByProjectIDFunc func(ctx context.Context, projectID uuid.UUID) ([]*domain.Tag, error)
	UpdateFunc          func(ctx context.Context, tag *domain.Tag) error
	DeleteFunc          func(ctx context.Context, id uuid.UUID) error
}

func (m *MockTagRepository) Create(ctx context.Context, tag *domain.Tag) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tag)
	}
	return nil
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *MockTagRepository) FindByProjectID(ctx context.Context, projectID uuid.UUID) ([]*domain.Tag, error) {
	if m.FindByProjectIDFunc != nil {
		return m.FindByProjectIDFunc(ctx, projectID)
	}
	return nil, nil
}

func (m *MockTagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tag)
	}
	return nil
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	CreateFunc           func(ctx context.Context, notification *domain.Notification) error
	FindByRecipientFunc  func(ctx context.Context, recipientID uuid.UUID, before *time.Time, limit int) ([]*domain.Notification, error)
	CountUnreadFunc      func(ctx context.Context, recipientID uuid.UUID) (int64, error)
	MarkReadFunc         func(ctx context.Context, recipientID, notificationID uuid.UUID) error
	MarkAllReadFunc      func(ctx context.Context, recipientID uuid.UUID) error
	DeleteReadBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, notification)
	}
	return nil
}

func (m *MockNotificationRepository) FindByRecipient(ctx context.Context, recipientID uuid.UUID, before *time.Time, limit int) ([]*domain.Notification, error) {
	if m.FindByRecipientFunc != nil {
		return m.FindByRecipientFunc(ctx, recipientID, before, limit)
	}
	return nil, nil
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int64, error) {
	if m.CountUnreadFunc != nil {
		return m.CountUnreadFunc(ctx, recipientID)
	}
	return 0, nil
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, recipientID, notificationID uuid.UUID) error {
	if m.MarkReadFunc != nil {
		return m.MarkReadFunc(ctx, recipientID, notificationID)
	}
	return nil
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if m.MarkAllReadFunc != nil {
		return m.MarkAllReadFunc(ctx, recipientID)
	}
	return nil
}

func (m *MockNotificationRepository) DeleteReadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if m.DeleteReadBeforeFunc != nil {
		return m.DeleteReadBeforeFunc(ctx, cutoff)
	}
	return 0, nil
}

// notifierCall records one emitted notification event
type notifierCall struct {
	Event       string
	RecipientID uuid.UUID
}

// MockNotifier records emitted events without persisting anything
type MockNotifier struct {
	Calls []notifierCall
}

func (m *MockNotifier) CardAssigned(ctx context.Context, recipientID uuid.UUID, card *domain.Card) {
	m.Calls = append(m.Calls, notifierCall{Event: "card_assigned", RecipientID: recipientID})
}

func (m *MockNotifier) MemberAdded(ctx context.Context, recipientID uuid.UUID, project *domain.Project, role domain.ProjectRole) {
	m.Calls = append(m.Calls, notifierCall{Event: "member_added", RecipientID: recipientID})
}

func (m *MockNotifier) MemberRemoved(ctx context.Context, recipientID uuid.UUID, project *domain.Project) {
	m.Calls = append(m.Calls, notifierCall{Event: "member_removed", RecipientID: recipientID})
}

// gateForRoles builds a Gate whose lookup answers from a fixed user-to-role
// table. Users absent from the table read as non-members.
func gateForRoles(roles map[uuid.UUID]domain.ProjectRole) *access.Gate {
	lookup := access.RoleLookupFunc(func(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error) {
		if role, ok := roles[userID]; ok {
			return role, nil
		}
		return "", gorm.ErrRecordNotFound
	})
	return access.NewGate(lookup, zap.NewNop())
}

// assertAppErrorCode fails the test unless err is an AppError with the
// expected code.
func assertAppErrorCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", code)
	}
	appErr, ok := err.(*response.AppError)
	if !ok {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.Code != code {
		t.Fatalf("expected error code %s, got %s (%s)", code, appErr.Code, appErr.Message)
	}
}
