// Package access resolves an actor's project role and authorizes operations
// against a minimum required role. Every mutating operation on boards,
// columns, cards and tags passes through the gate before touching storage.
package access

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kanban-board-api/internal/domain"
	"kanban-board-api/internal/response"
)

// RoleLookup resolves a user's membership role for a project. The
// repository-backed lookup is used in production; tests inject a fake.
type RoleLookup interface {
	GetRole(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error)
}

// RoleLookupFunc adapts a function to the RoleLookup interface.
type RoleLookupFunc func(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error)

// GetRole calls the wrapped function.
func (f RoleLookupFunc) GetRole(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error) {
	return f(ctx, projectID, userID)
}

// RoleInvalidator is implemented by lookups that cache role resolutions.
type RoleInvalidator interface {
	Invalidate(ctx context.Context, projectID, userID uuid.UUID)
}

// Gate authorizes operations by comparing the actor's role ordinal against
// the required role ordinal (Owner < Member < Viewer; lower passes stricter
// checks).
type Gate struct {
	lookup RoleLookup
	logger *zap.Logger
}

// NewGate creates a Gate over the given role lookup.
func NewGate(lookup RoleLookup, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{lookup: lookup, logger: logger}
}

// Authorize returns nil when userID holds at least the required role in the
// project. Absence of membership means no access. The returned failure is a
// FORBIDDEN AppError, distinguishable from not-found at the call site.
func (g *Gate) Authorize(ctx context.Context, projectID, userID uuid.UUID, required domain.ProjectRole) error {
	role, err := g.lookup.GetRole(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NewForbiddenError("You are not a member of this project", "")
		}
		return response.NewAppError(response.ErrCodeInternal, "Failed to resolve project role", err.Error())
	}

	if !role.AtLeast(required) {
		g.logger.Debug("Authorization rejected",
			zap.String("project_id", projectID.String()),
			zap.String("user_id", userID.String()),
			zap.String("role", string(role)),
			zap.String("required", string(required)),
		)
		return response.NewForbiddenError("Insufficient project role for this operation", "")
	}
	return nil
}

// InvalidateRole drops any cached role for the pair. Membership mutations
// call it after the write lands; lookups without a cache ignore it.
func (g *Gate) InvalidateRole(ctx context.Context, projectID, userID uuid.UUID) {
	if inv, ok := g.lookup.(RoleInvalidator); ok {
		inv.Invalidate(ctx, projectID, userID)
	}
}

// Role returns the actor's role without enforcing a minimum. Callers use it
// when the decision depends on which role the actor holds rather than on a
// single threshold.
func (g *Gate) Role(ctx context.Context, projectID, userID uuid.UUID) (domain.ProjectRole, error) {
	return g.lookup.GetRole(ctx, projectID, userID)
}
