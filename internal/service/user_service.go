package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/domain"
	"github.com/accumanage/portal/internal/events"
	"github.com/accumanage/portal/internal/repository"
	apperrors "github.com/accumanage/portal/pkg/util"
)

const maxPageSize = 100

// UserService implements account administration.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher) *UserService {
	return &UserService{users: users, dispatcher: dispatcher}
}

// List returns a page of accounts.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	if limit <= 0 || limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return s.users.List(ctx, limit, offset)
}

// ChangeRole sets the role of another account.
func (s *UserService) ChangeRole(ctx context.Context, actor *auth.Claims, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}
	if actor.UserID == id {
		return nil, apperrors.NewValidationError("cannot change your own role", nil)
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	oldRole := user.Role
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, notFoundAs(err, "user")
	}
	user.Role = role

	s.publish(ctx, events.New(events.EventUserRoleChanged,
		events.Actor{UserID: actor.UserID, Role: actor.Role},
		events.UserRoleChangedPayload{UserID: id, OldRole: oldRole, NewRole: role}))
	return user, nil
}

// Delete removes another account.
func (s *UserService) Delete(ctx context.Context, actor *auth.Claims, id string) error {
	if actor.UserID == id {
		return apperrors.NewValidationError("cannot delete your own account", nil)
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return notFoundAs(err, "user")
	}

	s.publish(ctx, events.New(events.EventUserDeleted,
		events.Actor{UserID: actor.UserID, Role: actor.Role},
		events.UserPayload{UserID: user.ID, Email: user.Email}))
	return nil
}

func (s *UserService) load(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NewNotFound("user", nil)
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, "user")
	}
	return user, nil
}

func (s *UserService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func notFoundAs(err error, resource string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(resource, nil)
	}
	return err
}
