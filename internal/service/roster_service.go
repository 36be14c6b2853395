package service

import (
	"context"
	"log/slog"

	"littlelemon/internal/auth"
	"littlelemon/internal/models"
	"littlelemon/internal/storage"
)

// RosterService manages membership of the manager and delivery crew roles.
// Every operation requires a manager or superuser actor. Membership is a
// set: adding a user already in the role succeeds, removing a user not in
// the role is storage.ErrNotFound.
type RosterService struct {
	store storage.Store
}

// NewRosterService creates a new RosterService with the given storage backend.
func NewRosterService(store storage.Store) *RosterService {
	return &RosterService{store: store}
}

// List returns every user holding the role.
func (s *RosterService) List(ctx context.Context, actor auth.Actor, role auth.Role) ([]*models.User, error) {
	if err := auth.Authorize(actor, auth.OpRosterManage); err != nil {
		return nil, err
	}
	return s.store.ListUsersByRole(ctx, string(role))
}

// Get retrieves a user by id, but only while they hold the role.
func (s *RosterService) Get(ctx context.Context, actor auth.Actor, role auth.Role, userID string) (*models.User, error) {
	if err := auth.Authorize(actor, auth.OpRosterManage); err != nil {
		return nil, err
	}
	held, err := s.store.UserHasRole(ctx, userID, string(role))
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, storage.ErrNotFound
	}
	return s.store.GetUserByID(ctx, userID)
}

// Add grants the role to the user named by username. Unknown usernames are
// storage.ErrNotFound; re-adding a held role is a no-op.
func (s *RosterService) Add(ctx context.Context, actor auth.Actor, role auth.Role, username string) (*models.User, error) {
	if err := auth.Authorize(actor, auth.OpRosterManage); err != nil {
		return nil, err
	}
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := s.store.AddUserRole(ctx, user.ID, string(role)); err != nil {
		return nil, err
	}
	slog.Info("role granted", "role", role, "user_id", user.ID, "actor", actor.Username)
	return user, nil
}

// Remove revokes the role from the user. Removing a role the user does not
// hold is storage.ErrNotFound and changes nothing.
func (s *RosterService) Remove(ctx context.Context, actor auth.Actor, role auth.Role, userID string) error {
	if err := auth.Authorize(actor, auth.OpRosterManage); err != nil {
		return err
	}
	if err := s.store.RemoveUserRole(ctx, userID, string(role)); err != nil {
		return err
	}
	slog.Info("role revoked", "role", role, "user_id", userID, "actor", actor.Username)
	return nil
}
