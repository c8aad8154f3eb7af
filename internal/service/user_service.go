package service

import (
	"context"
	"fmt"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/ids"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/security"
)

// UserAdminStore is the persistence surface for user management.
type UserAdminStore interface {
	Create(ctx context.Context, user models.User) error
	GetByID(ctx context.Context, id string) (models.User, error)
	Update(ctx context.Context, user models.User) error
	Delete(ctx context.Context, id string) error
}

// UserService implements the super-admin user management operations and
// the self-service profile update. Every mutation leaves an audit entry.
type UserService struct {
	users    UserAdminStore
	recorder *audit.Recorder
}

func NewUserService(users UserAdminStore, recorder *audit.Recorder) *UserService {
	return &UserService{users: users, recorder: recorder}
}

type CreateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	Role      string
}

func (s *UserService) CreateUser(ctx context.Context, actor models.User, input CreateUserInput) (models.User, error) {
	if input.Username == "" || input.Password == "" {
		return models.User{}, apperr.Validation("Username and password are required")
	}

	role := models.UserRole(input.Role)
	if input.Role == "" {
		role = models.UserRoleUser
	} else if !models.ValidRole(input.Role) {
		return models.User{}, apperr.Validation("Unknown role")
	}
	if role == models.UserRoleSuperAdmin && actor.Role != models.UserRoleSuperAdmin {
		return models.User{}, apperr.Authorization("Only superadmins can assign superadmin role.")
	}

	email := input.Email
	if email == "" {
		email = input.Username + "@example.com"
	}

	passwordHash, err := security.HashPassword(input.Password)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		ID:           ids.New(),
		Username:     input.Username,
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: passwordHash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, err
	}

	s.recorder.Record(ctx, models.LogEntry{
		Level:    models.LogLevelInfo,
		Message:  fmt.Sprintf("User %s created", user.Username),
		UserID:   &actor.ID,
		Action:   "user_created",
		Metadata: map[string]any{"createdUserId": user.ID},
	})
	return user, nil
}

type UpdateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Role      string
	Password  string
}

// UpdateUser applies a super-admin edit. Escalation to superadmin is
// rejected unless the acting identity already holds that role, and the
// target record is left untouched.
func (s *UserService) UpdateUser(ctx context.Context, actor models.User, id string, input UpdateUserInput) error {
	if input.Role != "" && !models.ValidRole(input.Role) {
		return apperr.Validation("Unknown role")
	}
	if models.UserRole(input.Role) == models.UserRoleSuperAdmin && actor.Role != models.UserRoleSuperAdmin {
		return apperr.Authorization("Only superadmins can assign superadmin role.")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Username = input.Username
	user.Email = input.Email
	if input.Role != "" {
		user.Role = models.UserRole(input.Role)
	}
	if input.Password != "" {
		hash, err := security.HashPassword(input.Password)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.recorder.Record(ctx, models.LogEntry{
		Level:    models.LogLevelInfo,
		Message:  fmt.Sprintf("User %s updated", user.Username),
		UserID:   &actor.ID,
		Action:   "user_updated",
		Metadata: map[string]any{"updatedUserId": id},
	})
	return nil
}

// ToggleActive flips the activation flag and reports the new state.
func (s *UserService) ToggleActive(ctx context.Context, actor models.User, id string) (bool, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	user.IsActive = !user.IsActive
	if err := s.users.Update(ctx, user); err != nil {
		return false, err
	}

	state := "deactivated"
	if user.IsActive {
		state = "activated"
	}
	s.recorder.Record(ctx, models.LogEntry{
		Level:    models.LogLevelInfo,
		Message:  fmt.Sprintf("User %s %s", user.Username, state),
		UserID:   &actor.ID,
		Action:   "user_toggled",
		Metadata: map[string]any{"toggledUserId": id, "isActive": user.IsActive},
	})
	return user.IsActive, nil
}

// DeleteUser removes the account after capturing an audit trail entry.
func (s *UserService) DeleteUser(ctx context.Context, actor models.User, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.recorder.Record(ctx, models.LogEntry{
		Level:    models.LogLevelWarn,
		Message:  fmt.Sprintf("User %s deleted", user.Username),
		UserID:   &actor.ID,
		Action:   "user_deleted",
		Metadata: map[string]any{"deletedUserId": id},
	})
	return nil
}

type ProfileInput struct {
	FirstName       string
	LastName        string
	Username        string
	Email           string
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// UpdateProfile lets a signed-in user edit their own record. Password
// changes require the current password and a matching confirmation.
func (s *UserService) UpdateProfile(ctx context.Context, actor models.User, input ProfileInput) error {
	user, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return err
	}

	if input.NewPassword != "" {
		if input.CurrentPassword == "" {
			return apperr.Validation("Current password is required to change password.")
		}
		ok, err := security.VerifyPassword(input.CurrentPassword, user.PasswordHash)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.Validation("Current password is incorrect.")
		}
		if input.NewPassword != input.ConfirmPassword {
			return apperr.Validation("New passwords do not match.")
		}
		hash, err := security.HashPassword(input.NewPassword)
		if err != nil {
			return err
		}
		user.PasswordHash = hash
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Username = input.Username
	user.Email = input.Email

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.recorder.Record(ctx, models.LogEntry{
		Level:   models.LogLevelInfo,
		Message: fmt.Sprintf("User %s updated profile", user.Username),
		UserID:  &user.ID,
		Action:  "profile_updated",
	})
	return nil
}
