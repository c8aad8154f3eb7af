package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/repository"
	"github.com/Himselfzw/ingrid/internal/security"
)

// ErrInvalidCredentials covers unknown usernames, wrong passwords and
// deactivated accounts alike, so responses never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserStore is the identity persistence needed by authentication.
type UserStore interface {
	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	UpdateLastLogin(ctx context.Context, id string, at time.Time) error
}

type AuthService struct {
	users    UserStore
	recorder *audit.Recorder
	log      zerolog.Logger
}

func NewAuthService(users UserStore, recorder *audit.Recorder, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, recorder: recorder, log: log}
}

type LoginInput struct {
	Username  string
	Password  string
	IP        string
	UserAgent string
}

type LoginResult struct {
	User       models.User
	RedirectTo string
}

// Login verifies credentials and returns the role-based landing page. On
// failure it writes a warn-level audit entry with no user reference.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	user, err := s.users.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.recordFailure(ctx, input)
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	ok, err := security.VerifyPassword(input.Password, user.PasswordHash)
	if err != nil || !ok || !user.IsActive {
		s.recordFailure(ctx, input)
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("update last login failed")
	}

	s.recorder.Record(ctx, models.LogEntry{
		Level:     models.LogLevelInfo,
		Message:   fmt.Sprintf("User %s logged in", user.Username),
		UserID:    &user.ID,
		Action:    "login",
		IP:        input.IP,
		UserAgent: input.UserAgent,
	})

	return LoginResult{User: user, RedirectTo: redirectFor(user.Role)}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, input LoginInput) {
	s.recorder.Record(ctx, models.LogEntry{
		Level:     models.LogLevelWarn,
		Message:   fmt.Sprintf("Failed login attempt for username: %s", input.Username),
		Action:    "login_failed",
		IP:        input.IP,
		UserAgent: input.UserAgent,
	})
}

func redirectFor(role models.UserRole) string {
	switch role {
	case models.UserRoleSuperAdmin:
		return "/admin/super"
	case models.UserRoleAdmin:
		return "/admin"
	default:
		return "/"
	}
}

// Logout records the transition; the caller destroys the session state.
func (s *AuthService) Logout(ctx context.Context, userID, ip, userAgent string) {
	if userID == "" {
		return
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return
	}
	s.recorder.Record(ctx, models.LogEntry{
		Level:     models.LogLevelInfo,
		Message:   fmt.Sprintf("User %s logged out", user.Username),
		UserID:    &user.ID,
		Action:    "logout",
		IP:        ip,
		UserAgent: userAgent,
	})
}
