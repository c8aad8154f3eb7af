package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/repository"
	"github.com/Himselfzw/ingrid/internal/security"
)

type fakeUserStore struct {
	users      map[string]models.User
	lastLogins map[string]time.Time
}

func newFakeUserStore(users ...models.User) *fakeUserStore {
	store := &fakeUserStore{
		users:      make(map[string]models.User),
		lastLogins: make(map[string]time.Time),
	}
	for _, user := range users {
		store.users[user.ID] = user
	}
	return store
}

func (s *fakeUserStore) FindByUsername(_ context.Context, username string) (models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s.lastLogins[id] = at
	return nil
}

type captureSink struct {
	entries []models.LogEntry
}

func (s *captureSink) Record(_ context.Context, entry models.LogEntry) error {
	s.entries = append(s.entries, entry)
	return nil
}

func (s *captureSink) actions() []string {
	var actions []string
	for _, entry := range s.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

func testUser(t *testing.T, id, username, password string, role models.UserRole, active bool) models.User {
	t.Helper()
	hash, err := security.HashPassword(password)
	require.NoError(t, err)
	return models.User{
		ID:           id,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		Role:         role,
		IsActive:     active,
	}
}

func TestLogin_RedirectByRole(t *testing.T) {
	tests := []struct {
		name     string
		role     models.UserRole
		redirect string
	}{
		{"superadmin lands on super dashboard", models.UserRoleSuperAdmin, "/admin/super"},
		{"admin lands on dashboard", models.UserRoleAdmin, "/admin"},
		{"plain user lands on home", models.UserRoleUser, "/"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			user := testUser(t, "u1", "someone", "secret123", tc.role, true)
			store := newFakeUserStore(user)
			sink := &captureSink{}
			svc := NewAuthService(store, audit.NewRecorder(sink, zerolog.Nop()), zerolog.Nop())

			result, err := svc.Login(context.Background(), LoginInput{Username: "someone", Password: "secret123"})
			require.NoError(t, err)

			assert.Equal(t, tc.redirect, result.RedirectTo)
			assert.Equal(t, "u1", result.User.ID)
			assert.Contains(t, store.lastLogins, "u1")
			assert.Equal(t, []string{"login"}, sink.actions())
		})
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	active := testUser(t, "u1", "admin", "admin123", models.UserRoleAdmin, true)
	inactive := testUser(t, "u2", "ghost", "ghost123", models.UserRoleAdmin, false)
	store := newFakeUserStore(active, inactive)

	tests := []struct {
		name  string
		input LoginInput
	}{
		{"unknown username", LoginInput{Username: "nobody", Password: "whatever"}},
		{"wrong password", LoginInput{Username: "admin", Password: "wrong"}},
		{"deactivated account", LoginInput{Username: "ghost", Password: "ghost123"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sink := &captureSink{}
			svc := NewAuthService(store, audit.NewRecorder(sink, zerolog.Nop()), zerolog.Nop())

			_, err := svc.Login(context.Background(), tc.input)
			assert.ErrorIs(t, err, ErrInvalidCredentials)

			// Every failure writes the same warn entry with no user reference.
			require.Len(t, sink.entries, 1)
			entry := sink.entries[0]
			assert.Equal(t, models.LogLevelWarn, entry.Level)
			assert.Equal(t, "login_failed", entry.Action)
			assert.Nil(t, entry.UserID)
			assert.Equal(t, "Failed login attempt for username: "+tc.input.Username, entry.Message)
		})
	}
}

func TestLogout_RecordsTransition(t *testing.T) {
	user := testUser(t, "u1", "admin", "admin123", models.UserRoleAdmin, true)
	store := newFakeUserStore(user)
	sink := &captureSink{}
	svc := NewAuthService(store, audit.NewRecorder(sink, zerolog.Nop()), zerolog.Nop())

	svc.Logout(context.Background(), "u1", "10.0.0.1", "test-agent")

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, "logout", entry.Action)
	assert.Equal(t, "User admin logged out", entry.Message)
	require.NotNil(t, entry.UserID)
	assert.Equal(t, "u1", *entry.UserID)
}

func TestLogout_AnonymousIsSilent(t *testing.T) {
	sink := &captureSink{}
	svc := NewAuthService(newFakeUserStore(), audit.NewRecorder(sink, zerolog.Nop()), zerolog.Nop())

	svc.Logout(context.Background(), "", "10.0.0.1", "test-agent")
	assert.Empty(t, sink.entries)
}
