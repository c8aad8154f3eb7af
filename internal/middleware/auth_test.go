package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/session"
)

func guardEngine(data *session.Data, resolver *fakeResolver, guard gin.HandlerFunc) (*gin.Engine, *captureSink) {
	sink := &captureSink{}
	engine := gin.New()
	engine.Use(
		injectSession(data),
		ErrorBoundary(testRecorder(sink), zerolog.Nop(), true),
		guard,
	)
	engine.GET("/admin/protected", okHandler)
	return engine, sink
}

func TestRequireAuth_AnonymousRedirectsToLogin(t *testing.T) {
	resolver := &fakeResolver{users: map[string]models.User{}}
	engine, _ := guardEngine(&session.Data{}, resolver, RequireAuth(resolver))

	rec := perform(engine, http.MethodGet, "/admin/protected")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
}

func TestRequireAuth_StaleUserIDDropsBindingAndRedirects(t *testing.T) {
	resolver := &fakeResolver{users: map[string]models.User{}}
	data := &session.Data{UserID: "deleted-user"}
	engine, _ := guardEngine(data, resolver, RequireAuth(resolver))

	rec := perform(engine, http.MethodGet, "/admin/protected")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Empty(t, data.UserID)
}

func TestRequireAuth_DeactivatedUserTreatedAsAnonymous(t *testing.T) {
	resolver := &fakeResolver{users: map[string]models.User{
		"u1": {ID: "u1", Username: "admin", Role: models.UserRoleAdmin, IsActive: false},
	}}
	data := &session.Data{UserID: "u1"}
	engine, _ := guardEngine(data, resolver, RequireAuth(resolver))

	rec := perform(engine, http.MethodGet, "/admin/protected")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	assert.Empty(t, data.UserID)
}

func TestRequireAuth_ActiveUserPasses(t *testing.T) {
	resolver := &fakeResolver{users: map[string]models.User{
		"u1": {ID: "u1", Username: "someone", Role: models.UserRoleUser, IsActive: true},
	}}
	engine, _ := guardEngine(&session.Data{UserID: "u1"}, resolver, RequireAuth(resolver))

	rec := perform(engine, http.MethodGet, "/admin/protected")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin_RoleMatrix(t *testing.T) {
	tests := []struct {
		name   string
		role   models.UserRole
		status int
	}{
		{"plain user denied", models.UserRoleUser, http.StatusForbidden},
		{"admin passes", models.UserRoleAdmin, http.StatusOK},
		{"superadmin passes", models.UserRoleSuperAdmin, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resolver := &fakeResolver{users: map[string]models.User{
				"u1": {ID: "u1", Username: "someone", Role: tc.role, IsActive: true},
			}}
			engine, _ := guardEngine(&session.Data{UserID: "u1"}, resolver, RequireAdmin(resolver))

			rec := perform(engine, http.MethodGet, "/admin/protected")
			assert.Equal(t, tc.status, rec.Code)
			if tc.status == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "Access denied. Admin role required.")
			}
		})
	}
}

func TestRequireSuperAdmin_AdminIsDenied(t *testing.T) {
	resolver := &fakeResolver{users: map[string]models.User{
		"u1": {ID: "u1", Username: "admin", Role: models.UserRoleAdmin, IsActive: true},
	}}
	engine, _ := guardEngine(&session.Data{UserID: "u1"}, resolver, RequireSuperAdmin(resolver))

	rec := perform(engine, http.MethodGet, "/admin/protected")

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access denied. Super Admin role required.")
}

func TestRequireSuperAdmin_SuperAdminPasses(t *testing.T) {
	resolver := &fakeResolver{users: map[string]models.User{
		"u1": {ID: "u1", Username: "superadmin", Role: models.UserRoleSuperAdmin, IsActive: true},
	}}
	engine, _ := guardEngine(&session.Data{UserID: "u1"}, resolver, RequireSuperAdmin(resolver))

	rec := perform(engine, http.MethodGet, "/admin/protected")
	assert.Equal(t, http.StatusOK, rec.Code)
}
