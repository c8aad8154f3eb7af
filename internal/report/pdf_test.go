package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himselfzw/ingrid/internal/models"
)

func TestUsersReport(t *testing.T) {
	lastLogin := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	users := []models.User{
		{ID: "u1", Username: "admin", Email: "admin@example.com", Role: models.UserRoleAdmin, IsActive: true, LastLogin: &lastLogin},
		{ID: "u2", Username: "superadmin", Email: "superadmin@example.com", Role: models.UserRoleSuperAdmin, IsActive: true},
	}

	pdf, err := Users(users)
	require.NoError(t, err)
	assert.True(t, len(pdf) > 0)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestLogsReport(t *testing.T) {
	username := "admin"
	entries := []models.LogEntry{
		{ID: "l1", Level: models.LogLevelInfo, Message: "GET /", Action: "get", Username: &username, CreatedAt: time.Now()},
		{ID: "l2", Level: models.LogLevelWarn, Message: "Failed login attempt for username: ghost", Action: "login_failed"},
	}

	pdf, err := Logs(entries)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestProductsReport_EmptyListStillRenders(t *testing.T) {
	pdf, err := Products(nil)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}
