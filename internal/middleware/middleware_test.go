package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/repository"
	"github.com/Himselfzw/ingrid/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureSink collects audit entries for assertions.
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

func testRecorder(sink *captureSink) *audit.Recorder {
	return audit.NewRecorder(sink, zerolog.Nop())
}

// injectSession places session state on the context the way SessionLoader
// does, without cookies or a backing store.
func injectSession(data *session.Data) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeySessionID, "test-session")
		c.Set(ctxKeySessionData, data)
		c.Next()
	}
}

// fakeResolver resolves user ids from a static map.
type fakeResolver struct {
	users map[string]models.User
}

func (r *fakeResolver) GetByID(_ context.Context, id string) (models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return models.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func perform(engine *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func okHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
