package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/session"
)

var testSessionCfg = config.SessionConfig{
	Secret:     "test-secret",
	CookieName: "ingrid_session",
	TTL:        time.Hour,
}

func sessionEngine(store session.Store) *gin.Engine {
	engine := gin.New()
	engine.Use(SessionLoader(store, testSessionCfg, false, zerolog.Nop()))
	engine.GET("/", okHandler)
	engine.POST("/login", func(c *gin.Context) {
		Session(c).UserID = "u1"
		c.Status(http.StatusNoContent)
	})
	engine.POST("/logout", func(c *gin.Context) {
		DestroySession(c)
		c.Status(http.StatusNoContent)
	})
	return engine
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == testSessionCfg.CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionLoader_CreatesSessionAndCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	engine := sessionEngine(store)

	rec := perform(engine, http.MethodGet, "/")

	cookie := sessionCookie(t, rec)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	data, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(data.AnalyticsID, "sess_"))
}

func TestSessionLoader_PersistsHandlerMutations(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	engine := sessionEngine(store)

	first := perform(engine, http.MethodGet, "/")
	cookie := sessionCookie(t, first)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	data, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, "u1", data.UserID)
}

func TestSessionLoader_KeepsAnalyticsIDAcrossRequests(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	engine := sessionEngine(store)

	first := perform(engine, http.MethodGet, "/")
	cookie := sessionCookie(t, first)
	data, err := store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	analyticsID := data.AnalyticsID

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	engine.ServeHTTP(httptest.NewRecorder(), req)

	data, err = store.Get(context.Background(), cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, analyticsID, data.AnalyticsID)
}

func TestSessionLoader_DestroyRemovesStateAndCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	engine := sessionEngine(store)

	first := perform(engine, http.MethodGet, "/")
	cookie := sessionCookie(t, first)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	_, err := store.Get(context.Background(), cookie.Value)
	assert.ErrorIs(t, err, session.ErrNotFound)

	cleared := sessionCookie(t, rec)
	assert.Empty(t, cleared.Value)
	assert.Negative(t, cleared.MaxAge)
}

func TestSessionLoader_UnknownCookieGetsFreshSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	engine := sessionEngine(store)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: testSessionCfg.CookieName, Value: "expired-id"})
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	cookie := sessionCookie(t, rec)
	assert.NotEqual(t, "expired-id", cookie.Value)
}
