package middleware

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/session"
)

func logEngine(sink *captureSink) *gin.Engine {
	engine := gin.New()
	engine.Use(
		injectSession(&session.Data{UserID: "u1"}),
		RequestLog(testRecorder(sink)),
		ErrorBoundary(testRecorder(&captureSink{}), zerolog.Nop(), true),
		Recovery(zerolog.Nop(), true),
	)
	engine.GET("/products", okHandler)
	engine.GET("/boom", func(c *gin.Context) {
		panic("handler exploded")
	})
	engine.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("no such page"))
	})
	return engine
}

func TestRequestLog_TwoEntriesPerRequest(t *testing.T) {
	sink := &captureSink{}
	engine := logEngine(sink)

	rec := perform(engine, http.MethodGet, "/products?page=2")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, sink.entries, 2)

	pre := sink.entries[0]
	assert.Equal(t, "GET /products?page=2", pre.Message)
	assert.Equal(t, "get", pre.Action)
	require.NotNil(t, pre.UserID)
	assert.Equal(t, "u1", *pre.UserID)
	assert.Equal(t, "/products?page=2", pre.Metadata["url"])
	assert.Equal(t, "GET", pre.Metadata["method"])
	assert.Contains(t, pre.Metadata, "query")

	post := sink.entries[1]
	assert.Equal(t, "response", post.Action)
	assert.Regexp(t, `^Response: 200 in \d+ms$`, post.Message)
	assert.Equal(t, 200, post.Metadata["statusCode"])
}

func TestRequestLog_PanicStillProducesTwoEntries(t *testing.T) {
	sink := &captureSink{}
	engine := logEngine(sink)

	rec := perform(engine, http.MethodGet, "/boom")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	require.Len(t, sink.entries, 2)
	assert.Regexp(t, `^Response: 500 in \d+ms$`, sink.entries[1].Message)
	assert.Equal(t, 500, sink.entries[1].Metadata["statusCode"])
}

func TestRequestLog_HandlerErrorStillProducesTwoEntries(t *testing.T) {
	sink := &captureSink{}
	engine := logEngine(sink)

	rec := perform(engine, http.MethodGet, "/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)

	require.Len(t, sink.entries, 2)
	assert.Regexp(t, `^Response: 404 in \d+ms$`, sink.entries[1].Message)
}
