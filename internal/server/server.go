package server

import (
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/analytics"
	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/handlers"
	"github.com/Himselfzw/ingrid/internal/middleware"
	"github.com/Himselfzw/ingrid/internal/session"
)

type HTTPServer struct {
	engine *gin.Engine
	server *http.Server
	log    zerolog.Logger
	cfg    *config.AppConfig
}

func NewHTTPServer(
	cfg *config.AppConfig,
	log zerolog.Logger,
	sessions session.Store,
	recorder *audit.Recorder,
	tracker *analytics.Tracker,
	handlerSet handlers.HandlerSet,
) *HTTPServer {
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.RedirectTrailingSlash = true
	engine.SetHTMLTemplate(template.Must(template.New("admin-login").Parse(loginTemplate)))

	// The boundary and recovery run inside the logging and tracking
	// middleware so completion entries observe the status those two
	// actually wrote, including on handler errors and panics.
	engine.Use(
		middleware.RequestID(),
		middleware.SecurityHeaders(),
		middleware.SessionLoader(sessions, cfg.Session, cfg.Production(), log),
		middleware.RequestLog(recorder),
		middleware.PageTracker(tracker),
		middleware.ErrorBoundary(recorder, log, cfg.Production()),
		middleware.CSRF(log),
		middleware.Recovery(log, cfg.Production()),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   gin.H{"message": "Not Found - " + c.Request.URL.Path},
		})
	})

	handlerSet.Register(engine)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &HTTPServer{
		engine: engine,
		server: srv,
		log:    log,
		cfg:    cfg,
	}
}

func (s *HTTPServer) Start() error {
	s.log.Info().
		Str("addr", s.server.Addr).
		Msg("http server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen and serve: %w", err)
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("http server shutting down")
	return s.server.Shutdown(ctx)
}

const loginTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Admin Login</title>
</head>
<body>
  <h1>Admin Login</h1>
  {{if .error}}<p class="error">{{.error}}</p>{{end}}
  <form method="POST" action="/admin/login">
    <input type="hidden" name="_csrf" value="{{.csrfToken}}">
    <label>Username <input type="text" name="username" required></label>
    <label>Password <input type="password" name="password" required></label>
    <button type="submit">Login</button>
  </form>
</body>
</html>
`
