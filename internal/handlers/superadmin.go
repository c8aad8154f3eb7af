package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/middleware"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/report"
	"github.com/Himselfzw/ingrid/internal/service"
)

const (
	analyticsWindow = 30 * 24 * time.Hour
	userPathWindow  = 7 * 24 * time.Hour
)

func (h HandlerSet) SuperDashboard(c *gin.Context) {
	ctx := c.Request.Context()

	signups, err := h.users.SignupsByMonth(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}
	files, err := h.store.ListFiles(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("listing stored files failed")
		files = nil
	}

	var errFlash, successFlash string
	if data := middleware.Session(c); data != nil {
		errFlash, successFlash = data.PopFlash()
	}

	c.JSON(http.StatusOK, gin.H{
		"signupsByMonth": signups,
		"files":          files,
		"error":          errFlash,
		"success":        successFlash,
		"csrfToken":      middleware.CSRFToken(c),
	})
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	page := parsePage(c.Query("page"))
	limit := parseLimit(c.Query("limit"), 10, 100)

	users, total, err := h.users.List(c.Request.Context(), c.Query("search"), limit, (page-1)*limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"total":      total,
		"page":       page,
		"totalPages": totalPages(total, limit),
	})
}

func (h HandlerSet) CreateUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	_, err := h.userService.CreateUser(c.Request.Context(), actor, service.CreateUserInput{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Role:      c.PostForm("role"),
	})
	if err != nil {
		h.failBack(c, "/admin/super", err)
		return
	}
	h.succeed(c, "/admin/super", "User created successfully")
}

func (h HandlerSet) EditUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	err := h.userService.UpdateUser(c.Request.Context(), actor, c.Param("id"), service.UpdateUserInput{
		FirstName: c.PostForm("firstName"),
		LastName:  c.PostForm("lastName"),
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Role:      c.PostForm("role"),
		Password:  c.PostForm("password"),
	})
	if err != nil {
		h.failBack(c, "/admin/super", err)
		return
	}
	h.succeed(c, "/admin/super", "User updated successfully")
}

func (h HandlerSet) ToggleUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	active, err := h.userService.ToggleActive(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.failBack(c, "/admin/super", err)
		return
	}
	if active {
		h.succeed(c, "/admin/super", "User activated successfully")
		return
	}
	h.succeed(c, "/admin/super", "User deactivated successfully")
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	if err := h.userService.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		h.failBack(c, "/admin/super", err)
		return
	}
	h.succeed(c, "/admin/super", "User deleted successfully")
}

func (h HandlerSet) ListLogs(c *gin.Context) {
	page := parsePage(c.Query("page"))
	limit := parseLimit(c.Query("limit"), 50, 200)
	level := models.LogLevel(c.Query("level"))

	entries, total, err := h.logs.List(c.Request.Context(), level, c.Query("search"), limit, (page-1)*limit)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       entries,
		"total":      total,
		"page":       page,
		"totalPages": totalPages(total, limit),
	})
}

func (h HandlerSet) DeleteFile(c *gin.Context) {
	filename := c.Param("filename")
	if err := h.store.Remove(c.Request.Context(), filename); err != nil {
		_ = c.Error(err)
		return
	}
	h.audit(c, models.LogLevelWarn, "File deleted: "+filename, "file_deleted", map[string]any{"filename": filename})
	h.succeed(c, "/admin/super", "File deleted successfully")
}

func (h HandlerSet) AnalyticsSummary(c *gin.Context) {
	ctx := c.Request.Context()
	since := time.Now().Add(-analyticsWindow)

	contactSubmissions, err := h.events.CountEvent(ctx, "contact_form_submit", since)
	if err != nil {
		_ = c.Error(err)
		return
	}
	productViews, err := h.events.CountEvent(ctx, "view_product", since)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pageViews, err := h.events.CountEvent(ctx, "page_view", since)
	if err != nil {
		_ = c.Error(err)
		return
	}
	avgSession, err := h.events.AvgSessionDuration(ctx, since)
	if err != nil {
		_ = c.Error(err)
		return
	}
	topPages, err := h.events.TopPages(ctx, since, 10)
	if err != nil {
		_ = c.Error(err)
		return
	}
	userPaths, err := h.events.UserPaths(ctx, time.Now().Add(-userPathWindow), 20)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contactSubmissions": contactSubmissions,
		"productViews":       productViews,
		"pageViews":          pageViews,
		"avgSession":         avgSession,
		"topPages":           topPages,
		"userPaths":          userPaths,
	})
}

// Report streams a PDF export. Only super admins reach this handler.
func (h HandlerSet) Report(c *gin.Context) {
	ctx := c.Request.Context()
	reportType := c.Param("type")

	var (
		pdf []byte
		err error
	)
	switch reportType {
	case "users":
		users, _, listErr := h.users.List(ctx, "", 0, 0)
		if listErr != nil {
			_ = c.Error(listErr)
			return
		}
		pdf, err = report.Users(users)
	case "logs":
		entries, _, listErr := h.logs.List(ctx, "", "", 500, 0)
		if listErr != nil {
			_ = c.Error(listErr)
			return
		}
		pdf, err = report.Logs(entries)
	case "products":
		products, listErr := h.products.List(ctx, 0)
		if listErr != nil {
			_ = c.Error(listErr)
			return
		}
		pdf, err = report.Products(products)
	default:
		_ = c.Error(apperr.Validation("Unknown report type: " + reportType))
		return
	}
	if err != nil {
		_ = c.Error(err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Report generated: "+reportType, "report_generated", map[string]any{"type": reportType})

	filename := fmt.Sprintf("%s-report-%s.pdf", reportType, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func parsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseLimit(raw string, fallback, max int) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	if limit > max {
		return max
	}
	return limit
}

func totalPages(total, limit int) int {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	if pages == 0 {
		pages = 1
	}
	return pages
}
