package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/ids"
	"github.com/Himselfzw/ingrid/internal/middleware"
	"github.com/Himselfzw/ingrid/internal/models"
	"github.com/Himselfzw/ingrid/internal/service"
	"github.com/Himselfzw/ingrid/internal/storage"
)

func (h HandlerSet) LoginForm(c *gin.Context) {
	var flash string
	if data := middleware.Session(c); data != nil {
		if data.UserID != "" {
			if user, err := h.users.GetByID(c.Request.Context(), data.UserID); err == nil && user.IsActive {
				c.Redirect(http.StatusFound, "/admin")
				return
			}
			data.UserID = ""
		}
		flash, _ = data.PopFlash()
	}
	c.HTML(http.StatusOK, "admin-login", gin.H{
		"error":     flash,
		"csrfToken": middleware.CSRFToken(c),
	})
}

func (h HandlerSet) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	result, err := h.authService.Login(c.Request.Context(), service.LoginInput{
		Username:  username,
		Password:  password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "admin-login", gin.H{
				"error":     "Invalid credentials",
				"csrfToken": middleware.CSRFToken(c),
			})
			return
		}
		_ = c.Error(err)
		return
	}

	if data := middleware.Session(c); data != nil {
		data.UserID = result.User.ID
	}
	c.Redirect(http.StatusFound, result.RedirectTo)
}

func (h HandlerSet) Logout(c *gin.Context) {
	if user, ok := middleware.CurrentUser(c); ok {
		h.authService.Logout(c.Request.Context(), user.ID, c.ClientIP(), c.Request.UserAgent())
	}
	middleware.DestroySession(c)
	c.Redirect(http.StatusFound, "/")
}

func (h HandlerSet) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	user, _ := middleware.CurrentUser(c)

	products, err := h.products.List(ctx, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	posts, err := h.posts.List(ctx, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	categories, err := h.categories.List(ctx, "")
	if err != nil {
		_ = c.Error(err)
		return
	}

	var errFlash, successFlash string
	if data := middleware.Session(c); data != nil {
		errFlash, successFlash = data.PopFlash()
	}

	c.JSON(http.StatusOK, gin.H{
		"user":       adminView(user),
		"products":   products,
		"posts":      posts,
		"categories": categories,
		"error":      errFlash,
		"success":    successFlash,
		"csrfToken":  middleware.CSRFToken(c),
	})
}

func (h HandlerSet) CreateProduct(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	if name == "" {
		h.failBack(c, "/admin", apperr.Validation("Product name is required"))
		return
	}

	image, err := h.uploadImage(c)
	if err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	product := models.Product{
		ID:          ids.New(),
		Name:        name,
		Description: c.PostForm("description"),
		Price:       parseOptionalFloat(c.PostForm("price")),
		CategoryID:  optionalString(c.PostForm("category")),
		Image:       image,
	}
	if err := h.products.Create(c.Request.Context(), product); err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Product created: "+product.Name, "product_created", map[string]any{"productId": product.ID})
	h.succeed(c, "/admin", "Product created successfully")
}

func (h HandlerSet) EditProduct(c *gin.Context) {
	ctx := c.Request.Context()
	product, err := h.products.GetByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	image, err := h.uploadImage(c)
	if err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	product.Name = strings.TrimSpace(c.PostForm("name"))
	product.Description = c.PostForm("description")
	product.Price = parseOptionalFloat(c.PostForm("price"))
	product.CategoryID = optionalString(c.PostForm("category"))
	product.Image = image
	if product.Name == "" {
		h.failBack(c, "/admin", apperr.Validation("Product name is required"))
		return
	}

	if err := h.products.Update(ctx, product); err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Product updated: "+product.Name, "product_updated", map[string]any{"productId": product.ID})
	h.succeed(c, "/admin", "Product updated successfully")
}

func (h HandlerSet) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	h.audit(c, models.LogLevelWarn, "Product deleted", "product_deleted", map[string]any{"productId": id})
	h.succeed(c, "/admin", "Product deleted successfully")
}

func (h HandlerSet) CreatePost(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		h.failBack(c, "/admin", apperr.Validation("Post title is required"))
		return
	}

	image, err := h.uploadImage(c)
	if err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	user, _ := middleware.CurrentUser(c)
	post := models.Post{
		ID:         ids.New(),
		Title:      title,
		Content:    c.PostForm("content"),
		CategoryID: optionalString(c.PostForm("category")),
		Author:     user.Username,
		Image:      image,
	}
	if err := h.posts.Create(c.Request.Context(), post); err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Post created: "+post.Title, "post_created", map[string]any{"postId": post.ID})
	h.succeed(c, "/admin", "Post created successfully")
}

func (h HandlerSet) EditPost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.posts.GetByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	image, err := h.uploadImage(c)
	if err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	post.Title = strings.TrimSpace(c.PostForm("title"))
	post.Content = c.PostForm("content")
	post.CategoryID = optionalString(c.PostForm("category"))
	post.Image = image
	if post.Title == "" {
		h.failBack(c, "/admin", apperr.Validation("Post title is required"))
		return
	}

	if err := h.posts.Update(ctx, post); err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Post updated: "+post.Title, "post_updated", map[string]any{"postId": post.ID})
	h.succeed(c, "/admin", "Post updated successfully")
}

func (h HandlerSet) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if err := h.posts.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	h.audit(c, models.LogLevelWarn, "Post deleted", "post_deleted", map[string]any{"postId": id})
	h.succeed(c, "/admin", "Post deleted successfully")
}

func (h HandlerSet) CreateCategory(c *gin.Context) {
	name := strings.TrimSpace(c.PostForm("name"))
	categoryType := models.CategoryType(c.PostForm("type"))
	if name == "" {
		h.failBack(c, "/admin", apperr.Validation("Category name is required"))
		return
	}
	if categoryType != models.CategoryTypeProduct && categoryType != models.CategoryTypePost {
		h.failBack(c, "/admin", apperr.Validation("Category type must be product or post"))
		return
	}

	category := models.Category{
		ID:          ids.New(),
		Name:        name,
		Description: c.PostForm("description"),
		Type:        categoryType,
	}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Category created: "+category.Name, "category_created", map[string]any{"categoryId": category.ID})
	h.succeed(c, "/admin", "Category created successfully")
}

func (h HandlerSet) EditCategory(c *gin.Context) {
	ctx := c.Request.Context()
	category, err := h.categories.GetByID(ctx, c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	category.Name = strings.TrimSpace(c.PostForm("name"))
	category.Description = c.PostForm("description")
	if category.Name == "" {
		h.failBack(c, "/admin", apperr.Validation("Category name is required"))
		return
	}

	if err := h.categories.Update(ctx, category); err != nil {
		h.failBack(c, "/admin", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Category updated: "+category.Name, "category_updated", map[string]any{"categoryId": category.ID})
	h.succeed(c, "/admin", "Category updated successfully")
}

func (h HandlerSet) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}
	h.audit(c, models.LogLevelWarn, "Category deleted", "category_deleted", map[string]any{"categoryId": id})
	h.succeed(c, "/admin", "Category deleted successfully")
}

func (h HandlerSet) GetContent(c *gin.Context) {
	content, err := h.content.Get(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	var errFlash, successFlash string
	if data := middleware.Session(c); data != nil {
		errFlash, successFlash = data.PopFlash()
	}

	c.JSON(http.StatusOK, gin.H{
		"content":   content,
		"error":     errFlash,
		"success":   successFlash,
		"csrfToken": middleware.CSRFToken(c),
	})
}

func (h HandlerSet) UpdateContent(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	content := models.SiteContent{
		HeroTitle:      c.PostForm("heroTitle"),
		HeroSubtitle:   c.PostForm("heroSubtitle"),
		AboutTitle:     c.PostForm("aboutTitle"),
		AboutText1:     c.PostForm("aboutText1"),
		AboutText2:     c.PostForm("aboutText2"),
		ContactAddress: c.PostForm("contactAddress"),
		ContactPhone:   c.PostForm("contactPhone"),
		ContactEmail:   c.PostForm("contactEmail"),
		ContactHours:   c.PostForm("contactHours"),
		UpdatedBy:      &user.ID,
	}
	if content.HeroTitle == "" {
		h.failBack(c, "/admin/content", apperr.Validation("Hero title is required"))
		return
	}

	if err := h.content.Save(c.Request.Context(), content); err != nil {
		h.failBack(c, "/admin/content", err)
		return
	}

	h.audit(c, models.LogLevelInfo, "Site content updated", "content_updated", nil)
	h.succeed(c, "/admin/content", "Content updated successfully")
}

func (h HandlerSet) UpdateProfile(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	err := h.userService.UpdateProfile(c.Request.Context(), user, service.ProfileInput{
		FirstName:       c.PostForm("firstName"),
		LastName:        c.PostForm("lastName"),
		Username:        strings.TrimSpace(c.PostForm("username")),
		Email:           strings.TrimSpace(c.PostForm("email")),
		CurrentPassword: c.PostForm("currentPassword"),
		NewPassword:     c.PostForm("newPassword"),
		ConfirmPassword: c.PostForm("confirmPassword"),
	})
	if err != nil {
		h.failBack(c, "/admin", err)
		return
	}
	h.succeed(c, "/admin", "Profile updated successfully")
}

// uploadImage reads the optional "image" part of a multipart form and stores
// it in the object store. A request without a file is not an error.
func (h HandlerSet) uploadImage(c *gin.Context) (*string, error) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, apperr.Validation("Invalid file upload")
	}
	defer file.Close()

	if header.Size > storage.MaxUploadSize {
		return nil, apperr.Validation("Image must be 5MB or smaller")
	}

	key := ids.New() + strings.ToLower(filepath.Ext(header.Filename))
	if err := h.store.PutImage(c.Request.Context(), key, file, header.Size); err != nil {
		if errors.Is(err, storage.ErrInvalidImage) {
			return nil, apperr.Validation(err.Error())
		}
		return nil, err
	}
	return &key, nil
}

// failBack flashes validation failures and sends the browser back; anything
// else goes through the error boundary.
func (h HandlerSet) failBack(c *gin.Context, target string, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind == apperr.KindValidation {
		h.flash(c, appErr.Message, "")
		c.Redirect(http.StatusFound, target)
		return
	}
	_ = c.Error(err)
}

func (h HandlerSet) succeed(c *gin.Context, target, message string) {
	h.flash(c, "", message)
	c.Redirect(http.StatusFound, target)
}

func (h HandlerSet) flash(c *gin.Context, errMsg, successMsg string) {
	if data := middleware.Session(c); data != nil {
		if errMsg != "" {
			data.Error = errMsg
		}
		if successMsg != "" {
			data.Success = successMsg
		}
	}
}

func (h HandlerSet) audit(c *gin.Context, level models.LogLevel, message, action string, metadata map[string]any) {
	entry := models.LogEntry{
		Level:     level,
		Message:   message,
		Action:    action,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Metadata:  metadata,
	}
	if user, ok := middleware.CurrentUser(c); ok {
		entry.UserID = &user.ID
	}
	h.recorder.Record(c.Request.Context(), entry)
}

func adminView(user models.User) gin.H {
	return gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"firstName": user.FirstName,
		"lastName":  user.LastName,
		"email":     user.Email,
		"role":      user.Role,
	}
}

func parseOptionalFloat(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &value
}

func optionalString(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}
