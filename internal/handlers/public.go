package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Himselfzw/ingrid/internal/apperr"
	"github.com/Himselfzw/ingrid/internal/mail"
	"github.com/Himselfzw/ingrid/internal/middleware"
	"github.com/Himselfzw/ingrid/internal/models"
)

func (h HandlerSet) Home(c *gin.Context) {
	ctx := c.Request.Context()

	posts, err := h.posts.List(ctx, 5)
	if err != nil {
		_ = c.Error(err)
		return
	}
	products, err := h.products.List(ctx, 5)
	if err != nil {
		_ = c.Error(err)
		return
	}
	content, err := h.content.Get(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"products": products,
		"content":  content,
	})
}

func (h HandlerSet) ContactPage(c *gin.Context) {
	content, err := h.content.Get(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"content":   content,
		"csrfToken": middleware.CSRFToken(c),
	})
}

type contactForm struct {
	FirstName  string `form:"firstName" binding:"required"`
	LastName   string `form:"lastName" binding:"required"`
	Email      string `form:"email" binding:"required,email"`
	Company    string `form:"company"`
	Phone      string `form:"phone"`
	Subject    string `form:"subject" binding:"required"`
	Message    string `form:"message" binding:"required"`
	Newsletter string `form:"newsletter"`
}

// ContactSubmit accepts the public contact form. Mail delivery is an
// optional side effect: the submission succeeds even when SMTP fails.
func (h HandlerSet) ContactSubmit(c *gin.Context) {
	var form contactForm
	if err := c.ShouldBind(&form); err != nil {
		_ = c.Error(apperr.Validation("Please fill in all required fields"))
		return
	}

	newsletter := form.Newsletter != ""
	if err := h.mailer.SendContactNotification(mail.ContactMessage{
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Company:    form.Company,
		Phone:      form.Phone,
		Subject:    form.Subject,
		Message:    form.Message,
		Newsletter: newsletter,
	}); err != nil {
		h.log.Error().Err(err).Msg("contact mail delivery failed")
	}

	one := 1.0
	h.tracker.Track(c.Request.Context(), "contact_form_submit", "engagement", "contact_form", &one, sessionUser(c), map[string]any{
		"email":      form.Email,
		"subject":    form.Subject,
		"newsletter": newsletter,
	})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully!"})
}

func (h HandlerSet) ListProducts(c *gin.Context) {
	ctx := c.Request.Context()

	products, err := h.products.List(ctx, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	categories, err := h.categories.List(ctx, models.CategoryTypeProduct)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products, "categories": categories})
}

func (h HandlerSet) ProductDetail(c *gin.Context) {
	product, err := h.products.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	one := 1.0
	meta := map[string]any{"productId": product.ID}
	if product.CategoryName != nil {
		meta["category"] = *product.CategoryName
	}
	h.tracker.Track(c.Request.Context(), "view_product", "engagement", product.Name, &one, sessionUser(c), meta)

	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (h HandlerSet) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()

	posts, err := h.posts.List(ctx, 0)
	if err != nil {
		_ = c.Error(err)
		return
	}
	categories, err := h.categories.List(ctx, models.CategoryTypePost)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "categories": categories})
}

func (h HandlerSet) PostDetail(c *gin.Context) {
	post, err := h.posts.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h HandlerSet) Welcome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Ingrid Chemicals API Service!"})
}

func sessionUser(c *gin.Context) *string {
	if data := middleware.Session(c); data != nil && data.UserID != "" {
		id := data.UserID
		return &id
	}
	return nil
}
