package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/Himselfzw/ingrid/internal/analytics"
	"github.com/Himselfzw/ingrid/internal/audit"
	"github.com/Himselfzw/ingrid/internal/config"
	"github.com/Himselfzw/ingrid/internal/mail"
	"github.com/Himselfzw/ingrid/internal/middleware"
	"github.com/Himselfzw/ingrid/internal/repository"
	"github.com/Himselfzw/ingrid/internal/service"
	"github.com/Himselfzw/ingrid/internal/session"
	"github.com/Himselfzw/ingrid/internal/storage"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	sessions session.Store
	store    *storage.ObjectStore
	mailer   *mail.Mailer
	tracker  *analytics.Tracker
	recorder *audit.Recorder

	authService *service.AuthService
	userService *service.UserService

	users      *repository.UserRepository
	products   *repository.ProductRepository
	posts      *repository.PostRepository
	categories *repository.CategoryRepository
	content    *repository.ContentRepository
	logs       *repository.LogRepository
	events     *repository.AnalyticsRepository
}

func NewHandlerSet(
	log zerolog.Logger,
	db *pgxpool.Pool,
	sessions session.Store,
	store *storage.ObjectStore,
	mailer *mail.Mailer,
	tracker *analytics.Tracker,
	recorder *audit.Recorder,
	cfg *config.AppConfig,
) HandlerSet {
	userRepo := repository.NewUserRepository(db)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		sessions: sessions,
		store:    store,
		mailer:   mailer,
		tracker:  tracker,
		recorder: recorder,

		authService: service.NewAuthService(userRepo, recorder, log),
		userService: service.NewUserService(userRepo, recorder),

		users:      userRepo,
		products:   repository.NewProductRepository(db),
		posts:      repository.NewPostRepository(db),
		categories: repository.NewCategoryRepository(db),
		content:    repository.NewContentRepository(db),
		logs:       repository.NewLogRepository(db),
		events:     repository.NewAnalyticsRepository(db),
	}
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.GET("/", h.Home)
	engine.GET("/contact", h.ContactPage)
	engine.POST("/contact", h.ContactSubmit)
	engine.GET("/welcome", h.Welcome)

	products := engine.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.ProductDetail)

	news := engine.Group("/news")
	news.GET("", h.ListPosts)
	news.GET("/:id", h.PostDetail)

	admin := engine.Group("/admin")
	admin.GET("/login", h.LoginForm)
	admin.POST("/login", h.Login)
	admin.POST("/logout", middleware.RequireAuth(h.users), h.Logout)

	authed := admin.Group("")
	authed.Use(middleware.RequireAuth(h.users))
	authed.GET("", h.Dashboard)
	authed.POST("/products", h.CreateProduct)
	authed.POST("/products/:id/edit", h.EditProduct)
	authed.POST("/products/:id/delete", h.DeleteProduct)
	authed.POST("/posts", h.CreatePost)
	authed.POST("/posts/:id/edit", h.EditPost)
	authed.POST("/posts/:id/delete", h.DeletePost)
	authed.POST("/categories", h.CreateCategory)
	authed.POST("/categories/:id/edit", h.EditCategory)
	authed.POST("/categories/:id/delete", h.DeleteCategory)
	authed.GET("/content", h.GetContent)
	authed.POST("/content", h.UpdateContent)
	authed.POST("/profile/update", h.UpdateProfile)

	super := admin.Group("/super")
	super.Use(middleware.RequireAdmin(h.users))
	super.GET("", h.SuperDashboard)
	super.GET("/users", h.ListUsers)
	super.POST("/users", h.CreateUser)
	super.POST("/users/:id/edit", h.EditUser)
	super.POST("/users/:id/toggle", h.ToggleUser)
	super.POST("/users/:id/delete", h.DeleteUser)
	super.GET("/logs", h.ListLogs)
	super.POST("/storage/:filename/delete", h.DeleteFile)
	super.GET("/analytics", h.AnalyticsSummary)
	super.GET("/reports/:type", middleware.RequireSuperAdmin(h.users), h.Report)
}
