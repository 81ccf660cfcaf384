package server

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"miniblog/internal/config"
	"miniblog/internal/handler"
	"miniblog/internal/middleware"
	"miniblog/internal/policy"
	"miniblog/internal/repository"
	"miniblog/internal/service"
	"miniblog/internal/token"
	"miniblog/pkg/storage"
)

// Server owns the router and every constructed collaborator. Nothing in here
// is a package-level singleton; tests build their own Server with their own
// dependencies.
type Server struct {
	engine *gin.Engine
	cfg    *config.Config
}

// New wires repositories, services and handlers. redisClient, searchSvc and
// imageStorage may be nil, which disables rate limiting, search and avatar
// uploads respectively.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, searchSvc service.SearchService, imageStorage storage.ImageStorage) *Server {
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	authSvc := service.NewAuthService(userRepo, tokens, cfg.DefaultRole)
	authHandler := handler.NewAuthHandler(authSvc)

	adminSvc := service.NewAdminService(userRepo, cfg.UserDeleteCascade)
	adminHandler := handler.NewAdminHandler(adminSvc)

	profileSvc := service.NewProfileService(userRepo, imageStorage)
	profileHandler := handler.NewProfileHandler(profileSvc)

	categorySvc := service.NewCategoryService(categoryRepo, postRepo)
	categoryHandler := handler.NewCategoryHandler(categorySvc)

	postSvc := service.NewPostService(postRepo, categoryRepo, searchSvc, redisClient, cfg.RateLimitPost)
	postHandler := handler.NewPostHandler(postSvc)

	commentSvc := service.NewCommentService(commentRepo, postRepo, redisClient, cfg.CommentHardDelete, cfg.RateLimitComment)
	commentHandler := handler.NewCommentHandler(commentSvc)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	setupCORS(router, cfg.AllowedOrigins)

	authMiddleware := middleware.NewAuthMiddleware(userRepo, tokens)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Read routes resolve the caller when a token is present so elevated
	// roles and authors see unpublished content.
	public := api.Group("")
	public.Use(authMiddleware.OptionalAuth())
	{
		public.GET("/posts", postHandler.GetAllPosts)
		public.GET("/posts/search", postHandler.SearchPosts)
		public.GET("/posts/:id", postHandler.GetPostByID)
		public.GET("/posts/:id/comments", commentHandler.GetCommentsByPostID)
		public.GET("/categories", categoryHandler.GetAllCategories)
		public.GET("/categories/:id", categoryHandler.GetCategoryByID)
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/me", profileHandler.GetCurrentUser)
		protected.PUT("/me/avatar", profileHandler.UpdateAvatar)

		// Post creation has an editor floor; mutation additionally checks
		// ownership in the service.
		editor := protected.Group("")
		editor.Use(authMiddleware.RequireRole(policy.RoleEditor))
		{
			editor.POST("/posts", postHandler.CreatePost)
			editor.PUT("/posts/:id", postHandler.UpdatePost)
			editor.DELETE("/posts/:id", postHandler.DeletePost)
		}

		protected.POST("/posts/:id/comments", commentHandler.CreateComment)
		protected.PUT("/comments/:id", commentHandler.UpdateComment)
		protected.DELETE("/comments/:id", commentHandler.DeleteComment)

		admin := protected.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/users", adminHandler.GetAllUsers)
			admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
			admin.PUT("/users/:id/active", adminHandler.SetUserActive)
			admin.DELETE("/users/:id", adminHandler.DeleteUser)
		}

		adminCategories := protected.Group("")
		adminCategories.Use(authMiddleware.RequireAdmin())
		{
			adminCategories.POST("/categories", categoryHandler.CreateCategory)
			adminCategories.PUT("/categories/:id", categoryHandler.UpdateCategory)
			adminCategories.DELETE("/categories/:id", categoryHandler.DeleteCategory)
		}
	}

	return &Server{engine: router, cfg: cfg}
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Run() error {
	return s.engine.Run(":" + s.cfg.Port)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	}

	router.Use(cors.New(corsConfig))
}
