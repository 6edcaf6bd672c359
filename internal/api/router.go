package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/devconnect/devconnect-api/docs"
	"github.com/devconnect/devconnect-api/internal/api/handler"
	"github.com/devconnect/devconnect-api/internal/api/middleware"
	"github.com/devconnect/devconnect-api/internal/core/service"
	"github.com/devconnect/devconnect-api/internal/infrastructure/config"
	mongodb "github.com/devconnect/devconnect-api/internal/infrastructure/db/mongo"
	redisdb "github.com/devconnect/devconnect-api/internal/infrastructure/db/redis"
	"github.com/devconnect/devconnect-api/internal/infrastructure/github"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devconnect"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	profileRepo := mongodb.NewProfileRepository(db)
	postRepo := mongodb.NewPostRepository(db)

	githubClient := github.NewClient(cfg.Github.BaseURL, cfg.Github.Token)
	repoCache := redisdb.NewRepoCache(rdb, cfg.Github.CacheTTL)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	profileService := service.NewProfileService(profileRepo, userRepo, githubClient, repoCache, log)
	postService := service.NewPostService(postRepo, userRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(profileService)
	postHandler := handler.NewPostHandler(postService)
	auth := middleware.Auth(cfg.JWTSecret)

	// --- Auth / users ---
	e.POST("/api/users", authHandler.Register)
	e.POST("/api/auth", authHandler.Login)
	e.GET("/api/auth", authHandler.Me, auth)

	// --- Profiles ---
	e.GET("/api/profile/me", profileHandler.Me, auth)
	e.POST("/api/profile", profileHandler.Upsert, auth)
	e.GET("/api/profile", profileHandler.List)
	e.DELETE("/api/profile", profileHandler.DeleteAccount, auth)
	e.PUT("/api/profile/experience", profileHandler.AddExperience, auth)
	e.DELETE("/api/profile/experience/:exp_id", profileHandler.RemoveExperience, auth)
	e.PUT("/api/profile/education", profileHandler.AddEducation, auth)
	e.DELETE("/api/profile/education/:edu_id", profileHandler.RemoveEducation, auth)
	e.GET("/api/profile/github/:username", profileHandler.GithubRepos)
	e.GET("/api/profile/:user_id", profileHandler.GetByUserID)

	// --- Posts ---
	e.POST("/api/posts", postHandler.Create, auth)
	e.GET("/api/posts", postHandler.List, auth)
	e.GET("/api/posts/:id", postHandler.Get, auth)
	e.DELETE("/api/posts/:id", postHandler.Delete, auth)
	e.PUT("/api/posts/like/:id", postHandler.Like, auth)
	e.PUT("/api/posts/unlike/:id", postHandler.Unlike, auth)
	e.POST("/api/posts/comments/:id", postHandler.AddComment, auth)
	e.DELETE("/api/posts/comments/:post_id/:comment_id", postHandler.RemoveComment, auth)

	// --- Observability / docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	return e
}
