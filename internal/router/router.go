package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lequiz/lequiz-backend/internal/config"
	"github.com/lequiz/lequiz-backend/internal/handler"
	"github.com/lequiz/lequiz-backend/internal/middleware"
	"github.com/lequiz/lequiz-backend/internal/response"
	"github.com/lequiz/lequiz-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	QuizAdmin  *handler.QuizAdminHandler
	QuizPublic *handler.QuizPublicHandler
	Attempt    *handler.AttemptHandler
	Draft      *handler.DraftHandler
	Result     *handler.ResultHandler
	Monitor    *handler.MonitorHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login attempts (10 per minute per IP).
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// ─── 1. Auth Group ─────────────────────────────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/admin/login", authLimiter.Middleware(), handlers.Auth.Login)
		auth.POST("/admin/logout", middleware.RequireAdminJWT(authService), handlers.Auth.Logout)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.Me)
	}

	// ─── 2. Public Group (participants, no auth) ───────────────────────
	publicAPI := router.Group("/api/v1")
	{
		// The catalog changes rarely; let clients cache it briefly.
		publicAPI.GET("/quizzes", middleware.CacheControl(30), handlers.QuizPublic.List)
		publicAPI.GET("/quizzes/:id", handlers.QuizPublic.Get)

		publicAPI.POST("/quizzes/:id/attempts", handlers.Attempt.Start)
		publicAPI.GET("/attempts/:attempt_id", handlers.Attempt.Get)
		publicAPI.POST("/attempts/:attempt_id/next", handlers.Attempt.Next)
		publicAPI.POST("/attempts/:attempt_id/prev", handlers.Attempt.Prev)
		publicAPI.POST("/attempts/:attempt_id/finish", handlers.Attempt.Finish)

		publicAPI.POST("/results", handlers.Result.Submit)
	}

	// ─── 3. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		// Quiz management
		adminAPI.GET("/quizzes", handlers.QuizAdmin.List)
		adminAPI.POST("/quizzes", handlers.QuizAdmin.Create)
		adminAPI.GET("/quizzes/:id", handlers.QuizAdmin.Get)
		adminAPI.PUT("/quizzes/:id", handlers.QuizAdmin.Replace)
		adminAPI.DELETE("/quizzes/:id", handlers.QuizAdmin.Delete)

		// Authoring draft
		draftGroup := adminAPI.Group("/draft")
		{
			draftGroup.GET("", handlers.Draft.Get)
			draftGroup.PUT("", handlers.Draft.SetMeta)
			draftGroup.DELETE("", handlers.Draft.Discard)
			draftGroup.POST("/questions", handlers.Draft.AddQuestion)
			draftGroup.PUT("/questions/:index", handlers.Draft.UpdateQuestion)
			draftGroup.DELETE("/questions/:index", handlers.Draft.RemoveQuestion)
			draftGroup.POST("/load/:quiz_id", handlers.Draft.LoadQuiz)
			draftGroup.POST("/publish", handlers.Draft.Publish)
		}

		// Result review
		adminAPI.GET("/results", handlers.Result.List)
	}

	// ─── 4. WebSocket Group (Admin WS Auth) ────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireAdminWSAuth(authService))
	{
		ws.GET("/admin/results/stream", handlers.Monitor.ResultStream)
	}

	return router
}
