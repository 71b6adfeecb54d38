package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/consulting-backend/internal/config"
	"github.com/ignatzorin/consulting-backend/internal/http/handlers"
	"github.com/ignatzorin/consulting-backend/internal/http/middleware"
	"github.com/ignatzorin/consulting-backend/internal/service"
)

// SetupRouter собирает gin.Engine со всеми маршрутами приложения.
func SetupRouter(
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	projectHandler *handlers.ProjectHandler,
	proposalHandler *handlers.ProposalHandler,
	disputeHandler *handlers.DisputeHandler,
	notificationHandler *handlers.NotificationHandler,
	wsHandler *handlers.WSHandler,
	healthHandler *handlers.HealthHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	authGroup.Use(authRateLimit)
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.AuthMiddleware(tokenManager))
	{
		protectedAuth.POST("/logout", authHandler.Logout)
		protectedAuth.GET("/me", authHandler.Me)
	}

	// WebSocket авторизуется токеном из query-параметра.
	api.GET("/ws", wsHandler.Handle)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		// Проекты
		protected.GET("/projects", projectHandler.List)
		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects/my", projectHandler.ListMine)
		protected.GET("/projects/:id", projectHandler.Get)
		protected.PUT("/projects/:id", projectHandler.Update)
		protected.DELETE("/projects/:id", projectHandler.Delete)
		protected.POST("/projects/:id/publish", projectHandler.Publish)
		protected.POST("/projects/:id/cancel", projectHandler.Cancel)
		protected.POST("/projects/:id/complete", projectHandler.Complete)

		// Предложения
		protected.POST("/projects/:id/proposals", proposalHandler.Submit)
		protected.GET("/projects/:id/proposals", proposalHandler.ListByProject)
		protected.POST("/projects/:id/proposals/:proposalId/accept", proposalHandler.Accept)
		protected.GET("/proposals/my", proposalHandler.ListMine)
		protected.GET("/proposals/:id", proposalHandler.Get)
		protected.POST("/proposals/:id/withdraw", proposalHandler.Withdraw)
		protected.POST("/proposals/:id/reject", proposalHandler.Reject)
		protected.POST("/proposals/:id/review", proposalHandler.MarkUnderReview)

		// Споры (участники)
		protected.POST("/projects/:id/disputes", disputeHandler.Open)
		protected.GET("/disputes/my", disputeHandler.ListMine)
		protected.GET("/disputes/:id", disputeHandler.Get)
		protected.POST("/disputes/:id/messages", disputeHandler.AddMessage)
		protected.POST("/disputes/:id/evidence", disputeHandler.AttachEvidence)
		protected.POST("/disputes/:id/response", disputeHandler.SubmitResponse)

		// Уведомления
		protected.GET("/notifications", notificationHandler.List)
		protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
		protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	}

	// Административное ведение споров
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.RequireRole("admin"))
	{
		admin.GET("/disputes/unassigned", disputeHandler.ListUnassigned)
		admin.POST("/disputes/:id/assign", disputeHandler.Assign)
		admin.POST("/disputes/:id/request-response", disputeHandler.RequestResponse)
		admin.POST("/disputes/:id/acknowledge", disputeHandler.Acknowledge)
		admin.POST("/disputes/:id/resolve", disputeHandler.Resolve)
		admin.POST("/disputes/:id/escalate", disputeHandler.Escalate)
		admin.POST("/disputes/:id/close", disputeHandler.Close)
	}

	return r
}
