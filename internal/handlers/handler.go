package handlers

import (
	"net/http"

	"yesfundme/internal/feed"
	"yesfundme/internal/logger"
	"yesfundme/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	hub      *feed.Hub
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, hub *feed.Hub) *Handler {
	return &Handler{services: services, log: log, hub: hub}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestIDMiddleware)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// API endpoints
	h.registerAPIRoutes(router)

	// Live funding feed (HTTP upgrade) — same port
	router.GET("/ws", h.wsFeed)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		limited := auth.Group("", newRateLimitMiddleware(authRateLimit))
		{
			limited.POST("/register", h.register)
			limited.POST("/login", h.login)
		}
		me := auth.Group("/me", h.userIdMiddleware)
		{
			me.GET("", h.currentUser)
			me.PUT("", h.updateProfile)
		}
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		h.registerCampaignRoutes(api)
		h.registerDonationRoutes(api)

		api.GET("/dashboard", h.userIdMiddleware, h.dashboard)
	}
}

func (h *Handler) registerCampaignRoutes(api *gin.RouterGroup) {
	campaigns := api.Group("/campaigns")
	{
		campaigns.GET("", h.listCampaigns)
		campaigns.GET("/:id", h.optionalAuthMiddleware, h.getCampaign)
		campaigns.POST("", h.userIdMiddleware, h.createCampaign)
		campaigns.PUT("/:id", h.userIdMiddleware, h.updateCampaign)
		campaigns.DELETE("/:id", h.userIdMiddleware, h.cancelCampaign)
	}
}

func (h *Handler) registerDonationRoutes(api *gin.RouterGroup) {
	api.POST("/campaigns/:id/donations", h.optionalAuthMiddleware, h.donate)
	api.GET("/campaigns/:id/donations", h.listCampaignDonations)
	api.GET("/donations/mine", h.userIdMiddleware, h.myDonations)
}

// health reports process liveness.
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// logAndJSONError logs the underlying error with context and replies with a
// client-safe message.
func (h *Handler) logAndJSONError(c *gin.Context, status int, clientMsg, logMsg string, err error, kv ...any) {
	if h.log != nil {
		h.log.Errorw(logMsg, append(kv, "err", err)...)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": clientMsg})
}
