package handler

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/interview-realtime/internal/infrastructure/http/middleware"
)

// Router holds all handlers
type Router struct {
	verifier        middleware.TokenVerifier
	realtimeHandler *Realtime
	adminHandler    *Admin
	archiveHandler  *Archive
	webhookHandler  *WebhookHandler
}

// NewRouter creates a new router with all handlers
func NewRouter(verifier middleware.TokenVerifier, realtimeHandler *Realtime, adminHandler *Admin, archiveHandler *Archive, webhookHandler *WebhookHandler) *Router {
	return &Router{
		verifier:        verifier,
		realtimeHandler: realtimeHandler,
		adminHandler:    adminHandler,
		archiveHandler:  archiveHandler,
		webhookHandler:  webhookHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.adminHandler.Health)

	// Swagger UI
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupRealtimeRoutes(v1)
	rt.setupAdminRoutes(v1)
	rt.setupWebhookRoutes(v1)
}

// setupRealtimeRoutes configures the WebSocket endpoint
func (rt *Router) setupRealtimeRoutes(g *echo.Group) {
	g.GET("/ws", rt.realtimeHandler.Serve, middleware.EchoAuth(rt.verifier))
}

// setupAdminRoutes configures operator routes
func (rt *Router) setupAdminRoutes(g *echo.Group) {
	adminGroup := g.Group("/admin", middleware.EchoAuth(rt.verifier), middleware.RequireAdmin())

	adminGroup.GET("/rooms", rt.adminHandler.ListRooms)
	adminGroup.GET("/rooms/:id", rt.adminHandler.GetRoom)
	adminGroup.POST("/rooms/:id/broadcast", rt.adminHandler.BroadcastToRoom)
	adminGroup.GET("/participants/count", rt.adminHandler.ParticipantCount)
	adminGroup.POST("/users/:id/events", rt.adminHandler.SendToUser)
	if rt.adminHandler.memberships != nil {
		adminGroup.DELETE("/interviews/:id/members/:user_id/cache", rt.adminHandler.InvalidateMembership)
	}

	// Stored session data
	if rt.archiveHandler != nil {
		adminGroup.GET("/rooms/:id/messages", rt.archiveHandler.ChatHistory)
		adminGroup.GET("/interviews/:id/files", rt.archiveHandler.InterviewFiles)
		adminGroup.GET("/recordings/:id", rt.archiveHandler.GetRecording)
		adminGroup.GET("/metrics", rt.archiveHandler.Metrics)
	}
}

// setupWebhookRoutes configures LiveKit callbacks; requests are verified by signature
func (rt *Router) setupWebhookRoutes(g *echo.Group) {
	if rt.webhookHandler == nil {
		return
	}
	g.POST("/webhooks/livekit", rt.webhookHandler.HandleLiveKitWebhook)
}
