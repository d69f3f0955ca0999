package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sehatsaathi/voicecare/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg          *config.Config
	voiceHandler *Voice
	riskHandler  *Risk
	alertHandler *Alert
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, voiceHandler *Voice, riskHandler *Risk, alertHandler *Alert) *Router {
	return &Router{
		cfg:          cfg,
		voiceHandler: voiceHandler,
		riskHandler:  riskHandler,
		alertHandler: alertHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupVoiceRoutes(v1)
	rt.setupRiskRoutes(v1)
	rt.setupAlertRoutes(v1)
}

func (rt *Router) setupVoiceRoutes(g *echo.Group) {
	voiceGroup := g.Group("/voice")
	voiceGroup.POST("/transcribe", rt.voiceHandler.Transcribe)
	voiceGroup.POST("/process", rt.voiceHandler.Process)
}

func (rt *Router) setupRiskRoutes(g *echo.Group) {
	riskGroup := g.Group("/risk")
	riskGroup.POST("/red-flags", rt.riskHandler.DetectRedFlags)
}

func (rt *Router) setupAlertRoutes(g *echo.Group) {
	alertGroup := g.Group("/alerts")
	alertGroup.POST("", rt.alertHandler.Create)
	alertGroup.GET("/open", rt.alertHandler.ListOpen)
	alertGroup.POST("/:id/acknowledge", rt.alertHandler.Acknowledge)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
