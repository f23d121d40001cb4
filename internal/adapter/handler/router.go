package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/johnquangdev/meeting-notes/internal/adapter/dto"
	httpmw "github.com/johnquangdev/meeting-notes/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	aiController   *AIController
	sweepHandler   *SweepHandler
	archiveHandler *ArchiveHandler
}

// NewRouter creates a new router. archiveHandler may be nil when the archive is disabled.
func NewRouter(cfg *config.Config, aiController *AIController, sweepHandler *SweepHandler, archiveHandler *ArchiveHandler) *Router {
	return &Router{
		cfg:            cfg,
		aiController:   aiController,
		sweepHandler:   sweepHandler,
		archiveHandler: archiveHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	e.GET("/health", rt.healthCheck)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/summarize", rt.aiController.Summarize)
	e.POST("/transcribe", rt.aiController.Transcribe)

	// The sweep is reachable under both paths the scheduled trigger has used.
	signed := httpmw.RequireSignature(rt.cfg.Sweep.Secret)
	e.POST("/api/email-notion-summary", rt.sweepHandler.TriggerSweep, signed)
	e.POST("/functions/email-notion-summary", rt.sweepHandler.TriggerSweep, signed)

	api := e.Group("/api")
	rt.setupArchiveRoutes(api)
}

// setupArchiveRoutes configures archive browsing routes
func (rt *Router) setupArchiveRoutes(g *echo.Group) {
	archive := g.Group("/archive")
	if rt.archiveHandler != nil {
		archive.GET("", rt.archiveHandler.ListFiles)
		archive.GET("/url", rt.archiveHandler.DownloadURL)
	} else {
		archive.GET("", rt.notImplemented)
		archive.GET("/url", rt.notImplemented)
	}
}

// notImplemented returns 501 Not Implemented response
func (rt *Router) notImplemented(c echo.Context) error {
	return c.JSON(http.StatusNotImplemented, map[string]interface{}{
		"error":  "The raw-output archive is disabled",
		"path":   c.Request().URL.Path,
		"method": c.Request().Method,
	})
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, dto.HealthResponse{
		Status:      "ok",
		Environment: rt.cfg.Server.Environment,
		Store:       rt.cfg.Store.Backend,
	})
}
