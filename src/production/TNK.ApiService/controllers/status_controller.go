package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Logger"
)

// Version is reported by the root status endpoint
const Version = "1.0.0"

// availableRoutes is enumerated in the structured 404 response
var availableRoutes = []string{
	"GET /",
	"GET /api/status",
	"POST /api/leituras",
	"GET /api/leituras/:esp_id",
}

// DatabaseHealth reports database connectivity
type DatabaseHealth interface {
	CheckDatabaseHealth(ctx context.Context) error
}

// StatusController handles service and database status requests
type StatusController struct {
	health DatabaseHealth
	logger *logger.Logger
}

// NewStatusController creates a new status controller
func NewStatusController(health DatabaseHealth, logger *logger.Logger) *StatusController {
	return &StatusController{
		health: health,
		logger: logger,
	}
}

// RegisterRoutes registers the status routes and the catch-all handler
func (c *StatusController) RegisterRoutes(router *gin.Engine) {
	router.GET("/", c.Root)
	router.GET("/api/status", c.DatabaseStatus)
	router.NoRoute(c.NotFound)
}

// Root reports that the API is up
func (c *StatusController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message":   "API de monitoramento de nivel de tanques",
		"status":    "online",
		"version":   Version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// DatabaseStatus reports database connectivity
func (c *StatusController) DatabaseStatus(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), 5*time.Second)
	defer cancel()

	if err := c.health.CheckDatabaseHealth(checkCtx); err != nil {
		c.logger.Logger.Error().Err(err).Msg("Database health check failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"database": "erro",
			"error":    err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"database":  "conectado",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// NotFound answers any unmatched method/path combination with the list of
// available routes
func (c *StatusController) NotFound(ctx *gin.Context) {
	ctx.JSON(http.StatusNotFound, gin.H{
		"error":             "rota nao encontrada",
		"path":              ctx.Request.URL.Path,
		"method":            ctx.Request.Method,
		"rotas_disponiveis": availableRoutes,
	})
}
