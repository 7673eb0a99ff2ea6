package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	logger "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Logger"
	interfaces "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Repository/Interfaces"
	validation "gitlab.com/hidrosense1/tnk.tank_server/src/production/TNK.Validation"
)

// ReadingController handles tank-level reading requests
type ReadingController struct {
	readingRepo interfaces.ReadingRepository
	logger      *logger.Logger
}

// NewReadingController creates a new reading controller
func NewReadingController(readingRepo interfaces.ReadingRepository, logger *logger.Logger) *ReadingController {
	return &ReadingController{
		readingRepo: readingRepo,
		logger:      logger,
	}
}

// RegisterRoutes registers the reading routes with Gin
func (c *ReadingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		api.POST("/leituras", c.CreateReading)
		api.GET("/leituras/:esp_id", c.GetReadings)
	}
}

// CreateReading validates and persists a single reading
func (c *ReadingController) CreateReading(ctx *gin.Context) {
	var payload map[string]interface{}
	if err := ctx.ShouldBindJSON(&payload); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "corpo da requisicao deve ser um objeto JSON valido",
		})
		return
	}

	input, verr := validation.ParseReadingPayload(payload)
	if verr != nil {
		c.logger.Logger.Debug().
			Str("kind", string(verr.Kind)).
			Str("field", verr.Field).
			Msg("Rejected reading payload")
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   verr.Message,
			"field":   verr.Field,
		})
		return
	}

	reading, err := c.readingRepo.CreateReading(ctx, *input)
	if err != nil {
		c.logger.Logger.Error().Err(err).Str("esp_id", input.EspID).Msg("Error persisting reading")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.logger.Logger.Debug().
		Str("esp_id", reading.EspID).
		Int64("id", reading.ID).
		Msg("Reading persisted")

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    reading,
	})
}

// GetReadings returns the readings of the last 24 hours for one device,
// most recent first
func (c *ReadingController) GetReadings(ctx *gin.Context) {
	espID := ctx.Param("esp_id")
	if !validation.ValidateEspID(espID) {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "esp_id deve conter exatamente 8 digitos",
		})
		return
	}

	readings, err := c.readingRepo.GetRecentReadings(ctx, espID, interfaces.RetentionWindow)
	if err != nil {
		c.logger.Logger.Error().Err(err).Str("esp_id", espID).Msg("Error querying readings")
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(readings),
		"esp_id":  espID,
		"periodo": "ultimas 24 horas",
		"data":    readings,
	})
}
