package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/internal/service"
)

// adjustmentFailedMessage is the only detail returned for pipeline failures
const adjustmentFailedMessage = "Failed to generate AI adjustment. Please try again."

type AdjustmentHandler struct {
	adjustments service.IAdjustmentService
}

func NewAdjustmentHandler(adjustments service.IAdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adjustments}
}

// RegisterRoutes registers the adjustment routes. limit, when non-nil, runs
// after auth on the generation route.
func (h *AdjustmentHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc, limit gin.HandlerFunc) {
	generate := []gin.HandlerFunc{auth}
	if limit != nil {
		generate = append(generate, limit)
	}
	generate = append(generate, h.GenerateAdjustment)

	router.POST("/ai_adjustment", generate...)
	router.GET("/ai_adjustment/:date", auth, h.GetAdjustment)
}

func (h *AdjustmentHandler) GenerateAdjustment(c *gin.Context) {
	adj, err := h.adjustments.Generate(c.Request.Context(), userID(c))
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": adjustmentFailedMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "adjustment": adj})
}

func (h *AdjustmentHandler) GetAdjustment(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	adj, err := h.adjustments.GetAdjustment(c.Request.Context(), userID(c), date)
	if errors.Is(err, service.ErrAdjustmentNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "AI adjustment not found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to get AI adjustment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "adjustment": adj})
}
