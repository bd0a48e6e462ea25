package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Trigger queues an out-of-band pipeline run
type Trigger interface {
	Trigger() bool
}

type JobsHandler struct {
	pipeline Trigger
}

func NewJobsHandler(pipeline Trigger) *JobsHandler {
	return &JobsHandler{pipeline: pipeline}
}

func (h *JobsHandler) RegisterRoutes(router *gin.RouterGroup, jobAuth gin.HandlerFunc) {
	router.POST("/jobs/daily", jobAuth, h.RunDaily)
}

func (h *JobsHandler) RunDaily(c *gin.Context) {
	if !h.pipeline.Trigger() {
		c.JSON(http.StatusConflict, gin.H{"error": "a daily run is already queued"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "message": "Daily pipeline run queued"})
}
