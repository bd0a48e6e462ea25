package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/pageza/dietwise/backend/internal/types"
)

type ProfileHandler struct {
	profiles service.IProfileService
}

func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, auth gin.HandlerFunc) {
	protected := router.Group("")
	protected.Use(auth)
	{
		protected.GET("/profile", h.GetProfile)
		protected.POST("/profile", h.SaveProfile)
		protected.GET("/dietplan", h.GetDietPlan)
		protected.POST("/dietplan", h.SaveDietPlan)
	}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.GetProfile(c.Request.Context(), userID(c))
	if errors.Is(err, service.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		respondError(c, err, "failed to get profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.profiles.SaveProfile(c.Request.Context(), userID(c), &req); err != nil {
		respondError(c, err, "failed to save profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Profile added successfully"})
}

func (h *ProfileHandler) GetDietPlan(c *gin.Context) {
	plan, err := h.profiles.GetDietPlan(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err, "failed to get diet plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"dietPlan": plan})
}

func (h *ProfileHandler) SaveDietPlan(c *gin.Context) {
	var req types.DietPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.profiles.SaveDietPlan(c.Request.Context(), userID(c), &req); err != nil {
		respondError(c, err, "failed to save diet plan")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Diet plan added successfully"})
}
