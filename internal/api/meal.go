package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/pageza/dietwise/backend/internal/types"
)

type MealHandler struct {
	meals service.IMealService
}

func NewMealHandler(meals service.IMealService) *MealHandler {
	return &MealHandler{meals: meals}
}

// RegisterRoutes registers the user meal routes behind auth and the
// backfill job behind jobAuth.
func (h *MealHandler) RegisterRoutes(router *gin.RouterGroup, auth, jobAuth gin.HandlerFunc) {
	router.POST("/logmeal", auth, h.LogMeal)
	router.GET("/meals", auth, h.ListMeals)
	router.POST("/check_missing_meals", jobAuth, h.CheckMissingMeals)
}

func (h *MealHandler) LogMeal(c *gin.Context) {
	var req types.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.meals.LogMeal(c.Request.Context(), userID(c), &req); err != nil {
		respondError(c, err, "Failed to log meal")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Meal logged successfully!"})
}

// ListMeals returns the caller's meals for ?date=YYYY-MM-DD, defaulting to today (UTC)
func (h *MealHandler) ListMeals(c *gin.Context) {
	day := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		day = parsed
	}

	meals, err := h.meals.MealsForDate(c.Request.Context(), userID(c), day)
	if err != nil {
		respondError(c, err, "Failed to get meals")
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": day.Format(dateLayout), "meals": meals})
}

func (h *MealHandler) CheckMissingMeals(c *gin.Context) {
	report, err := h.meals.ScanAndBackfill(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, err, "Failed to check missing meals")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Checked and logged missing meals for all users.",
		"report":  report,
	})
}
