package database_test

import (
	"testing"
	"time"

	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestPaths(t *testing.T) {
	day := time.Date(2024, 1, 9, 23, 0, 0, 0, time.FixedZone("EST", -5*3600))

	assert.Equal(t, "users/abc", database.UserPath("abc"))
	assert.Equal(t, "users/abc/dietPlan/Monday", database.DietPlanPath("abc", "Monday"))
	// 23:00 EST is already the next day in UTC
	assert.Equal(t, "users/abc/dietLog/2024/01/10/meals", database.MealsCollection("abc", day))
	assert.Equal(t, "users/abc/dietLog/2024/01/10/meals/Snacks", database.MealPath("abc", day, models.Snacks))
	assert.Equal(t, "2024-01-10", database.DateKey(day))
	assert.Equal(t, "users/abc/aiAdjustment/2024-01-10", database.AdjustmentPath("abc", database.DateKey(day)))
}
