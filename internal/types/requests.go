package types

import "github.com/pageza/dietwise/backend/internal/models"

// LogMealRequest is the body of POST /logmeal
type LogMealRequest struct {
	MealName    string              `json:"meal_name" binding:"required"`
	Category    models.MealCategory `json:"category" binding:"required,oneof=Breakfast Lunch Dinner Snacks"`
	Calories    float64             `json:"calories" binding:"gte=0"`
	Nutrients   models.Nutrients    `json:"nutrients"`
	Ingredients []string            `json:"ingredients"`
}

// ProfileRequest is the body of POST /profile
type ProfileRequest struct {
	Name                    string   `json:"name"`
	Age                     int      `json:"age"`
	Weight                  float64  `json:"weight"`
	Height                  float64  `json:"height"`
	Gender                  string   `json:"gender"`
	DietaryPreferences      []string `json:"dietary_preferences"`
	Goals                   string   `json:"goals"`
	ActivityLevel           string   `json:"activity_level"`
	MedicalConditions       []string `json:"medical_conditions"`
	AllergiesOrIntolerances []string `json:"allergies_or_intolerances"`
	PreferredCuisines       []string `json:"preferred_cuisines"`
	MealFrequency           *int     `json:"meal_frequency"`
}

// PlannedMealRequest is one meal of a day plan update. Pointers distinguish
// missing fields from zero values.
type PlannedMealRequest struct {
	Type      string            `json:"type"`
	Calories  *float64          `json:"calories"`
	Nutrients *models.Nutrients `json:"nutrients"`
}

// DayPlanRequest is one day of a weekly diet plan update.
type DayPlanRequest struct {
	Day                string               `json:"day"`
	DailyCalorieTarget *float64             `json:"dailyCalorieTarget"`
	MacronutrientSplit *models.Nutrients    `json:"macronutrientSplit"`
	MealPlan           []PlannedMealRequest `json:"mealPlan"`
}

// DietPlanRequest is the body of POST /dietplan
type DietPlanRequest struct {
	WeeklyDietPlan []DayPlanRequest `json:"weeklyDietPlan"`
}
