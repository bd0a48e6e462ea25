package models

// PlannedMeal is one meal of a day's plan.
type PlannedMeal struct {
	Type      string    `json:"type"`
	Calories  float64   `json:"calories"`
	Nutrients Nutrients `json:"nutrients"`
}

// DayPlan is the plan for a single named day, stored under users/{uid}/dietPlan/{day}.
type DayPlan struct {
	DailyCalorieTarget float64       `json:"dailyCalorieTarget"`
	MacronutrientSplit Nutrients     `json:"macronutrientSplit"`
	MealPlan           []PlannedMeal `json:"mealPlan"`
	LastUpdated        string        `json:"lastUpdated,omitempty"`
}

// DietPlan maps a day name (e.g. "Monday") to its plan.
type DietPlan map[string]DayPlan
