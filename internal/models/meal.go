package models

import "time"

// MealCategory is the natural key of one day's meal slot.
type MealCategory string

const (
	Breakfast MealCategory = "Breakfast"
	Lunch     MealCategory = "Lunch"
	Dinner    MealCategory = "Dinner"
	Snacks    MealCategory = "Snacks"
)

// MealCategories is the fixed set of daily meal slots, in the order they are backfilled.
var MealCategories = []MealCategory{Breakfast, Lunch, Dinner, Snacks}

// IsValid reports whether c is one of MealCategories.
func (c MealCategory) IsValid() bool {
	for _, known := range MealCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Nutrients holds macronutrient amounts or shares.
type Nutrients struct {
	Carbs   float64 `json:"carbs"`
	Protein float64 `json:"protein"`
	Fats    float64 `json:"fats"`
}

// MealLogEntry is a meal eaten by a user, stored under
// users/{uid}/dietLog/{YYYY}/{MM}/{DD}/meals/{category}.
type MealLogEntry struct {
	MealName    string       `json:"meal_name"`
	Category    MealCategory `json:"category"`
	Calories    float64      `json:"calories"`
	Nutrients   Nutrients    `json:"nutrients"`
	Ingredients []string     `json:"ingredients"`
	LoggedAt    time.Time    `json:"logged_at"`
}

// NewMissingMeal returns the zero-valued placeholder written for an unlogged category.
func NewMissingMeal(category MealCategory, at time.Time) MealLogEntry {
	return MealLogEntry{
		MealName: string(category),
		Category: category,
		LoggedAt: at.UTC(),
	}
}
