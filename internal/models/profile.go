package models

import "time"

// UserProfile is stored at users/{uid}.
type UserProfile struct {
	Name                    string    `json:"name"`
	Age                     int       `json:"age"`
	Weight                  float64   `json:"weight"`
	Height                  float64   `json:"height"`
	Gender                  string    `json:"gender"`
	DietaryPreferences      []string  `json:"dietary_preferences"`
	Goals                   string    `json:"goals"`
	ActivityLevel           string    `json:"activity_level"`
	MedicalConditions       []string  `json:"medical_conditions"`
	AllergiesOrIntolerances []string  `json:"allergies_or_intolerances"`
	PreferredCuisines       []string  `json:"preferred_cuisines"`
	MealFrequency           int       `json:"meal_frequency"`
	CreatedAt               time.Time `json:"created_at"`
}
