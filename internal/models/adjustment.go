package models

import "encoding/json"

// AIAdjustment is the generated revision of a user's diet plan, stored under
// users/{uid}/aiAdjustment/{YYYY-MM-DD}. AdjustedDietPlan is kept as the raw
// object the model returned.
type AIAdjustment struct {
	Analysis         string          `json:"analysis"`
	Adjustment       string          `json:"adjustment"`
	AdjustedDietPlan json.RawMessage `json:"adjustedDietPlan"`
}
