package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pageza/dietwise/backend/internal/models"
)

// PromptInput is everything the adjustment prompt embeds.
type PromptInput struct {
	Profile        *models.UserProfile
	DietPlan       models.DietPlan
	MealLogs       []models.MealLogEntry
	LastAdjustment *models.AIAdjustment
}

const adjustmentInstructions = `Please review the meal logs for the past 7 days. If the user has missed any meals or if their total calorie intake and macronutrient distribution (carbs, protein, fats) are below their targets, please:
1. If the user missed meals, compensate for the missing calories in future meals.
2. If there are significant discrepancies in total calories and macronutrients for the week, consider:
   - Increasing the daily calorie target for subsequent days slightly to make up for the missed intake, but ensure that the overall diet remains balanced and not overly caloric.
   - Alternatively, suggesting small adjustments to portion sizes or food choices to avoid any drastic increase in total daily targets.
3. Provide an adjusted weekly meal plan that ensures the user meets their calorie target and nutritional requirements.
4. Return the response as a single valid JSON object with exactly these top-level keys:
   - "analysis": a string summarizing adherence, including missed meals or discrepancies.
   - "adjustment": a string summarizing the strategies used to change the user's diet.
   - "adjustedDietPlan": an object keyed by day name, each day with "dailyCalorieTarget", "macronutrientSplit" and "mealPlan" in the same shape as the current diet plan.
Do not include any text outside the JSON object.`

// BuildAdjustmentPrompt renders the instruction payload for one user.
func BuildAdjustmentPrompt(in PromptInput) (string, error) {
	profile, err := json.Marshal(in.Profile)
	if err != nil {
		return "", fmt.Errorf("failed to marshal profile: %w", err)
	}
	plan, err := json.Marshal(in.DietPlan)
	if err != nil {
		return "", fmt.Errorf("failed to marshal diet plan: %w", err)
	}
	logs := in.MealLogs
	if logs == nil {
		logs = []models.MealLogEntry{}
	}
	meals, err := json.Marshal(logs)
	if err != nil {
		return "", fmt.Errorf("failed to marshal meal logs: %w", err)
	}
	last := []byte("null")
	if in.LastAdjustment != nil {
		if last, err = json.Marshal(in.LastAdjustment); err != nil {
			return "", fmt.Errorf("failed to marshal last adjustment: %w", err)
		}
	}

	preferences := "aligned with the user's dietary preferences"
	if in.Profile != nil && len(in.Profile.DietaryPreferences) > 0 {
		preferences = strings.Join(in.Profile.DietaryPreferences, ", ")
	}

	var b strings.Builder
	b.WriteString("You are an AI diet assistant designed to help a user optimize their diet plan.\n")
	fmt.Fprintf(&b, "The user has the following profile: %s.\n", profile)
	fmt.Fprintf(&b, "Their current diet plan is as follows: %s.\n", plan)
	fmt.Fprintf(&b, "The user's meal logs for the last week and today are: %s.\n", meals)
	fmt.Fprintf(&b, "The last AI adjustment was: %s.\n\n", last)
	b.WriteString(adjustmentInstructions)
	fmt.Fprintf(&b, "\n\nPlease ensure the plan remains %s and adheres to the user's preferences and nutritional goals.", preferences)
	return b.String(), nil
}

// BuildChatPrompt prepends the conversation history to the current prompt.
func BuildChatPrompt(history, prompt string) string {
	return fmt.Sprintf("Context:\n%s\n\nCurrent Prompt:\n%s", history, prompt)
}
