package service_test

import (
	"context"
	"testing"

	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/pageza/dietwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDay(day string) types.DayPlanRequest {
	return types.DayPlanRequest{
		Day:                day,
		DailyCalorieTarget: float(2000),
		MacronutrientSplit: &models.Nutrients{Carbs: 40, Protein: 30, Fats: 30},
		MealPlan: []types.PlannedMealRequest{
			{Type: "Breakfast", Calories: float(500), Nutrients: &models.Nutrients{Carbs: 60, Protein: 20, Fats: 15}},
		},
	}
}

func TestProfileService_SaveAndGetProfile(t *testing.T) {
	ctx := context.Background()
	profileSvc := service.NewProfileService(newStore(t)).WithClock(clock)

	_, err := profileSvc.GetProfile(ctx, "u1")
	assert.ErrorIs(t, err, service.ErrProfileNotFound)

	saved, err := profileSvc.SaveProfile(ctx, "u1", &types.ProfileRequest{
		Name:               "Ada",
		Age:                34,
		DietaryPreferences: []string{"vegan"},
		Goals:              "maintenance",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, saved.MealFrequency)
	assert.Equal(t, []string{}, saved.MedicalConditions)

	got, err := profileSvc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, []string{"vegan"}, got.DietaryPreferences)
	assert.Equal(t, fixedNow, got.CreatedAt)

	ids, err := profileSvc.ListUserIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, ids)
}

func TestProfileService_SaveDietPlan(t *testing.T) {
	ctx := context.Background()
	profileSvc := service.NewProfileService(newStore(t)).WithClock(clock)

	plan, err := profileSvc.SaveDietPlan(ctx, "u1", &types.DietPlanRequest{
		WeeklyDietPlan: []types.DayPlanRequest{validDay("Monday"), validDay("Tuesday")},
	})
	require.NoError(t, err)
	assert.Len(t, plan, 2)

	got, err := profileSvc.GetDietPlan(ctx, "u1")
	require.NoError(t, err)
	require.Contains(t, got, "Monday")
	assert.Equal(t, float64(2000), got["Monday"].DailyCalorieTarget)
	assert.Equal(t, "Breakfast", got["Monday"].MealPlan[0].Type)
	assert.Equal(t, "2024-03-05T18:30:00Z", got["Tuesday"].LastUpdated)
}

func TestProfileService_SaveDietPlanValidation(t *testing.T) {
	missingTarget := validDay("Tuesday")
	missingTarget.DailyCalorieTarget = nil

	missingMealNutrients := validDay("Wednesday")
	missingMealNutrients.MealPlan[0].Nutrients = nil

	tests := []struct {
		name    string
		req     *types.DietPlanRequest
		message string
	}{
		{"empty plan", &types.DietPlanRequest{}, "Weekly diet plan is required"},
		{"missing day name", &types.DietPlanRequest{WeeklyDietPlan: []types.DayPlanRequest{validDay("")}}, "Day name is required"},
		{"missing day field", &types.DietPlanRequest{WeeklyDietPlan: []types.DayPlanRequest{validDay("Monday"), missingTarget}}, "dailyCalorieTarget"},
		{"missing meal field", &types.DietPlanRequest{WeeklyDietPlan: []types.DayPlanRequest{missingMealNutrients}}, "Each meal must include"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			store := newStore(t)
			profileSvc := service.NewProfileService(store)

			_, err := profileSvc.SaveDietPlan(ctx, "u1", tt.req)
			require.Error(t, err)
			assert.True(t, service.IsValidationError(err))
			assert.Contains(t, err.Error(), tt.message)

			// Nothing is written when any day is rejected
			docs, err := store.List(ctx, database.DietPlanCollection("u1"))
			require.NoError(t, err)
			assert.Empty(t, docs)
		})
	}
}
