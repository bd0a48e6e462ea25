package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/types"
)

const defaultMealFrequency = 3

// ProfileService reads and writes user profiles and diet plans
type ProfileService struct {
	store database.DocumentStore
	now   func() time.Time
}

var _ IProfileService = (*ProfileService)(nil)

func NewProfileService(store database.DocumentStore) *ProfileService {
	return &ProfileService{store: store, now: time.Now}
}

func (s *ProfileService) WithClock(now func() time.Time) *ProfileService {
	s.now = now
	return s
}

// GetProfile returns the profile stored at users/{uid}
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	found, err := database.GetInto(ctx, s.store, database.UserPath(userID), &profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if !found {
		return nil, ErrProfileNotFound
	}
	return &profile, nil
}

// SaveProfile fully replaces the user's profile
func (s *ProfileService) SaveProfile(ctx context.Context, userID string, req *types.ProfileRequest) (*models.UserProfile, error) {
	profile := &models.UserProfile{
		Name:                    req.Name,
		Age:                     req.Age,
		Weight:                  req.Weight,
		Height:                  req.Height,
		Gender:                  req.Gender,
		DietaryPreferences:      orEmpty(req.DietaryPreferences),
		Goals:                   req.Goals,
		ActivityLevel:           req.ActivityLevel,
		MedicalConditions:       orEmpty(req.MedicalConditions),
		AllergiesOrIntolerances: orEmpty(req.AllergiesOrIntolerances),
		PreferredCuisines:       orEmpty(req.PreferredCuisines),
		MealFrequency:           defaultMealFrequency,
		CreatedAt:               s.now().UTC(),
	}
	if req.MealFrequency != nil {
		profile.MealFrequency = *req.MealFrequency
	}

	if err := s.store.Set(ctx, database.UserPath(userID), profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// GetDietPlan returns every stored day of the user's plan, keyed by day name
func (s *ProfileService) GetDietPlan(ctx context.Context, userID string) (models.DietPlan, error) {
	docs, err := s.store.List(ctx, database.DietPlanCollection(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to list diet plan: %w", err)
	}

	plan := make(models.DietPlan, len(docs))
	for i := range docs {
		var day models.DayPlan
		if err := database.Decode(&docs[i], &day); err != nil {
			return nil, err
		}
		plan[docs[i].DocID] = day
	}
	return plan, nil
}

// SaveDietPlan validates every day of the request and then writes one
// document per day. Nothing is written when any day is invalid.
func (s *ProfileService) SaveDietPlan(ctx context.Context, userID string, req *types.DietPlanRequest) (models.DietPlan, error) {
	if len(req.WeeklyDietPlan) == 0 {
		return nil, &ValidationError{Field: "weeklyDietPlan", Message: "Weekly diet plan is required"}
	}

	updated := s.now().UTC().Format(time.RFC3339)
	plan := make(models.DietPlan, len(req.WeeklyDietPlan))
	for _, day := range req.WeeklyDietPlan {
		dayPlan, err := toDayPlan(day)
		if err != nil {
			return nil, err
		}
		dayPlan.LastUpdated = updated
		plan[day.Day] = dayPlan
	}

	for _, day := range req.WeeklyDietPlan {
		if err := s.store.Set(ctx, database.DietPlanPath(userID, day.Day), plan[day.Day]); err != nil {
			return nil, fmt.Errorf("failed to save diet plan for %s: %w", day.Day, err)
		}
	}

	log.Printf("[ProfileService] Saved %d diet plan days for user %s", len(plan), userID)
	return plan, nil
}

// ListUserIDs returns the IDs of every user document
func (s *ProfileService) ListUserIDs(ctx context.Context) ([]string, error) {
	docs, err := s.store.List(ctx, database.UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.DocID)
	}
	return ids, nil
}

func toDayPlan(req types.DayPlanRequest) (models.DayPlan, error) {
	if req.Day == "" {
		return models.DayPlan{}, &ValidationError{Field: "day", Message: "Day name is required for each day plan"}
	}
	if req.DailyCalorieTarget == nil || *req.DailyCalorieTarget <= 0 || req.MacronutrientSplit == nil || len(req.MealPlan) == 0 {
		return models.DayPlan{}, &ValidationError{
			Field:   req.Day,
			Message: "Each day must include 'dailyCalorieTarget', 'macronutrientSplit', and 'mealPlan'",
		}
	}

	meals := make([]models.PlannedMeal, 0, len(req.MealPlan))
	for _, meal := range req.MealPlan {
		if meal.Type == "" || meal.Calories == nil || meal.Nutrients == nil {
			return models.DayPlan{}, &ValidationError{
				Field:   req.Day,
				Message: "Each meal must include 'type', 'calories', and 'nutrients' (e.g., {'carbs': x, 'protein': y, 'fats': z})",
			}
		}
		meals = append(meals, models.PlannedMeal{
			Type:      meal.Type,
			Calories:  *meal.Calories,
			Nutrients: *meal.Nutrients,
		})
	}

	return models.DayPlan{
		DailyCalorieTarget: *req.DailyCalorieTarget,
		MacronutrientSplit: *req.MacronutrientSplit,
		MealPlan:           meals,
	}, nil
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
