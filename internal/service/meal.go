package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/types"
)

// trailingDays is the number of days before today included in the weekly window.
const trailingDays = 6

// BackfillReport summarizes one missing-meal scan.
type BackfillReport struct {
	UsersScanned        int      `json:"users_scanned"`
	PlaceholdersCreated int      `json:"placeholders_created"`
	Failed              []string `json:"failed,omitempty"`
}

// MealService logs meals, aggregates the weekly window and backfills missing meals
type MealService struct {
	store database.DocumentStore
	now   func() time.Time
}

var _ IMealService = (*MealService)(nil)

func NewMealService(store database.DocumentStore) *MealService {
	return &MealService{store: store, now: time.Now}
}

// WithClock replaces the time source.
func (s *MealService) WithClock(now func() time.Time) *MealService {
	s.now = now
	return s
}

// LogMeal upserts the entry for the request's category under today's UTC date.
// A later log for the same category replaces the earlier one.
func (s *MealService) LogMeal(ctx context.Context, userID string, req *types.LogMealRequest) (*models.MealLogEntry, error) {
	if req.MealName == "" {
		return nil, &ValidationError{Field: "meal_name", Message: "is required"}
	}
	if !req.Category.IsValid() {
		return nil, &ValidationError{Field: "category", Message: "must be one of Breakfast, Lunch, Dinner, Snacks"}
	}
	if req.Calories < 0 {
		return nil, &ValidationError{Field: "calories", Message: "must not be negative"}
	}

	now := s.now().UTC()
	entry := &models.MealLogEntry{
		MealName:    req.MealName,
		Category:    req.Category,
		Calories:    req.Calories,
		Nutrients:   req.Nutrients,
		Ingredients: orEmpty(req.Ingredients),
		LoggedAt:    now,
	}

	if err := s.store.Set(ctx, database.MealPath(userID, now, req.Category), entry); err != nil {
		return nil, fmt.Errorf("failed to log meal: %w", err)
	}
	return entry, nil
}

// MealsForDate returns the meals logged on the UTC date of day, in store order
func (s *MealService) MealsForDate(ctx context.Context, userID string, day time.Time) ([]models.MealLogEntry, error) {
	docs, err := s.store.List(ctx, database.MealsCollection(userID, day))
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	meals := make([]models.MealLogEntry, 0, len(docs))
	for i := range docs {
		var entry models.MealLogEntry
		if err := database.Decode(&docs[i], &entry); err != nil {
			return nil, err
		}
		meals = append(meals, entry)
	}
	return meals, nil
}

// RecentMeals returns today's meals and the meals of the six preceding days,
// ordered from yesterday backward.
func (s *MealService) RecentMeals(ctx context.Context, userID string, now time.Time) ([]models.MealLogEntry, []models.MealLogEntry, error) {
	today, err := s.MealsForDate(ctx, userID, now)
	if err != nil {
		return nil, nil, err
	}

	week := []models.MealLogEntry{}
	for i := 1; i <= trailingDays; i++ {
		meals, err := s.MealsForDate(ctx, userID, now.AddDate(0, 0, -i))
		if err != nil {
			return nil, nil, err
		}
		week = append(week, meals...)
	}
	return today, week, nil
}

// MealLogsLastWeek returns today's meals followed by those of the previous six days
func (s *MealService) MealLogsLastWeek(ctx context.Context, userID string, now time.Time) ([]models.MealLogEntry, error) {
	today, week, err := s.RecentMeals(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return append(today, week...), nil
}

// BackfillMissingMeals writes a zeroed placeholder for every category the
// user has not logged on the UTC date of now. Existing logs are never
// overwritten. It returns the number of placeholders created.
func (s *MealService) BackfillMissingMeals(ctx context.Context, userID string, now time.Time) (int, error) {
	logged, err := s.store.List(ctx, database.MealsCollection(userID, now))
	if err != nil {
		return 0, fmt.Errorf("failed to list meals: %w", err)
	}

	present := make(map[models.MealCategory]bool, len(logged))
	for _, doc := range logged {
		present[models.MealCategory(doc.DocID)] = true
	}

	created := 0
	for _, category := range models.MealCategories {
		if present[category] {
			continue
		}
		ok, err := s.store.Create(ctx, database.MealPath(userID, now, category), models.NewMissingMeal(category, s.now()))
		if err != nil {
			return created, fmt.Errorf("failed to backfill %s: %w", category, err)
		}
		if ok {
			created++
		}
	}
	return created, nil
}

// ScanAndBackfill backfills today's missing meals for every user. A failure
// for one user is recorded in the report and does not stop the scan.
func (s *MealService) ScanAndBackfill(ctx context.Context, now time.Time) (*BackfillReport, error) {
	users, err := s.store.List(ctx, database.UsersCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	report := &BackfillReport{}
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.UsersScanned++

		created, err := s.BackfillMissingMeals(ctx, user.DocID, now)
		report.PlaceholdersCreated += created
		if err != nil {
			log.Printf("[MealService] Backfill failed for user %s: %v", user.DocID, err)
			report.Failed = append(report.Failed, user.DocID)
		}
	}

	log.Printf("[MealService] Backfill scanned %d users, created %d placeholders, %d failed",
		report.UsersScanned, report.PlaceholdersCreated, len(report.Failed))
	return report, nil
}
