package service

import (
	"context"
	"time"

	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/types"
)

// GenerativeModel invokes a text generation model. A response may carry zero candidates.
type GenerativeModel interface {
	GenerateContent(ctx context.Context, prompt string) (*GenerateContentResponse, error)
}

// ConversationMemory holds the per-user history of model exchanges.
type ConversationMemory interface {
	// Get returns the user's history, initializing it with the sentinel turn on first access.
	Get(ctx context.Context, userID string) ([]models.ConversationTurn, error)
	// Append adds a turn to the user's history.
	Append(ctx context.Context, userID string, turn models.ConversationTurn) error
}

// AdjustmentArchiver keeps an external copy of persisted adjustments.
type AdjustmentArchiver interface {
	Archive(ctx context.Context, userID, dateKey string, adj *models.AIAdjustment) error
}

// IProfileService defines the interface for profile and diet plan operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, userID string, req *types.ProfileRequest) (*models.UserProfile, error)
	GetDietPlan(ctx context.Context, userID string) (models.DietPlan, error)
	SaveDietPlan(ctx context.Context, userID string, req *types.DietPlanRequest) (models.DietPlan, error)
	ListUserIDs(ctx context.Context) ([]string, error)
}

// IMealService defines the interface for meal logging and backfill
type IMealService interface {
	LogMeal(ctx context.Context, userID string, req *types.LogMealRequest) (*models.MealLogEntry, error)
	MealsForDate(ctx context.Context, userID string, day time.Time) ([]models.MealLogEntry, error)
	MealLogsLastWeek(ctx context.Context, userID string, now time.Time) ([]models.MealLogEntry, error)
	BackfillMissingMeals(ctx context.Context, userID string, now time.Time) (int, error)
	ScanAndBackfill(ctx context.Context, now time.Time) (*BackfillReport, error)
}

// IAdjustmentService defines the interface for the adjustment pipeline
type IAdjustmentService interface {
	Generate(ctx context.Context, userID string) (*models.AIAdjustment, error)
	GetAdjustment(ctx context.Context, userID, dateKey string) (*models.AIAdjustment, error)
}
