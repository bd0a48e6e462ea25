package mocks

import (
	"context"
	"time"

	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/pageza/dietwise/backend/internal/types"
	"github.com/stretchr/testify/mock"
)

// MockProfileService is a mock implementation of service.IProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) SaveProfile(ctx context.Context, userID string, req *types.ProfileRequest) (*models.UserProfile, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileService) GetDietPlan(ctx context.Context, userID string) (models.DietPlan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.DietPlan), args.Error(1)
}

func (m *MockProfileService) SaveDietPlan(ctx context.Context, userID string, req *types.DietPlanRequest) (models.DietPlan, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.DietPlan), args.Error(1)
}

func (m *MockProfileService) ListUserIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockMealService is a mock implementation of service.IMealService
type MockMealService struct {
	mock.Mock
}

func (m *MockMealService) LogMeal(ctx context.Context, userID string, req *types.LogMealRequest) (*models.MealLogEntry, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealLogEntry), args.Error(1)
}

func (m *MockMealService) MealsForDate(ctx context.Context, userID string, day time.Time) ([]models.MealLogEntry, error) {
	args := m.Called(ctx, userID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealLogEntry), args.Error(1)
}

func (m *MockMealService) MealLogsLastWeek(ctx context.Context, userID string, now time.Time) ([]models.MealLogEntry, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MealLogEntry), args.Error(1)
}

func (m *MockMealService) BackfillMissingMeals(ctx context.Context, userID string, now time.Time) (int, error) {
	args := m.Called(ctx, userID, now)
	return args.Int(0), args.Error(1)
}

func (m *MockMealService) ScanAndBackfill(ctx context.Context, now time.Time) (*service.BackfillReport, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BackfillReport), args.Error(1)
}

// MockAdjustmentService is a mock implementation of service.IAdjustmentService
type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) Generate(ctx context.Context, userID string) (*models.AIAdjustment, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIAdjustment), args.Error(1)
}

func (m *MockAdjustmentService) GetAdjustment(ctx context.Context, userID, dateKey string) (*models.AIAdjustment, error) {
	args := m.Called(ctx, userID, dateKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AIAdjustment), args.Error(1)
}

var (
	_ service.IProfileService    = (*MockProfileService)(nil)
	_ service.IMealService       = (*MockMealService)(nil)
	_ service.IAdjustmentService = (*MockAdjustmentService)(nil)
	_ service.GenerativeModel    = (*MockGenerativeModel)(nil)
	_ service.AdjustmentArchiver = (*MockArchiver)(nil)
)
