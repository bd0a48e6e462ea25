package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pageza/dietwise/backend/config"
	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/middleware"
	"github.com/pageza/dietwise/backend/internal/mocks"
	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/server"
	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/pageza/dietwise/backend/internal/testhelpers"
	"github.com/pageza/dietwise/backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	handler http.Handler
	store   *database.GormDocumentStore
	model   *mocks.MockGenerativeModel
	auth    *mocks.MockAuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupSQLiteDatabase(t)
	store := database.NewDocumentStore(db)
	model := new(mocks.MockGenerativeModel)
	auth := new(mocks.MockAuthService)

	profiles := service.NewProfileService(store)
	meals := service.NewMealService(store)
	adjustments := service.NewAdjustmentService(store, profiles, meals,
		service.NewInMemoryConversationMemory(10, 100), model, nil)

	srv := server.New(&config.Config{ServerHost: "localhost", ServerPort: "0"}, server.Dependencies{
		DB:          db,
		Auth:        auth,
		Profiles:    profiles,
		Meals:       meals,
		Adjustments: adjustments,
	})

	return &testServer{handler: srv.Handler(), store: store, model: model, auth: auth}
}

func (s *testServer) request(method, path, body, session string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if session != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: session})
	}
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

func (s *testServer) seedVeganUser(t *testing.T) {
	t.Helper()
	s.auth.On("ValidateToken", "valid").Return(&types.TokenClaims{UserID: "u1"}, nil)

	w := s.request(http.MethodPost, "/profile", `{"name":"Vera","dietary_preferences":["vegan"],"goals":"maintenance"}`, "valid")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/dietplan", `{"weeklyDietPlan":[{"day":"Monday","dailyCalorieTarget":2000,
		"macronutrientSplit":{"carbs":40,"protein":30,"fats":30},
		"mealPlan":[{"type":"Breakfast","calories":500,"nutrients":{"carbs":60,"protein":20,"fats":15}}]}]}`, "valid")
	require.Equal(t, http.StatusOK, w.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Server is running"}`, w.Body.String())

	w = s.request(http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","redis":"disabled"}`, w.Body.String())
}

func TestAIAdjustment_VeganUserSuccess(t *testing.T) {
	s := newTestServer(t)
	s.seedVeganUser(t)

	s.model.On("GenerateContent", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "remains vegan")
	})).Return(mocks.TextResponse("```json\n"+`{"analysis":"No meals logged.","adjustment":"Keep targets.","adjustedDietPlan":{"Monday":{"dailyCalorieTarget":2000}}}`+"\n```"), nil).Once()

	w := s.request(http.MethodPost, "/ai_adjustment", "", "valid")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","adjustment":{"analysis":"No meals logged.","adjustment":"Keep targets.","adjustedDietPlan":{"Monday":{"dailyCalorieTarget":2000}}}}`, w.Body.String())
	s.model.AssertNumberOfCalls(t, "GenerateContent", 1)

	w = s.request(http.MethodGet, "/ai_adjustment/"+database.DateKey(time.Now()), "", "valid")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAIAdjustment_ZeroCandidates(t *testing.T) {
	s := newTestServer(t)
	s.seedVeganUser(t)

	s.model.On("GenerateContent", mock.Anything, mock.Anything).
		Return(&service.GenerateContentResponse{}, nil).Once()

	w := s.request(http.MethodPost, "/ai_adjustment", "", "valid")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate AI adjustment. Please try again."}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), service.NoResponseGenerated)

	docs, err := s.store.List(context.Background(), database.AdjustmentCollection("u1"))
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestAIAdjustment_Unauthenticated(t *testing.T) {
	s := newTestServer(t)

	w := s.request(http.MethodPost, "/ai_adjustment", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Unauthorized"}`, w.Body.String())

	s.model.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
	s.auth.AssertNotCalled(t, "ValidateToken", mock.Anything)

	docs, err := s.store.List(context.Background(), database.UsersCollection)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestLogMealThenBackfill(t *testing.T) {
	s := newTestServer(t)
	s.seedVeganUser(t)

	w := s.request(http.MethodPost, "/logmeal", `{"meal_name":"Tofu bowl","category":"Lunch","calories":540,
		"nutrients":{"carbs":60,"protein":30,"fats":18},"ingredients":["tofu","rice"]}`, "valid")
	require.Equal(t, http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/check_missing_meals", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Checked and logged missing meals for all users.")

	w = s.request(http.MethodGet, "/meals", "", "valid")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Meals []models.MealLogEntry `json:"meals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Meals, 4)

	for _, meal := range resp.Meals {
		if meal.Category == models.Lunch {
			assert.Equal(t, "Tofu bowl", meal.MealName)
			assert.Equal(t, float64(540), meal.Calories)
		} else {
			assert.Zero(t, meal.Calories)
			assert.Equal(t, string(meal.Category), meal.MealName)
		}
	}
}
