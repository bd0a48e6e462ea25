package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pageza/dietwise/backend/internal/database"
	"github.com/pageza/dietwise/backend/internal/models"
)

// NoResponseGenerated is the model output used when no candidate is returned.
const NoResponseGenerated = "No response generated."

// lastAdjustmentLookback is how many days before today are searched for the previous adjustment.
const lastAdjustmentLookback = 6

const (
	jsonFenceOpen  = "```json"
	jsonFenceClose = "```"
)

// AdjustmentService runs the meal-log-to-adjustment pipeline for one user
type AdjustmentService struct {
	store    database.DocumentStore
	profiles IProfileService
	meals    IMealService
	memory   ConversationMemory
	model    GenerativeModel
	archiver AdjustmentArchiver
	now      func() time.Time
}

var _ IAdjustmentService = (*AdjustmentService)(nil)

// NewAdjustmentService creates a new AdjustmentService. archiver may be nil.
func NewAdjustmentService(
	store database.DocumentStore,
	profiles IProfileService,
	meals IMealService,
	memory ConversationMemory,
	model GenerativeModel,
	archiver AdjustmentArchiver,
) *AdjustmentService {
	return &AdjustmentService{
		store:    store,
		profiles: profiles,
		meals:    meals,
		memory:   memory,
		model:    model,
		archiver: archiver,
		now:      time.Now,
	}
}

// WithClock replaces the time source.
func (s *AdjustmentService) WithClock(now func() time.Time) *AdjustmentService {
	s.now = now
	return s
}

// Generate builds the prompt from the user's profile, plan, weekly meal logs
// and previous adjustment, asks the model for a revised plan and persists
// the result under today's date. Any failure is returned as a *PipelineError
// and nothing is persisted.
func (s *AdjustmentService) Generate(ctx context.Context, userID string) (*models.AIAdjustment, error) {
	now := s.now().UTC()
	dateKey := database.DateKey(now)

	profile, err := s.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, stageError("profile", err)
	}
	plan, err := s.profiles.GetDietPlan(ctx, userID)
	if err != nil {
		return nil, stageError("diet plan", err)
	}
	mealLogs, err := s.meals.MealLogsLastWeek(ctx, userID, now)
	if err != nil {
		return nil, stageError("meal logs", err)
	}
	last, err := s.lastAdjustment(ctx, userID, now)
	if err != nil {
		return nil, stageError("last adjustment", err)
	}

	prompt, err := BuildAdjustmentPrompt(PromptInput{
		Profile:        profile,
		DietPlan:       plan,
		MealLogs:       mealLogs,
		LastAdjustment: last,
	})
	if err != nil {
		return nil, stageError("prompt", err)
	}

	history, err := s.memory.Get(ctx, userID)
	if err != nil {
		return nil, stageError("memory", err)
	}

	resp, err := s.model.GenerateContent(ctx, BuildChatPrompt(FormatHistory(history), prompt))
	if err != nil {
		return nil, stageError("model", err)
	}
	output, ok := resp.Text()
	if !ok {
		log.Printf("[AdjustmentService] Model returned no candidates for user %s", userID)
		output = NoResponseGenerated
	}

	// The exchange is remembered even when the output turns out to be unusable.
	if err := s.memory.Append(ctx, userID, models.ConversationTurn{Input: prompt, Output: output}); err != nil {
		return nil, stageError("memory", err)
	}

	adj, err := ParseAdjustment(output)
	if err != nil {
		return nil, stageError("parse", err)
	}

	if err := s.Persist(ctx, userID, dateKey, adj); err != nil {
		return nil, stageError("persist", err)
	}

	log.Printf("[AdjustmentService] Stored adjustment %s for user %s (%d meal logs)", dateKey, userID, len(mealLogs))
	return adj, nil
}

// Persist fully replaces the adjustment stored for dateKey and archives it
// when an archiver is configured. Archive failures are only logged.
func (s *AdjustmentService) Persist(ctx context.Context, userID, dateKey string, adj *models.AIAdjustment) error {
	if err := s.store.Set(ctx, database.AdjustmentPath(userID, dateKey), adj); err != nil {
		return fmt.Errorf("failed to persist adjustment: %w", err)
	}

	if s.archiver != nil {
		if err := s.archiver.Archive(ctx, userID, dateKey, adj); err != nil {
			log.Printf("[AdjustmentService] Failed to archive adjustment %s for user %s: %v", dateKey, userID, err)
		}
	}
	return nil
}

// GetAdjustment returns the adjustment stored for dateKey
func (s *AdjustmentService) GetAdjustment(ctx context.Context, userID, dateKey string) (*models.AIAdjustment, error) {
	var adj models.AIAdjustment
	found, err := database.GetInto(ctx, s.store, database.AdjustmentPath(userID, dateKey), &adj)
	if err != nil {
		return nil, fmt.Errorf("failed to get adjustment: %w", err)
	}
	if !found {
		return nil, ErrAdjustmentNotFound
	}
	return &adj, nil
}

// lastAdjustment returns the most recent stored adjustment, looking at today
// first and then each preceding day, or nil when there is none.
func (s *AdjustmentService) lastAdjustment(ctx context.Context, userID string, now time.Time) (*models.AIAdjustment, error) {
	for i := 0; i <= lastAdjustmentLookback; i++ {
		adj, err := s.GetAdjustment(ctx, userID, database.DateKey(now.AddDate(0, 0, -i)))
		if errors.Is(err, ErrAdjustmentNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return adj, nil
	}
	return nil, nil
}

// StripJSONFence removes one leading "```json" and one trailing "```" marker
// from the trimmed output.
func StripJSONFence(output string) string {
	s := strings.TrimSpace(output)
	s = strings.TrimPrefix(s, jsonFenceOpen)
	s = strings.TrimSuffix(s, jsonFenceClose)
	return strings.TrimSpace(s)
}

// ParseAdjustment parses model output into an adjustment. The output must be
// a JSON object whose "analysis" and "adjustment" are strings and whose
// "adjustedDietPlan" is an object.
func ParseAdjustment(output string) (*models.AIAdjustment, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(StripJSONFence(output)), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAdjustmentParse, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: response is not an object", ErrAdjustmentParse)
	}

	adj := &models.AIAdjustment{}
	if err := stringField(fields, "analysis", &adj.Analysis); err != nil {
		return nil, err
	}
	if err := stringField(fields, "adjustment", &adj.Adjustment); err != nil {
		return nil, err
	}

	plan, ok := fields["adjustedDietPlan"]
	if !ok {
		return nil, fmt.Errorf("%w: missing adjustedDietPlan", ErrAdjustmentParse)
	}
	if trimmed := bytes.TrimSpace(plan); len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: adjustedDietPlan must be an object", ErrAdjustmentParse)
	}
	adj.AdjustedDietPlan = plan

	return adj, nil
}

func stringField(fields map[string]json.RawMessage, name string, dest *string) error {
	raw, ok := fields[name]
	if !ok {
		return fmt.Errorf("%w: missing %s", ErrAdjustmentParse, name)
	}
	if err := json.Unmarshal(raw, dest); err != nil || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return fmt.Errorf("%w: %s must be a string", ErrAdjustmentParse, name)
	}
	return nil
}
