package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pageza/dietwise/backend/config"
)

// Part is one piece of content text
type Part struct {
	Text string `json:"text"`
}

// Content is a list of parts with an optional role
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// GenerateContentRequest represents a request to the generateContent endpoint
type GenerateContentRequest struct {
	Contents []Content `json:"contents"`
}

// Candidate is one generated response
type Candidate struct {
	Content      Content `json:"content"`
	FinishReason string  `json:"finishReason,omitempty"`
}

// GenerateContentResponse represents the model's reply
type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
}

// Text returns the trimmed text of the first part of the first candidate.
// It reports false when the response has no candidate text.
func (r *GenerateContentResponse) Text() (string, bool) {
	if r == nil || len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return strings.TrimSpace(r.Candidates[0].Content.Parts[0].Text), true
}

// GeminiService calls the Gemini generateContent REST endpoint
type GeminiService struct {
	apiKey string
	apiURL string
	model  string
	client *http.Client
}

var _ GenerativeModel = (*GeminiService)(nil)

// NewGeminiService creates a new GeminiService from configuration
func NewGeminiService(cfg *config.Config) (*GeminiService, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY or GEMINI_API_KEY_FILE must be set")
	}

	return &GeminiService{
		apiKey: cfg.GeminiAPIKey,
		apiURL: strings.TrimRight(cfg.GeminiAPIURL, "/"),
		model:  cfg.GeminiModel,
		client: &http.Client{Timeout: cfg.GeminiTimeout},
	}, nil
}

// geminiKeyHeader carries the API key so it never appears in request URLs or their errors
const geminiKeyHeader = "x-goog-api-key"

func (s *GeminiService) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", s.apiURL, url.PathEscape(s.model))
}

// GenerateContent sends prompt as a single user message
func (s *GeminiService) GenerateContent(ctx context.Context, prompt string) (*GenerateContentResponse, error) {
	reqBody := GenerateContentRequest{
		Contents: []Content{{Role: "user", Parts: []Part{{Text: prompt}}}},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(geminiKeyHeader, s.apiKey)

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("[GeminiService] API request failed with status %d: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("API request failed with status %d", resp.StatusCode)
	}

	var result GenerateContentResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Printf("[GeminiService] %s returned %d candidates in %v", s.model, len(result.Candidates), time.Since(start))
	return &result, nil
}
