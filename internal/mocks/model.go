package mocks

import (
	"context"

	"github.com/pageza/dietwise/backend/internal/models"
	"github.com/pageza/dietwise/backend/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockGenerativeModel is a mock implementation of service.GenerativeModel
type MockGenerativeModel struct {
	mock.Mock
}

func (m *MockGenerativeModel) GenerateContent(ctx context.Context, prompt string) (*service.GenerateContentResponse, error) {
	args := m.Called(ctx, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateContentResponse), args.Error(1)
}

// TextResponse builds a single-candidate response carrying text.
func TextResponse(text string) *service.GenerateContentResponse {
	return &service.GenerateContentResponse{
		Candidates: []service.Candidate{{
			Content: service.Content{Role: "model", Parts: []service.Part{{Text: text}}},
		}},
	}
}

// MockArchiver is a mock implementation of service.AdjustmentArchiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, userID, dateKey string, adj *models.AIAdjustment) error {
	args := m.Called(ctx, userID, dateKey, adj)
	return args.Error(0)
}
