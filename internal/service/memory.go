package service

import (
	"context"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pageza/dietwise/backend/internal/models"
)

// FormatHistory renders turns as alternating Human/AI lines.
func FormatHistory(turns []models.ConversationTurn) string {
	var b strings.Builder
	for i, turn := range turns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("Human: ")
		b.WriteString(turn.Input)
		b.WriteString("\nAI: ")
		b.WriteString(turn.Output)
	}
	return b.String()
}

// withSentinel returns the sentinel turn followed by the stored turns.
func withSentinel(turns []models.ConversationTurn) []models.ConversationTurn {
	out := make([]models.ConversationTurn, 0, len(turns)+1)
	out = append(out, models.ContextInitializedTurn)
	return append(out, turns...)
}

// defaultMemoryUsers caps the in-memory store when no user limit is configured
const defaultMemoryUsers = 1000

// InMemoryConversationMemory keeps at most maxTurns turns per user, plus the
// sentinel, for at most maxUsers users. The least recently used user is
// evicted when the cap is reached.
type InMemoryConversationMemory struct {
	// mu serializes the read-modify-write in Append
	mu       sync.Mutex
	maxTurns int
	users    *lru.Cache[string, []models.ConversationTurn]
}

var _ ConversationMemory = (*InMemoryConversationMemory)(nil)

func NewInMemoryConversationMemory(maxTurns, maxUsers int) *InMemoryConversationMemory {
	if maxUsers <= 0 {
		maxUsers = defaultMemoryUsers
	}
	users, err := lru.New[string, []models.ConversationTurn](maxUsers)
	if err != nil {
		// Only returned for a non-positive size
		panic(err)
	}
	return &InMemoryConversationMemory{maxTurns: maxTurns, users: users}
}

func (m *InMemoryConversationMemory) Get(_ context.Context, userID string) ([]models.ConversationTurn, error) {
	turns, _ := m.users.Get(userID)
	return withSentinel(turns), nil
}

func (m *InMemoryConversationMemory) Append(_ context.Context, userID string, turn models.ConversationTurn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	turns, _ := m.users.Get(userID)
	if m.maxTurns > 0 && len(turns) >= m.maxTurns {
		turns = turns[len(turns)-m.maxTurns+1:]
	}
	next := make([]models.ConversationTurn, 0, len(turns)+1)
	next = append(next, turns...)
	m.users.Add(userID, append(next, turn))
	return nil
}
