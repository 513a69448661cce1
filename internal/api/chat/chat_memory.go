package chat

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

// charsPerToken approximates tokenisation for history budgeting.
const charsPerToken = 4

// Memory keeps per-session conversation history. Sessions expire after ttl
// of inactivity.
type Memory struct {
	mu        sync.Mutex
	store     *cache.Cache
	maxTokens int
}

func NewMemory(maxTokens int, ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Memory{
		store:     cache.New(ttl, time.Hour),
		maxTokens: maxTokens,
	}
}

// History returns a copy of the session's messages, oldest first.
func (m *Memory) History(sessionID string) []types.ConversationMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]types.ConversationMessage(nil), m.load(sessionID)...)
}

// Append adds messages and drops the oldest ones until the history fits
// the token budget.
func (m *Memory) Append(sessionID string, msgs ...types.ConversationMessage) {
	m.mu.Lock()
	defer m.mu.Unlock()

	history := append(m.load(sessionID), msgs...)
	history = trimHistory(history, m.maxTokens)
	m.store.SetDefault(sessionID, history)
}

func (m *Memory) Clear(sessionID string) {
	m.store.Delete(sessionID)
}

func (m *Memory) load(sessionID string) []types.ConversationMessage {
	if v, ok := m.store.Get(sessionID); ok {
		return v.([]types.ConversationMessage)
	}
	return nil
}

func trimHistory(history []types.ConversationMessage, maxTokens int) []types.ConversationMessage {
	if maxTokens <= 0 {
		return history
	}
	total := 0
	for _, msg := range history {
		total += estimateTokens(msg.Content)
	}
	start := 0
	for total > maxTokens && start < len(history) {
		total -= estimateTokens(history[start].Content)
		start++
	}
	return append([]types.ConversationMessage(nil), history[start:]...)
}

func estimateTokens(s string) int {
	return (len(s) + charsPerToken - 1) / charsPerToken
}
