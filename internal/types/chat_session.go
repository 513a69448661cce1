package types

import (
	"time"

	"github.com/google/uuid"
)

type ConversationMessage struct {
	Role      MessageRole `json:"role"` // user, assistant
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ResponseKind records which pipeline produced an answer.
type ResponseKind string

const (
	KindRAG    ResponseKind = "rag"
	KindFlight ResponseKind = "flight"
)

// Request/Response types for chat API

type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message"`
	// Image is either raw base64 or a data URL ("data:image/jpeg;base64,...").
	Image string `json:"image,omitempty"`
}

type ChatResponse struct {
	SessionID     string       `json:"session_id"`
	Answer        string       `json:"answer"`
	Kind          ResponseKind `json:"kind"`
	Sources       []Source     `json:"sources,omitempty"`
	ImageAnalysis string       `json:"image_analysis,omitempty"`
	LatencyMs     int64        `json:"latency_ms"`
}

type Source struct {
	Title      string  `json:"title"`
	Category   string  `json:"category"`
	Similarity float64 `json:"similarity"`
}

// ChatInteraction is one persisted question/answer pair.
type ChatInteraction struct {
	ID          uuid.UUID    `json:"id"`
	SessionID   string       `json:"session_id"`
	Question    string       `json:"question"`
	Answer      string       `json:"answer"`
	Kind        ResponseKind `json:"kind"`
	SourceCount int          `json:"source_count"`
	LatencyMs   int64        `json:"latency_ms"`
	CreatedAt   time.Time    `json:"created_at"`
}
