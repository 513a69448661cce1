package chat

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/config"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/api/flight"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) GenerateContent(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) AnalyzeImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	args := m.Called(ctx, prompt, image, mimeType)
	return args.String(0), args.Error(1)
}

type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string, k int) ([]types.ScoredDocument, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ScoredDocument), args.Error(1)
}

type MockFlights struct {
	mock.Mock
}

func (m *MockFlights) Search(ctx context.Context, query string) (types.FlightSearch, []types.Flight, error) {
	args := m.Called(ctx, query)
	flights, _ := args.Get(1).([]types.Flight)
	return args.Get(0).(types.FlightSearch), flights, args.Error(2)
}

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveInteraction(ctx context.Context, interaction types.ChatInteraction) (uuid.UUID, error) {
	args := m.Called(ctx, interaction)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRepository) ListInteractions(ctx context.Context, sessionID string, limit int) ([]types.ChatInteraction, error) {
	args := m.Called(ctx, sessionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ChatInteraction), args.Error(1)
}

var (
	testLLMConfig = config.LLMConfig{SystemPrompt: "You are a Sri Lanka travel guide."}
	testRAGConfig = config.RAGConfig{MaxSourceDocs: 5, MaxHistoryTokens: 4000}
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

type fixture struct {
	llm       *MockLLM
	retriever *MockRetriever
	flights   *MockFlights
	repo      *MockRepository
	svc       *ServiceImpl
}

func newFixture() *fixture {
	f := &fixture{
		llm:       new(MockLLM),
		retriever: new(MockRetriever),
		flights:   new(MockFlights),
		repo:      new(MockRepository),
	}
	f.svc = NewService(f.llm, f.retriever, f.flights, f.repo, nil, testLLMConfig, testRAGConfig, discardLogger, nil)
	return f
}

var sigiriya = types.ScoredDocument{
	Document: types.Document{
		Title:    "Sigiriya",
		Category: types.CategoryDestination,
		Content:  "Fifth-century rock fortress with frescoes.",
	},
	Similarity: 0.91,
}

func TestService_ProcessQuery_RAG(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	f.retriever.On("Retrieve", mock.Anything, "Tell me about Sigiriya", 5).
		Return([]types.ScoredDocument{sigiriya}, nil)
	f.llm.On("GenerateContent", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "You are a Sri Lanka travel guide.") &&
			assert.Contains(t, p, "[1] Sigiriya (destination)") &&
			assert.Contains(t, p, "Question: Tell me about Sigiriya")
	})).Return("Sigiriya is an ancient rock fortress.", nil)
	f.repo.On("SaveInteraction", mock.Anything, mock.MatchedBy(func(it types.ChatInteraction) bool {
		return it.SessionID == "s1" && it.Kind == types.KindRAG && it.SourceCount == 1
	})).Return(uuid.New(), nil)

	resp, err := f.svc.ProcessQuery(ctx, types.ChatRequest{SessionID: "s1", Message: "Tell me about Sigiriya"})
	require.NoError(t, err)
	assert.Equal(t, "Sigiriya is an ancient rock fortress.", resp.Answer)
	assert.Equal(t, types.KindRAG, resp.Kind)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Sigiriya", resp.Sources[0].Title)
	assert.Len(t, f.svc.memory.History("s1"), 2)

	f.llm.AssertExpectations(t)
	f.retriever.AssertExpectations(t)
	f.repo.AssertExpectations(t)
	f.flights.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
}

func TestService_ProcessQuery_HistoryInPrompt(t *testing.T) {
	f := newFixture()
	f.svc.memory.Append("s1",
		types.ConversationMessage{Role: types.RoleUser, Content: "I like beaches"},
		types.ConversationMessage{Role: types.RoleAssistant, Content: "Try Mirissa."},
	)

	f.retriever.On("Retrieve", mock.Anything, mock.Anything, 5).Return([]types.ScoredDocument{}, nil)
	f.llm.On("GenerateContent", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "User: I like beaches\nAssistant: Try Mirissa.") &&
			assert.Contains(t, p, "(no matching documents)")
	})).Return("Unawatuna is close by.", nil)
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(uuid.New(), nil)

	_, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{SessionID: "s1", Message: "Anything nearby?"})
	require.NoError(t, err)
	f.llm.AssertExpectations(t)
}

func TestService_ProcessQuery_PersistsLatency(t *testing.T) {
	f := newFixture()
	f.retriever.On("Retrieve", mock.Anything, mock.Anything, 5).Return([]types.ScoredDocument{sigiriya}, nil)
	f.llm.On("GenerateContent", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { time.Sleep(30 * time.Millisecond) }).
		Return("Go early to beat the heat.", nil)

	var saved types.ChatInteraction
	f.repo.On("SaveInteraction", mock.Anything, mock.MatchedBy(func(it types.ChatInteraction) bool {
		return it.LatencyMs > 0
	})).Run(func(args mock.Arguments) {
		saved = args.Get(1).(types.ChatInteraction)
	}).Return(uuid.New(), nil)

	resp, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{SessionID: "s1", Message: "When should I climb Sigiriya?"})
	require.NoError(t, err)
	f.repo.AssertExpectations(t)
	assert.GreaterOrEqual(t, saved.LatencyMs, int64(30))
	assert.GreaterOrEqual(t, resp.LatencyMs, saved.LatencyMs)
}

func TestService_ProcessQuery_Flight(t *testing.T) {
	f := newFixture()
	var ul types.Flight
	ul.Airline.Name = "SriLankan Airlines"
	ul.Flight.IATA = "UL101"

	f.flights.On("Search", mock.Anything, "flights from colombo to male").
		Return(types.FlightSearch{From: "colombo", To: "male"}, []types.Flight{ul}, nil)
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(uuid.New(), nil)

	resp, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "flights from colombo to male"})
	require.NoError(t, err)
	assert.Equal(t, types.KindFlight, resp.Kind)
	assert.Contains(t, resp.Answer, "SriLankan Airlines UL101")
	assert.NotEmpty(t, resp.SessionID)
	f.llm.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
	f.retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProcessQuery_FlightErrorBecomesAnswer(t *testing.T) {
	f := newFixture()
	f.flights.On("Search", mock.Anything, mock.Anything).
		Return(types.FlightSearch{}, nil, flight.ErrRateLimited)
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(uuid.Nil, errors.New("db down"))

	resp, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "any flights tomorrow?"})
	require.NoError(t, err)
	assert.Equal(t, types.KindFlight, resp.Kind)
	assert.Contains(t, resp.Answer, "I couldn't find any flight information. API rate limit exceeded")
}

func TestService_ProcessQuery_ImageWithQuestion(t *testing.T) {
	f := newFixture()
	encoded := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)

	f.llm.On("AnalyzeImage", mock.Anything, "Where is this?", pngBytes, "image/png").
		Return("The Temple of the Tooth in Kandy.", nil)
	f.retriever.On("Retrieve", mock.Anything, "Where is this?", 5).
		Return([]types.ScoredDocument{sigiriya}, nil)
	f.llm.On("GenerateContent", mock.Anything, mock.MatchedBy(func(p string) bool {
		return assert.Contains(t, p, "Here's what I see in the image:\nThe Temple of the Tooth in Kandy.")
	})).Return("That is the Temple of the Tooth.", nil)
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(uuid.New(), nil)

	resp, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "Where is this?", Image: encoded})
	require.NoError(t, err)
	assert.Equal(t, "The Temple of the Tooth in Kandy.", resp.ImageAnalysis)
	assert.Equal(t, "That is the Temple of the Tooth.", resp.Answer)
	f.llm.AssertExpectations(t)
}

func TestService_ProcessQuery_ImageOnly(t *testing.T) {
	f := newFixture()
	encoded := base64.StdEncoding.EncodeToString(pngBytes)

	f.llm.On("AnalyzeImage", mock.Anything, mock.Anything, pngBytes, "image/png").
		Return("A stilt fisherman near Koggala.", nil)
	f.repo.On("SaveInteraction", mock.Anything, mock.Anything).Return(uuid.New(), nil)

	resp, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Image: encoded})
	require.NoError(t, err)
	assert.Equal(t, "A stilt fisherman near Koggala.", resp.Answer)
	assert.Empty(t, resp.Sources)
	f.retriever.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
	f.llm.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
}

func TestService_ProcessQuery_Errors(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "   "})
		assert.ErrorIs(t, err, types.ErrEmptyQuery)
	})

	t.Run("bad image", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "what is this", Image: "not base64!"})
		assert.ErrorIs(t, err, types.ErrInvalidImage)
	})

	t.Run("retrieval failure", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("vector store unavailable")
		f.retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return(nil, boom)

		_, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "hotels in Galle"})
		assert.ErrorIs(t, err, boom)
		f.llm.AssertNotCalled(t, "GenerateContent", mock.Anything, mock.Anything)
	})

	t.Run("generation failure", func(t *testing.T) {
		f := newFixture()
		f.retriever.On("Retrieve", mock.Anything, mock.Anything, mock.Anything).Return([]types.ScoredDocument{}, nil)
		f.llm.On("GenerateContent", mock.Anything, mock.Anything).Return("", context.DeadlineExceeded)

		_, err := f.svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "hotels in Galle"})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
		f.repo.AssertNotCalled(t, "SaveInteraction", mock.Anything, mock.Anything)
	})
}

func TestService_WithoutFlightsOrRepository(t *testing.T) {
	llm, retriever := new(MockLLM), new(MockRetriever)
	svc := NewService(llm, retriever, nil, nil, nil, testLLMConfig, testRAGConfig, discardLogger, nil)

	retriever.On("Retrieve", mock.Anything, "which airline flies to Jaffna", 5).Return([]types.ScoredDocument{}, nil)
	llm.On("GenerateContent", mock.Anything, mock.Anything).Return("FitsAir flies to Jaffna.", nil)

	resp, err := svc.ProcessQuery(context.Background(), types.ChatRequest{Message: "which airline flies to Jaffna"})
	require.NoError(t, err)
	assert.Equal(t, types.KindRAG, resp.Kind)

	_, err = svc.History(context.Background(), "s")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt("", nil, nil, "Is Ella worth it?")
	assert.Equal(t, "Context:\n(no matching documents)\n\nQuestion: Is Ella worth it?", p)
}
