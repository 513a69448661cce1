package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-tourism-chatbot/internal/bridge"
	"github.com/FACorreiaa/go-tourism-chatbot/internal/types"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Ingest(ctx context.Context, docs []types.Document) (types.IngestReport, error) {
	args := m.Called(ctx, docs)
	return args.Get(0).(types.IngestReport), args.Error(1)
}

func (m *MockService) Retrieve(ctx context.Context, query string, k int) ([]types.ScoredDocument, error) {
	args := m.Called(ctx, query, k)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ScoredDocument), args.Error(1)
}

func (m *MockService) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockService) Reset(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newDocumentRouter(t *testing.T, svc Service) http.Handler {
	t.Helper()
	b, err := bridge.New(bridge.WithName("documents-test"), bridge.WithLogger(discardLogger))
	require.NoError(t, err)
	t.Cleanup(b.Shutdown)

	h := NewHandlerImpl(svc, b, time.Second, discardLogger)
	r := chi.NewRouter()
	r.Get("/api/v1/documents/search", h.SearchDocuments)
	r.Get("/api/v1/documents/count", h.CountDocuments)
	return r
}

func get(router http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestHandler_SearchDocuments(t *testing.T) {
	svc := new(MockService)
	svc.On("Retrieve", mock.Anything, "tea country", 3).Return([]types.ScoredDocument{
		{Document: types.Document{Title: "Nuwara Eliya", Category: types.CategoryDestination}, Similarity: 0.82},
	}, nil)

	rr := get(newDocumentRouter(t, svc), "/api/v1/documents/search?q=tea+country&k=3")

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var resp searchResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "Nuwara Eliya", resp.Documents[0].Title)
	svc.AssertExpectations(t)
}

func TestHandler_SearchDocumentsEmpty(t *testing.T) {
	svc := new(MockService)
	svc.On("Retrieve", mock.Anything, "snow", 0).Return(nil, nil)

	rr := get(newDocumentRouter(t, svc), "/api/v1/documents/search?q=snow")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"documents":[]`)
}

func TestHandler_SearchDocumentsValidation(t *testing.T) {
	svc := new(MockService)
	router := newDocumentRouter(t, svc)

	for _, target := range []string{
		"/api/v1/documents/search",
		"/api/v1/documents/search?q=beach&k=0",
		"/api/v1/documents/search?q=beach&k=21",
		"/api/v1/documents/search?q=beach&k=many",
	} {
		assert.Equal(t, http.StatusBadRequest, get(router, target).Code, target)
	}
	svc.AssertNotCalled(t, "Retrieve", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_CountDocuments(t *testing.T) {
	svc := new(MockService)
	svc.On("Count", mock.Anything).Return(int64(42), nil)

	rr := get(newDocumentRouter(t, svc), "/api/v1/documents/count")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"documents":42}`, rr.Body.String())
}

func TestHandler_CountDocumentsError(t *testing.T) {
	svc := new(MockService)
	svc.On("Count", mock.Anything).Return(int64(0), assert.AnError)

	rr := get(newDocumentRouter(t, svc), "/api/v1/documents/count")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
