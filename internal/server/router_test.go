package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/krishnabalajiwork/farmai-assistant/internal/api/handlers"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockAskService struct {
	mock.Mock
}

func (m *MockAskService) Process(ctx context.Context, query string) *domain.AgentResponse {
	args := m.Called(ctx, query)
	return args.Get(0).(*domain.AgentResponse)
}

type MockIndexStatus struct {
	mock.Mock
}

func (m *MockIndexStatus) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockIndexStatus) Model() string {
	args := m.Called()
	return args.String(0)
}

type MockChunkCounter struct {
	mock.Mock
}

func (m *MockChunkCounter) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func newTestRouter(apiKey string, svc *MockAskService) http.Handler {
	index := new(MockIndexStatus)
	index.On("Ready").Return(true)
	index.On("Model").Return("text-embedding-ada-002")
	chunks := new(MockChunkCounter)
	chunks.On("Count", mock.Anything).Return(int64(12), nil)

	return NewRouter(RouterConfig{
		APIKey:        apiKey,
		AskHandler:    handlers.NewAskHandler(svc),
		StatusHandler: handlers.NewStatusHandler(index, chunks),
	})
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter("", new(MockAskService))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRouter_Ask(t *testing.T) {
	mockSvc := new(MockAskService)
	resp := domain.NewAgentResponse("how to manage soil fertility")
	resp.Response = "Test soil every two years and apply compost."
	mockSvc.On("Process", mock.Anything, "how to manage soil fertility").Return(resp)

	router := newTestRouter("", mockSvc)

	body := bytes.NewBufferString(`{"question": "how to manage soil fertility"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/ask", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "compost")
	mockSvc.AssertExpectations(t)
}

func TestRouter_Ask_RequiresAPIKey(t *testing.T) {
	router := newTestRouter("secret-token", new(MockAskService))

	body := bytes.NewBufferString(`{"question": "hello"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/ask", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_Ask_WithAPIKey(t *testing.T) {
	mockSvc := new(MockAskService)
	resp := domain.NewAgentResponse("q")
	resp.Response = "answer"
	mockSvc.On("Process", mock.Anything, "q").Return(resp)

	router := newTestRouter("secret-token", mockSvc)

	body := bytes.NewBufferString(`{"question": "q"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/ask", body)
	req.Header.Set("Authorization", "Bearer secret-token")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Status(t *testing.T) {
	router := newTestRouter("", new(MockAskService))

	req := httptest.NewRequest(http.MethodGet, "/v1/status", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "chunk_count")
}

func TestRouter_HealthBypassesAuth(t *testing.T) {
	router := newTestRouter("secret-token", new(MockAskService))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

type MockChunkLister struct {
	mock.Mock
}

func (m *MockChunkLister) ListPage(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[domain.Chunk], error) {
	args := m.Called(ctx, cursor, limit)
	return args.Get(0).(*pagination.PageResult[domain.Chunk]), args.Error(1)
}

func TestRouter_Chunks(t *testing.T) {
	lister := new(MockChunkLister)
	lister.On("ListPage", mock.Anything, (*pagination.Cursor)(nil), 20).
		Return(&pagination.PageResult[domain.Chunk]{Items: []domain.Chunk{}}, nil)

	index := new(MockIndexStatus)
	index.On("Ready").Return(true)
	index.On("Model").Return("text-embedding-ada-002")
	chunks := new(MockChunkCounter)
	chunks.On("Count", mock.Anything).Return(int64(0), nil)

	router := NewRouter(RouterConfig{
		AskHandler:    handlers.NewAskHandler(new(MockAskService)),
		StatusHandler: handlers.NewStatusHandler(index, chunks),
		ChunksHandler: handlers.NewChunksHandler(lister),
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/chunks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "has_more")
}

func TestRouter_Chunks_NotWiredWithoutHandler(t *testing.T) {
	router := newTestRouter("", new(MockAskService))

	req := httptest.NewRequest(http.MethodGet, "/v1/chunks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
