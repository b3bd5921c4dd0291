package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEmbeddingAPI is a mock for the embedding API
type MockEmbeddingAPI struct {
	mock.Mock
}

func (m *MockEmbeddingAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockCompletionAPI is a mock for the completion API
type MockCompletionAPI struct {
	mock.Mock
}

func (m *MockCompletionAPI) CreateCompletion(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	args := m.Called(ctx, prompt, temperature, maxTokens)
	return args.String(0), args.Error(1)
}

func TestClient_GenerateEmbedding_Success(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := &Client{embeddings: mockAPI, dimensions: DefaultEmbeddingDimensions}

	ctx := context.Background()
	text := "Apply copper-based fungicides for early blight."
	expectedEmbedding := make([]float32, 1536)
	for i := range expectedEmbedding {
		expectedEmbedding[i] = float32(i) * 0.001
	}

	mockAPI.On("CreateEmbeddings", mock.Anything, text).Return(expectedEmbedding, nil)

	embedding, err := client.GenerateEmbedding(ctx, text)

	assert.NoError(t, err)
	assert.Len(t, embedding, 1536)
	assert.Equal(t, expectedEmbedding, embedding)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := NewClient("")

	embedding, err := client.GenerateEmbedding(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := &Client{embeddings: mockAPI, dimensions: DefaultEmbeddingDimensions}

	apiErr := errors.New("API rate limit exceeded")
	mockAPI.On("CreateEmbeddings", mock.Anything, mock.Anything).Return(nil, apiErr)

	embedding, err := client.GenerateEmbedding(context.Background(), "Test text")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Contains(t, err.Error(), "failed to create embedding")
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := &Client{embeddings: mockAPI, dimensions: DefaultEmbeddingDimensions}

	short := make([]float32, 42)
	mockAPI.On("CreateEmbeddings", mock.Anything, mock.Anything).Return(short, nil)

	embedding, err := client.GenerateEmbedding(context.Background(), "Test text")

	assert.Nil(t, embedding)
	assert.Equal(t, ErrWrongDimensions, err)
}

func TestClient_Complete_Success(t *testing.T) {
	mockAPI := new(MockCompletionAPI)
	client := &Client{completions: mockAPI}

	prompt := "Answer using only the provided context."
	mockAPI.On("CreateCompletion", mock.Anything, prompt, float32(0.1), 512).
		Return("Use copper-based fungicides.", nil)

	text, err := client.Complete(context.Background(), prompt, 0.1, 512)

	assert.NoError(t, err)
	assert.Equal(t, "Use copper-based fungicides.", text)
	mockAPI.AssertExpectations(t)
}

func TestClient_Complete_EmptyPrompt(t *testing.T) {
	client := NewClient("")

	text, err := client.Complete(context.Background(), "", 0.1, 512)

	assert.Empty(t, text)
	assert.Equal(t, ErrEmptyPrompt, err)
}

func TestClient_Complete_APIError(t *testing.T) {
	mockAPI := new(MockCompletionAPI)
	client := &Client{completions: mockAPI}

	apiErr := errors.New("quota exceeded")
	mockAPI.On("CreateCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", apiErr)

	text, err := client.Complete(context.Background(), "prompt", 0.1, 512)

	assert.Empty(t, text)
	assert.Contains(t, err.Error(), "failed to create completion")
	mockAPI.AssertExpectations(t)
}

func TestClient_Complete_DefaultsMaxTokens(t *testing.T) {
	mockAPI := new(MockCompletionAPI)
	client := &Client{completions: mockAPI}

	mockAPI.On("CreateCompletion", mock.Anything, "prompt", float32(0.1), DefaultMaxTokens).
		Return("ok", nil)

	_, err := client.Complete(context.Background(), "prompt", 0.1, 0)

	assert.NoError(t, err)
	mockAPI.AssertExpectations(t)
}

func TestNewClientWithConfig_Defaults(t *testing.T) {
	client := NewClientWithConfig(Config{APIKey: "test-api-key"})

	assert.NotNil(t, client)
	assert.Equal(t, DefaultEmbeddingDimensions, client.dimensions)
	assert.Equal(t, string(DefaultEmbeddingModel), client.EmbeddingModel())
}
