//go:build e2e

package e2e

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

const testAPIKey = "e2e-secret-token"

func seedDocuments() []domain.Document {
	return []domain.Document{
		{
			Title:    "Tomato Early Blight",
			Content:  "Early blight causes dark concentric spots on tomato leaves. The disease spreads in warm humid weather. Remove affected leaves and apply fungicide. Rotate crops to reduce soil inoculum.",
			Category: "disease",
			Crop:     "tomato",
		},
		{
			Title:    "Wheat Irrigation Schedule",
			Content:  "Wheat needs irrigation at crown root initiation, tillering, flowering, and grain filling stages. Avoid waterlogging during germination.",
			Category: "management",
			Crop:     "wheat",
		},
		{
			Title:    "Soil Preparation Basics",
			Content:  "Plough to a fine tilth before sowing. Incorporate well decomposed farmyard manure and maintain soil pH between 6 and 7 for most crops.",
			Category: "general",
		},
	}
}

type askSource struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Excerpt  string `json:"excerpt"`
}

type askResponse struct {
	Response          string      `json:"response"`
	Sources           []askSource `json:"sources"`
	Query             string      `json:"query"`
	Workflow          []string    `json:"agent_workflow"`
	Verified          *bool       `json:"verified,omitempty"`
	VerificationError string      `json:"verification_error,omitempty"`
}

type statusResponse struct {
	Ready      bool   `json:"ready"`
	Model      string `json:"model,omitempty"`
	ChunkCount int64  `json:"chunk_count"`
}

func TestE2E_HealthEndpoint(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	resp, status, err := env.Get("/health", "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, string(resp.Data))
}

func TestE2E_StatusReflectsIndex(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	resp, status, err := env.Get("/v1/status", testAPIKey)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var st statusResponse
	require.NoError(t, json.Unmarshal(resp.Data, &st))
	assert.True(t, st.Ready)
	assert.Equal(t, "stub-bag-of-words", st.Model)
	assert.GreaterOrEqual(t, st.ChunkCount, int64(3))
}

func TestE2E_AskDiseaseQuestion(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	resp, status, err := env.Post("/v1/ask", map[string]string{
		"question": "My tomato leaves have dark spots, is this blight?",
	}, testAPIKey)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var ask askResponse
	require.NoError(t, json.Unmarshal(resp.Data, &ask))

	assert.Contains(t, ask.Response, "Diagnosis")
	assert.Contains(t, ask.Response, "Recommendations")
	assert.Equal(t, []string{"classification", "diagnosis", "recommendation", "verification"}, ask.Workflow)
	require.NotNil(t, ask.Verified)
	assert.True(t, *ask.Verified)

	require.NotEmpty(t, ask.Sources)
	assert.Equal(t, "Tomato Early Blight", ask.Sources[0].Title)
}

func TestE2E_AskGeneralQuestion(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	resp, status, err := env.Post("/v1/ask", map[string]string{
		"question": "How should I prepare my soil before sowing?",
	}, testAPIKey)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var ask askResponse
	require.NoError(t, json.Unmarshal(resp.Data, &ask))

	assert.NotEmpty(t, ask.Response)
	assert.Equal(t, []string{"classification", "recommendation", "verification"}, ask.Workflow)
	require.NotEmpty(t, ask.Sources)
	assert.Equal(t, "Soil Preparation Basics", ask.Sources[0].Title)
}

func TestE2E_AskSameQuestionTwiceSameSources(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	askOnce := func() askResponse {
		resp, status, err := env.Post("/v1/ask", map[string]string{
			"question": "How should I prepare my soil before sowing?",
		}, testAPIKey)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, status)

		var ask askResponse
		require.NoError(t, json.Unmarshal(resp.Data, &ask))
		return ask
	}

	first := askOnce()
	require.NotEmpty(t, first.Sources)

	// an unmodified index must hand back the same source set every time
	for i := 0; i < 3; i++ {
		again := askOnce()
		require.Len(t, again.Sources, len(first.Sources))
		for j := range again.Sources {
			assert.Equal(t, first.Sources[j].Title, again.Sources[j].Title)
			assert.Equal(t, first.Sources[j].Excerpt, again.Sources[j].Excerpt)
		}
	}
}

func TestE2E_AskRequiresAuth(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	resp, status, err := env.Post("/v1/ask", map[string]string{
		"question": "anything",
	}, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, resp.Error)
}

func TestE2E_AskWrongKeyRejected(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	_, status, err := env.Post("/v1/ask", map[string]string{
		"question": "anything",
	}, "wrong-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestE2E_AskEmptyQuestion(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, seedDocuments())
	defer env.Cleanup()

	resp, status, err := env.Post("/v1/ask", map[string]string{
		"question": "   ",
	}, testAPIKey)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, resp.Error, "question cannot be empty")
}

func TestE2E_EmptyIndexNotReady(t *testing.T) {
	env := SetupE2EEnv(t, testAPIKey, nil)
	defer env.Cleanup()

	resp, status, err := env.Get("/v1/status", testAPIKey)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, status)

	var st statusResponse
	require.NoError(t, json.Unmarshal(resp.Data, &st))
	assert.False(t, st.Ready)
	assert.Equal(t, int64(0), st.ChunkCount)
}
