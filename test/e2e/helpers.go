//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"math"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/krishnabalajiwork/farmai-assistant/internal/api/handlers"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/repository"
	"github.com/krishnabalajiwork/farmai-assistant/internal/server"
	"github.com/krishnabalajiwork/farmai-assistant/internal/service"
	"github.com/krishnabalajiwork/farmai-assistant/internal/testutil"
)

const embeddingDims = 1536

// E2ETestEnv holds all resources needed for E2E tests
type E2ETestEnv struct {
	T            *testing.T
	Ctx          context.Context
	PostgresC    *testutil.PostgresContainer
	Pool         *pgxpool.Pool
	ServerURL    string
	ServerCloser func()
	APIKey       string
	HTTPClient   *http.Client
}

// SetupE2EEnv creates a full E2E test environment with a database container
// and an in-process server. The embedding and completion providers are
// deterministic stand-ins instead of live OpenAI calls.
func SetupE2EEnv(t *testing.T, apiKey string, docs []domain.Document) *E2ETestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	port, err := getFreePort()
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}

	serverURL, serverCloser := startServer(t, pool, apiKey, docs, port)

	return &E2ETestEnv{
		T:            t,
		Ctx:          ctx,
		PostgresC:    pgC,
		Pool:         pool,
		ServerURL:    serverURL,
		ServerCloser: serverCloser,
		APIKey:       apiKey,
		HTTPClient:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *E2ETestEnv) Cleanup() {
	if e.ServerCloser != nil {
		e.ServerCloser()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// APIResponse represents a standard API response
type APIResponse struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error,omitempty"`
}

// Get performs a GET request
func (e *E2ETestEnv) Get(path, authToken string) (*APIResponse, int, error) {
	return e.doRequest("GET", path, nil, authToken)
}

// Post performs a POST request
func (e *E2ETestEnv) Post(path string, body interface{}, authToken string) (*APIResponse, int, error) {
	return e.doRequest("POST", path, body, authToken)
}

func (e *E2ETestEnv) doRequest(method, path string, body interface{}, authToken string) (*APIResponse, int, error) {
	url := e.ServerURL + path

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		return nil, 0, err
	}

	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	var apiResp APIResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return &apiResp, resp.StatusCode, nil
}

// startServer builds the knowledge index from the given documents and starts
// the full HTTP stack on the given port.
func startServer(t *testing.T, pool *pgxpool.Pool, apiKey string, docs []domain.Document, port int) (string, func()) {
	ctx := context.Background()

	chunkRepo := repository.NewChunkRepository(pool)
	embedder := &stubEmbedder{}
	llm := &stubLLM{}

	indexSvc := service.NewIndexService(embedder, chunkRepo)
	if len(docs) > 0 {
		if err := indexSvc.Build(ctx, docs); err != nil {
			t.Fatalf("failed to build index: %v", err)
		}
	}

	retriever := service.NewRetriever(embedder, indexSvc, service.DefaultRetrieverConfig())
	composer := service.NewComposer(retriever, llm, service.DefaultComposerConfig())
	orchestrator := service.NewOrchestrator(composer, llm)

	router := server.NewRouter(server.RouterConfig{
		APIKey:        apiKey,
		AskHandler:    handlers.NewAskHandler(orchestrator),
		StatusHandler: handlers.NewStatusHandler(indexSvc, chunkRepo),
	})

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			t.Logf("server error: %v", err)
		}
	}()

	serverURL := fmt.Sprintf("http://localhost:%d", port)
	waitForServer(t, serverURL, 10*time.Second)

	return serverURL, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("server did not start within %v", timeout)
}

func getFreePort() (int, error) {
	addr, err := net.ResolveTCPAddr("tcp", "localhost:0")
	if err != nil {
		return 0, err
	}

	l, err := net.ListenTCP("tcp", addr)
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// stubEmbedder produces deterministic bag-of-words embeddings. Texts that
// share vocabulary get vectors with positive cosine similarity, which is
// enough for realistic retrieval without a live provider.
type stubEmbedder struct{}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	vec := make([]float32, embeddingDims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,;:!?\"'()")
		if word == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(word))
		vec[h.Sum32()%embeddingDims]++
	}

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		vec[0] = 1
		return vec, nil
	}
	scale := float32(1 / math.Sqrt(norm))
	for i := range vec {
		vec[i] *= scale
	}
	return vec, nil
}

func (s *stubEmbedder) EmbeddingModel() string {
	return "stub-bag-of-words"
}

// stubLLM answers each pipeline prompt with a canned, recognizable response.
type stubLLM struct{}

func (s *stubLLM) Complete(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	switch {
	case strings.HasPrefix(prompt, "Classify"):
		if strings.Contains(strings.ToLower(prompt), "blight") || strings.Contains(strings.ToLower(prompt), "spots") {
			return "disease", nil
		}
		return "general", nil
	case strings.HasPrefix(prompt, "You are an agricultural diagnostician"):
		return "Likely early blight, based on the described dark leaf spots. Confidence: medium.", nil
	case strings.HasPrefix(prompt, "You are an agricultural advisor"):
		return "Remove affected leaves, apply an approved fungicide, and rotate crops next season.", nil
	case strings.HasPrefix(prompt, "Review the following"):
		// return the advice unchanged
		if idx := strings.Index(prompt, "Advice:\n"); idx >= 0 {
			return prompt[idx+len("Advice:\n"):], nil
		}
		return "", nil
	default:
		return "Based on the available knowledge, follow standard agronomic practice for your crop.", nil
	}
}
