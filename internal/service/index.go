package service

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
)

// EmbeddingClient defines the interface for generating embeddings
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	EmbeddingModel() string
}

// ChunkStore defines the repository interface for the chunk index
type ChunkStore interface {
	ReplaceAll(ctx context.Context, chunks []domain.Chunk) error
	Search(ctx context.Context, embedding []float32, k int) ([]domain.ScoredChunk, error)
}

// IndexService owns the knowledge index lifecycle: built once (or rebuilt on
// demand), then treated as a shared read-only resource. Search before a
// successful build fails with NotInitialized so callers can tell "no index"
// apart from "no matches".
type IndexService struct {
	embedder EmbeddingClient
	store    ChunkStore
	chunkCfg ChunkConfig

	mu    sync.RWMutex
	ready bool
	model string
}

// NewIndexService creates an IndexService with default chunking.
func NewIndexService(embedder EmbeddingClient, store ChunkStore) *IndexService {
	return NewIndexServiceWithChunking(embedder, store, DefaultChunkConfig())
}

// NewIndexServiceWithChunking creates an IndexService with explicit chunking.
func NewIndexServiceWithChunking(embedder EmbeddingClient, store ChunkStore, chunkCfg ChunkConfig) *IndexService {
	return &IndexService{
		embedder: embedder,
		store:    store,
		chunkCfg: chunkCfg,
	}
}

// Build chunks and embeds the given documents and replaces the stored index.
// Invalid documents are dropped; an empty resulting chunk set, an unreachable
// embedding provider, or a store failure yields an IndexBuildError and leaves
// the ready flag untouched.
func (s *IndexService) Build(ctx context.Context, docs []domain.Document) error {
	valid := domain.FilterIndexable(docs)
	if len(valid) == 0 {
		return domain.ErrNoIndexableDocuments
	}

	createdAt := time.Now().UTC()
	entries := make([]domain.Chunk, 0, len(valid)*4)
	for _, doc := range valid {
		docID := uuid.NewString()
		chunks := SplitText(doc.Content, s.chunkCfg)
		for i, chunk := range chunks {
			embedding, err := s.embedder.GenerateEmbedding(ctx, buildChunkEmbeddingText(doc.Title, chunk))
			if err != nil {
				return domain.NewDomainErrorWithCause(domain.ErrCodeIndexBuild, "failed to embed chunk", err)
			}

			entries = append(entries, domain.Chunk{
				ID:         uuid.NewString(),
				DocumentID: docID,
				ChunkIndex: i,
				Content:    chunk,
				Title:      doc.Title,
				Category:   doc.Category,
				Source:     doc.Source,
				Crop:       doc.Crop,
				Language:   doc.Language,
				Embedding:  embedding,
				CreatedAt:  createdAt,
			})
		}
	}

	if len(entries) == 0 {
		return domain.ErrNoIndexableDocuments
	}

	if err := s.store.ReplaceAll(ctx, entries); err != nil {
		return domain.NewDomainErrorWithCause(domain.ErrCodeIndexBuild, "failed to store index entries", err)
	}

	s.mu.Lock()
	s.ready = true
	s.model = s.embedder.EmbeddingModel()
	s.mu.Unlock()

	log.Printf("index: built %d chunks from %d documents", len(entries), len(valid))
	return nil
}

// Resume marks the index as ready without rebuilding it, for processes
// that attach to an index persisted by an earlier run. The caller is
// responsible for checking that stored chunks actually exist.
func (s *IndexService) Resume() {
	s.mu.Lock()
	s.ready = true
	s.model = s.embedder.EmbeddingModel()
	s.mu.Unlock()
}

// Search returns the top-k chunks by similarity to the query vector.
func (s *IndexService) Search(ctx context.Context, embedding []float32, k int) ([]domain.ScoredChunk, error) {
	if !s.Ready() {
		return nil, domain.ErrIndexNotBuilt
	}
	return s.store.Search(ctx, embedding, k)
}

// Ready reports whether a build has completed successfully.
func (s *IndexService) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ready
}

// Model returns the embedding model identifier recorded at build time.
func (s *IndexService) Model() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model
}

func buildChunkEmbeddingText(title, chunk string) string {
	var parts []string
	if title != "" {
		parts = append(parts, title)
	}
	if chunk != "" {
		parts = append(parts, chunk)
	}
	return strings.Join(parts, "\n\n")
}
