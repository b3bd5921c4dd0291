package domain

import "time"

// Chunk represents a length-bounded slice of a document's content, the unit
// stored in the knowledge index. Chunks are immutable once produced.
type Chunk struct {
	ID         string
	DocumentID string
	ChunkIndex int
	Content    string
	Title      string
	Category   string
	Source     string
	Crop       string
	Language   string
	Embedding  []float32
	CreatedAt  time.Time
}

// ScoredChunk pairs a chunk with its similarity score for a query.
type ScoredChunk struct {
	Chunk Chunk
	Score float32
}

// RetrievalResult is an ordered sequence of scored chunks, highest score first.
type RetrievalResult struct {
	Entries []ScoredChunk
}

// Empty reports whether retrieval produced no entries.
func (r RetrievalResult) Empty() bool {
	return len(r.Entries) == 0
}
