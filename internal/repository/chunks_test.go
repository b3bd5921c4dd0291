//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/pagination"
	"github.com/krishnabalajiwork/farmai-assistant/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// axisEmbedding returns a 1536-dim unit vector pointing along one axis.
// Distinct axes are orthogonal, which keeps similarity ordering predictable.
func axisEmbedding(axis int) []float32 {
	v := make([]float32, 1536)
	v[axis] = 1
	return v
}

func testChunk(docID string, index, axis int, content string) domain.Chunk {
	return domain.Chunk{
		ID:         uuid.NewString(),
		DocumentID: docID,
		ChunkIndex: index,
		Content:    content,
		Title:      "Tomato Disease Management Guide",
		Category:   "disease_management",
		Source:     "Agricultural Extension Services",
		Crop:       "tomato",
		Language:   "en",
		Embedding:  axisEmbedding(axis),
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestChunkRepository_ReplaceAllAndSearch(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)
	docID := uuid.NewString()

	chunks := []domain.Chunk{
		testChunk(docID, 0, 0, "Early blight causes dark spots with concentric rings."),
		testChunk(docID, 1, 1, "Rotate crops to break pest cycles."),
		testChunk(docID, 2, 2, "Mulch conserves soil moisture."),
	}
	require.NoError(t, repo.ReplaceAll(ctx, chunks))

	// query along axis 1: the crop rotation chunk must rank first
	results, err := repo.Search(ctx, axisEmbedding(1), 3)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Rotate crops to break pest cycles.", results[0].Chunk.Content)
	assert.InDelta(t, 1.0, float64(results[0].Score), 0.01)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Equal(t, docID, results[0].Chunk.DocumentID)
	assert.Equal(t, "tomato", results[0].Chunk.Crop)
}

func TestChunkRepository_Search_RespectsLimit(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)
	docID := uuid.NewString()

	var chunks []domain.Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, testChunk(docID, i, i, "chunk content"))
	}
	require.NoError(t, repo.ReplaceAll(ctx, chunks))

	results, err := repo.Search(ctx, axisEmbedding(0), 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestChunkRepository_Search_StableAcrossTiedScores(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)
	docID := uuid.NewString()

	// five chunks with identical embeddings score equally against any
	// query, so LIMIT 2 cuts through a five-way tie
	var chunks []domain.Chunk
	for i := 0; i < 5; i++ {
		chunks = append(chunks, testChunk(docID, i, 0, "chunk content"))
	}
	require.NoError(t, repo.ReplaceAll(ctx, chunks))

	first, err := repo.Search(ctx, axisEmbedding(0), 2)
	require.NoError(t, err)
	require.Len(t, first, 2)

	for i := 0; i < 5; i++ {
		again, err := repo.Search(ctx, axisEmbedding(0), 2)
		require.NoError(t, err)
		require.Len(t, again, 2)
		for j := range again {
			assert.Equal(t, first[j].Chunk.ID, again[j].Chunk.ID)
		}
	}
}

func TestChunkRepository_Search_EmptyIndex(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	results, err := repo.Search(ctx, axisEmbedding(0), 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestChunkRepository_ReplaceAll_SwapsExistingIndex(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	first := []domain.Chunk{testChunk(uuid.NewString(), 0, 0, "old content")}
	require.NoError(t, repo.ReplaceAll(ctx, first))

	second := []domain.Chunk{
		testChunk(uuid.NewString(), 0, 0, "new content"),
		testChunk(uuid.NewString(), 0, 1, "more new content"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, second))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	results, err := repo.Search(ctx, axisEmbedding(0), 10)
	require.NoError(t, err)
	for _, r := range results {
		assert.NotEqual(t, "old content", r.Chunk.Content)
	}
}

func TestChunkRepository_ReplaceAll_EmptySetClearsIndex(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)

	require.NoError(t, repo.ReplaceAll(ctx, []domain.Chunk{testChunk(uuid.NewString(), 0, 0, "content")}))
	require.NoError(t, repo.ReplaceAll(ctx, nil))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestChunkRepository_ListByDocument(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)
	docA := uuid.NewString()
	docB := uuid.NewString()

	chunks := []domain.Chunk{
		testChunk(docA, 1, 1, "second"),
		testChunk(docA, 0, 0, "first"),
		testChunk(docB, 0, 2, "other document"),
	}
	require.NoError(t, repo.ReplaceAll(ctx, chunks))

	list, err := repo.ListByDocument(ctx, docA)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Content)
	assert.Equal(t, "second", list[1].Content)
}

func TestChunkRepository_ListPage(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewChunkRepository(pool)
	docID := uuid.NewString()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	chunks := make([]domain.Chunk, 5)
	for i := range chunks {
		c := testChunk(docID, i, i, "chunk content")
		c.CreatedAt = base.Add(time.Duration(i) * time.Second)
		chunks[i] = c
	}
	require.NoError(t, repo.ReplaceAll(ctx, chunks))

	// first page: newest chunks first
	page, err := repo.ListPage(ctx, nil, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.True(t, page.HasMore)
	require.NotEmpty(t, page.Cursor)
	assert.Equal(t, 4, page.Items[0].ChunkIndex)
	assert.Equal(t, 3, page.Items[1].ChunkIndex)

	// walk the remaining pages, collecting ids
	seen := map[string]struct{}{}
	for _, c := range page.Items {
		seen[c.ID] = struct{}{}
	}
	cursor := page.Cursor
	for cursor != "" {
		decoded, err := pagination.DecodeCursor(cursor)
		require.NoError(t, err)

		page, err = repo.ListPage(ctx, decoded, 2)
		require.NoError(t, err)
		for _, c := range page.Items {
			_, dup := seen[c.ID]
			assert.False(t, dup, "chunk %s returned twice", c.ID)
			seen[c.ID] = struct{}{}
		}
		cursor = page.Cursor
	}
	assert.Len(t, seen, 5)
}
