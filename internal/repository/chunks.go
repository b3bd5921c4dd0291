package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/pagination"
	"github.com/pgvector/pgvector-go"
)

// ChunkRepository persists chunked knowledge embeddings and serves
// vector similarity search over them.
type ChunkRepository struct {
	pool *pgxpool.Pool
}

func NewChunkRepository(pool *pgxpool.Pool) *ChunkRepository {
	return &ChunkRepository{pool: pool}
}

// ReplaceAll atomically swaps the stored index for a new chunk set. The
// delete and inserts run in one transaction so readers never observe a
// partially rebuilt index.
func (r *ChunkRepository) ReplaceAll(ctx context.Context, chunks []domain.Chunk) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM knowledge_chunks`); err != nil {
		return err
	}

	for _, c := range chunks {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO knowledge_chunks
				(id, document_id, chunk_index, content, title, category, source, crop, language, embedding, created_at)
			 VALUES
				($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			c.ID,
			c.DocumentID,
			c.ChunkIndex,
			c.Content,
			c.Title,
			c.Category,
			c.Source,
			c.Crop,
			c.Language,
			pgvector.NewVector(c.Embedding),
			createdAt,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Search returns the k stored chunks nearest to the query embedding,
// highest score first. Score maps cosine distance into (0, 1]. Ties
// break on id so the same query always returns the same rows.
func (r *ChunkRepository) Search(ctx context.Context, embedding []float32, k int) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		k = 5
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.pool.Query(ctx,
		`SELECT id, document_id, chunk_index, content, title, category, source, crop, language, created_at,
		        1.0 / (1.0 + (embedding <=> $1)) AS score
		 FROM knowledge_chunks
		 WHERE embedding IS NOT NULL
		 ORDER BY score DESC, id
		 LIMIT $2`,
		vec, k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanScoredChunkRows(rows)
}

// Count reports the number of stored chunks.
func (r *ChunkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM knowledge_chunks`).Scan(&count)
	return count, err
}

// ListPage returns a page of stored chunks, newest first, for index
// inspection. The cursor encodes the last seen (created_at, id) pair.
func (r *ChunkRepository) ListPage(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[domain.Chunk], error) {
	if limit <= 0 {
		limit = 20
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT id, document_id, chunk_index, content, title, category, source, crop, language, created_at
			 FROM knowledge_chunks
			 WHERE (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT id, document_id, chunk_index, content, title, category, source, crop, language, created_at
			 FROM knowledge_chunks
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1`,
			limit+1,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items, err := scanChunkRows(rows)
	if err != nil {
		return nil, err
	}

	hasMore := len(items) > limit
	if hasMore {
		items = items[:limit]
	}

	var nextCursor string
	if hasMore && len(items) > 0 {
		last := items[len(items)-1]
		nextCursor = pagination.EncodeCursor(last.ID, last.CreatedAt)
	}

	return &pagination.PageResult[domain.Chunk]{
		Items:   items,
		Cursor:  nextCursor,
		HasMore: hasMore,
	}, nil
}

// ListByDocument returns a document's chunks in chunk order.
func (r *ChunkRepository) ListByDocument(ctx context.Context, documentID string) ([]domain.Chunk, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, document_id, chunk_index, content, title, category, source, crop, language, created_at
		 FROM knowledge_chunks
		 WHERE document_id = $1
		 ORDER BY chunk_index ASC`,
		documentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanChunkRows(rows)
}

func scanChunkRows(rows pgx.Rows) ([]domain.Chunk, error) {
	chunks := make([]domain.Chunk, 0)
	for rows.Next() {
		var c domain.Chunk
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.ChunkIndex, &c.Content, &c.Title, &c.Category, &c.Source, &c.Crop, &c.Language, &c.CreatedAt); err != nil {
			return nil, err
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

func scanScoredChunkRows(rows pgx.Rows) ([]domain.ScoredChunk, error) {
	results := make([]domain.ScoredChunk, 0)
	for rows.Next() {
		var sc domain.ScoredChunk
		var score float64
		if err := rows.Scan(
			&sc.Chunk.ID,
			&sc.Chunk.DocumentID,
			&sc.Chunk.ChunkIndex,
			&sc.Chunk.Content,
			&sc.Chunk.Title,
			&sc.Chunk.Category,
			&sc.Chunk.Source,
			&sc.Chunk.Crop,
			&sc.Chunk.Language,
			&sc.Chunk.CreatedAt,
			&score,
		); err != nil {
			return nil, err
		}
		sc.Score = float32(score)
		results = append(results, sc)
	}
	return results, rows.Err()
}
