package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/krishnabalajiwork/farmai-assistant/internal/api"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/pagination"
)

// ChunkLister pages through stored index chunks.
type ChunkLister interface {
	ListPage(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[domain.Chunk], error)
}

type ChunksHandler struct {
	chunks ChunkLister
}

func NewChunksHandler(chunks ChunkLister) *ChunksHandler {
	return &ChunksHandler{chunks: chunks}
}

// ChunkSummary is a chunk without its embedding vector.
type ChunkSummary struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkIndex int       `json:"chunk_index"`
	Content    string    `json:"content"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	Crop       string    `json:"crop"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChunksResponse struct {
	Items   []ChunkSummary `json:"items"`
	Cursor  string         `json:"cursor,omitempty"`
	HasMore bool           `json:"has_more"`
}

// List handles GET /v1/chunks with optional cursor and limit query params.
func (h *ChunksHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > 100 {
			api.Error(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = parsed
	}

	cursor, err := pagination.DecodeCursor(r.URL.Query().Get("cursor"))
	if err != nil {
		api.Error(w, http.StatusBadRequest, "invalid cursor")
		return
	}

	page, err := h.chunks.ListPage(r.Context(), cursor, limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	items := make([]ChunkSummary, len(page.Items))
	for i, c := range page.Items {
		items[i] = ChunkSummary{
			ID:         c.ID,
			DocumentID: c.DocumentID,
			ChunkIndex: c.ChunkIndex,
			Content:    c.Content,
			Title:      c.Title,
			Category:   c.Category,
			Crop:       c.Crop,
			CreatedAt:  c.CreatedAt,
		}
	}

	api.Success(w, http.StatusOK, ChunksResponse{
		Items:   items,
		Cursor:  page.Cursor,
		HasMore: page.HasMore,
	})
}
