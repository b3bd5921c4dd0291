package handlers

import (
	"context"
	"net/http"

	"github.com/krishnabalajiwork/farmai-assistant/internal/api"
)

// IndexStatus reports knowledge index readiness.
type IndexStatus interface {
	Ready() bool
	Model() string
}

// ChunkCounter reports how many chunks the index holds.
type ChunkCounter interface {
	Count(ctx context.Context) (int64, error)
}

type StatusHandler struct {
	index  IndexStatus
	chunks ChunkCounter
}

func NewStatusHandler(index IndexStatus, chunks ChunkCounter) *StatusHandler {
	return &StatusHandler{index: index, chunks: chunks}
}

type StatusResponse struct {
	Ready      bool   `json:"ready"`
	Model      string `json:"model,omitempty"`
	ChunkCount int64  `json:"chunk_count"`
}

func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{
		Ready: h.index.Ready(),
		Model: h.index.Model(),
	}

	if h.chunks != nil {
		count, err := h.chunks.Count(r.Context())
		if err != nil {
			api.HandleError(w, err)
			return
		}
		resp.ChunkCount = count
	}

	api.Success(w, http.StatusOK, resp)
}
