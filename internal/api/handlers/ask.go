package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/krishnabalajiwork/farmai-assistant/internal/api"
	"github.com/krishnabalajiwork/farmai-assistant/internal/domain"
	"github.com/krishnabalajiwork/farmai-assistant/internal/telemetry"
)

// AskService answers agricultural questions through the agent pipeline.
type AskService interface {
	Process(ctx context.Context, query string) *domain.AgentResponse
}

type AskHandler struct {
	svc AskService
}

func NewAskHandler(svc AskService) *AskHandler {
	return &AskHandler{svc: svc}
}

type AskRequest struct {
	Question string `json:"question"`
}

type AskResponse struct {
	Response          string          `json:"response"`
	Sources           []domain.Source `json:"sources"`
	Query             string          `json:"query"`
	Workflow          []string        `json:"agent_workflow"`
	Verified          *bool           `json:"verified,omitempty"`
	VerificationError string          `json:"verification_error,omitempty"`
}

func (h *AskHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		api.HandleError(w, domain.ErrEmptyQuestion)
		return
	}

	ctx, span := telemetry.StartSpan(r.Context(), "agent.process", telemetry.SpanAttributes{
		Operation: "ask",
	})
	result := h.svc.Process(ctx, question)
	span.End()

	api.Success(w, http.StatusOK, AskResponse{
		Response:          result.Response,
		Sources:           result.Sources,
		Query:             result.Query,
		Workflow:          result.Workflow,
		Verified:          result.Verified,
		VerificationError: result.VerificationError,
	})
}
