package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/deskflow-ai/deskflow/internal/api"
	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/ingest"
	"github.com/deskflow-ai/deskflow/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

type Pipeline interface {
	Process(ctx context.Context, conversation domain.Conversation) pipeline.AggregateResult
}

type ConversationReader interface {
	GetByID(ctx context.Context, conversationID string) (*domain.ConversationRecord, error)
}

type ResultsReader interface {
	GetProcessingResults(ctx context.Context, conversationID string) (*domain.ProcessingResults, error)
}

type ConversationHandler struct {
	pipeline      Pipeline
	conversations ConversationReader
	results       ResultsReader
}

func NewConversationHandler(p Pipeline, conversations ConversationReader, results ResultsReader) *ConversationHandler {
	return &ConversationHandler{pipeline: p, conversations: conversations, results: results}
}

type ProcessRequest struct {
	Messages  []domain.Turn `json:"messages"`
	Category  string        `json:"category"`
	Sentiment string        `json:"sentiment"`
	Priority  string        `json:"priority"`
}

// Process runs the full pipeline on a conversation. The body carries the
// turns; with no body, the id is resolved against the built-in samples so
// the demo conversations can be processed directly.
func (h *ConversationHandler) Process(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "id")
	if conversationID == "" {
		api.HandleError(w, domain.ErrEmptyConversationID)
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conversation := domain.Conversation{
		ConversationID: conversationID,
		Messages:       req.Messages,
		Category:       req.Category,
		Sentiment:      req.Sentiment,
		Priority:       req.Priority,
	}
	if len(conversation.Messages) == 0 {
		sample, ok := ingest.SampleConversation(conversationID)
		if !ok {
			api.Error(w, http.StatusBadRequest, "conversation has no messages")
			return
		}
		conversation = sample
		conversation.ConversationID = conversationID
	}

	result := h.pipeline.Process(r.Context(), conversation)
	api.Success(w, http.StatusOK, result)
}

// Get returns a stored conversation with its latest summary.
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.conversations.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, record)
}

// Results returns the stored artifacts of a conversation's latest run.
func (h *ConversationHandler) Results(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.GetProcessingResults(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, results)
}
