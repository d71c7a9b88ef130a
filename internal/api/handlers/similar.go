package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/deskflow-ai/deskflow/internal/api"
	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/llm"
	"github.com/deskflow-ai/deskflow/internal/pipeline"
)

type SimilarSearcher interface {
	FindSimilar(ctx context.Context, vector []float32, sourceType string, limit int) ([]domain.SimilarItem, error)
}

type Embedder interface {
	Embed(ctx context.Context, text string, opts llm.EmbedOptions) llm.EmbedResult
}

type SimilarHandler struct {
	embeddings SimilarSearcher
	embedder   Embedder
}

func NewSimilarHandler(embeddings SimilarSearcher, embedder Embedder) *SimilarHandler {
	return &SimilarHandler{embeddings: embeddings, embedder: embedder}
}

type SimilarRequest struct {
	Text       string    `json:"text"`
	Vector     []float32 `json:"vector"`
	SourceType string    `json:"source_type"`
	Limit      int       `json:"limit"`
}

// Search ranks stored embeddings against a query given either as a raw
// vector or as text to embed first. Defaults: conversation embeddings, top 3.
func (h *SimilarHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SimilarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Vector) == 0 {
		if req.Text == "" {
			api.Error(w, http.StatusBadRequest, "either text or vector is required")
			return
		}
		// The provider picks its own embedding model.
		embedded := h.embedder.Embed(r.Context(), req.Text, llm.EmbedOptions{})
		req.Vector = embedded.Vector
	}

	if req.SourceType == "" {
		req.SourceType = pipeline.SourceTypeConversation
	}
	if req.Limit <= 0 {
		req.Limit = 3
	}

	items, err := h.embeddings.FindSimilar(r.Context(), req.Vector, req.SourceType, req.Limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, items)
}
