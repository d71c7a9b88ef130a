package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/deskflow-ai/deskflow/internal/api"
	"github.com/deskflow-ai/deskflow/internal/domain"
)

type HistoricalReader interface {
	List(ctx context.Context, limit int) ([]domain.HistoricalTicket, error)
	GetSimilarByIssueType(ctx context.Context, issueType string, limit int) ([]domain.HistoricalTicket, error)
}

type HistoricalHandler struct {
	historical HistoricalReader
}

func NewHistoricalHandler(historical HistoricalReader) *HistoricalHandler {
	return &HistoricalHandler{historical: historical}
}

// List returns historical tickets, optionally filtered by issue_type.
func (h *HistoricalHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			api.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	var (
		tickets []domain.HistoricalTicket
		err     error
	)
	if issueType := r.URL.Query().Get("issue_type"); issueType != "" {
		tickets, err = h.historical.GetSimilarByIssueType(r.Context(), issueType, limit)
	} else {
		tickets, err = h.historical.List(r.Context(), limit)
	}
	if err != nil {
		api.HandleError(w, err)
		return
	}
	api.Success(w, http.StatusOK, tickets)
}
