package knowledge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestSearch_BuiltinSelection(t *testing.T) {
	base := NewBase()

	tests := []struct {
		name      string
		query     string
		wantTitle string
	}{
		{"billing", "customer reports duplicate charge", "Billing and Refund Process"},
		{"refund", "refund was never received", "Billing and Refund Process"},
		{"technical", "application shows an error on startup", "Common Technical Issues and Solutions"},
		{"account", "customer cannot reset password", "Account Access Troubleshooting"},
		{"general", "shipping question about an order", "Customer Support Guide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles := base.Search(context.Background(), tt.query, 0)
			require.NotEmpty(t, articles)
			assert.Equal(t, tt.wantTitle, articles[0].Title)
		})
	}
}

func TestSearch_BillingWinsOverIssue(t *testing.T) {
	// keyword sets are checked in order, so a billing query that also says
	// "issue" still gets the billing set
	base := NewBase()

	articles := base.Search(context.Background(), "billing issue on my invoice", 0)

	require.NotEmpty(t, articles)
	assert.Equal(t, "Billing and Refund Process", articles[0].Title)
}

func TestSearch_MaxResults(t *testing.T) {
	base := NewBase()

	articles := base.Search(context.Background(), "billing", 2)

	assert.Len(t, articles, 2)
}

func TestSearch_Remote(t *testing.T) {
	remote := []domain.KnowledgeArticle{
		{Title: "Remote Article", Content: "from the live site", URL: "https://kb.example.com/1", Relevance: 0.99},
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "billing refund", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(remote)
	}))
	defer server.Close()

	base := NewBase(WithRemote(server.URL))

	articles := base.Search(context.Background(), "billing refund", 5)

	require.Len(t, articles, 1)
	assert.Equal(t, "Remote Article", articles[0].Title)
}

func TestSearch_RemoteFailureFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	base := NewBase(WithRemote(server.URL))

	articles := base.Search(context.Background(), "password reset", 5)

	require.NotEmpty(t, articles)
	assert.Equal(t, "Account Access Troubleshooting", articles[0].Title)
}

func TestSearch_RemoteEmptyFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.KnowledgeArticle{})
	}))
	defer server.Close()

	base := NewBase(WithRemote(server.URL))

	articles := base.Search(context.Background(), "billing", 5)

	require.NotEmpty(t, articles)
	assert.Equal(t, "Billing and Refund Process", articles[0].Title)
}
