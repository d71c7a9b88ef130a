package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama2", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(generateResponse{Response: "The customer had a billing question."})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RetryDelay: time.Millisecond})

	result := client.Generate(context.Background(), "Please summarize the following", GenerateOptions{})

	assert.Equal(t, "The customer had a billing question.", result.Text)
	assert.False(t, result.Degraded)
	assert.Empty(t, result.Reason)
}

func TestGenerate_RetriesThenFallsBack(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 2, RetryDelay: time.Millisecond})

	result := client.Generate(context.Background(), "Please summarize the following conversation", GenerateOptions{})

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.True(t, result.Degraded)
	assert.Contains(t, result.Reason, "generation backend unavailable")
	assert.Equal(t, cannedSummary, result.Text)
}

func TestGenerate_RecoversOnRetry(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "recovered"})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 3, RetryDelay: time.Millisecond})

	result := client.Generate(context.Background(), "anything", GenerateOptions{})

	assert.Equal(t, "recovered", result.Text)
	assert.False(t, result.Degraded)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGenerate_SimulateMode(t *testing.T) {
	client := NewClient(Config{Simulate: true})

	result := client.Generate(context.Background(), "Please summarize the following conversation", GenerateOptions{})

	assert.True(t, result.Degraded)
	assert.Equal(t, "simulate mode", result.Reason)
	assert.Equal(t, cannedSummary, result.Text)
}

func TestEmbed_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		json.NewEncoder(w).Encode(embeddingResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, RetryDelay: time.Millisecond})

	result := client.Embed(context.Background(), "some text", EmbedOptions{})

	assert.Equal(t, []float32{0.1, 0.2, 0.3}, result.Vector)
	assert.False(t, result.Degraded)
}

func TestEmbed_EmptyVectorFallsBack(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(embeddingResponse{})
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, MaxRetries: 1, RetryDelay: time.Millisecond})

	result := client.Embed(context.Background(), "some text", EmbedOptions{})

	assert.True(t, result.Degraded)
	assert.Len(t, result.Vector, CannedEmbeddingDimensions)
}

func TestEmbed_SimulateMode(t *testing.T) {
	client := NewClient(Config{Simulate: true})

	result := client.Embed(context.Background(), "some text", EmbedOptions{})

	assert.True(t, result.Degraded)
	assert.Len(t, result.Vector, CannedEmbeddingDimensions)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})

	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, DefaultModel, client.Model())
	assert.Equal(t, DefaultMaxRetries, client.maxRetries)
	assert.Equal(t, DefaultRetryDelay, client.retryDelay)
}

func TestCannedResponse_Selection(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   string
	}{
		{"summary", "Please summarize the following conversation", cannedSummary},
		{"actions", "extract all action items that need to be taken", cannedActions},
		{"routing", "determine which team this ticket should be routed to", cannedRouting},
		{"recommendation", "provide detailed resolution steps", cannedRecommendation},
		{"prediction", "predict how long it will take", cannedPrediction},
		{"unknown", "what is the weather like", cannedUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CannedResponse(tt.prompt))
		})
	}
}

func TestCannedResponse_TimeInQuotedTextDoesNotHijack(t *testing.T) {
	// Conversation text mentioning "times" must not reroute an extraction
	// prompt to the prediction template.
	prompt := "extract all action items\n\nCustomer: I tried three times and it failed"
	assert.Equal(t, cannedActions, CannedResponse(prompt))
}

func TestCannedEmbedding(t *testing.T) {
	vec := CannedEmbedding()

	require.Len(t, vec, CannedEmbeddingDimensions)
	for _, v := range vec {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}
