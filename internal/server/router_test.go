package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/api/handlers"
	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/llm"
	"github.com/deskflow-ai/deskflow/internal/pipeline"
)

type fakePipeline struct {
	received []domain.Conversation
}

func (f *fakePipeline) Process(_ context.Context, conversation domain.Conversation) pipeline.AggregateResult {
	f.received = append(f.received, conversation)
	return pipeline.AggregateResult{
		ConversationID: conversation.ConversationID,
		Summary:        "processed",
	}
}

type fakeConversationReader struct {
	record *domain.ConversationRecord
	err    error
}

func (f *fakeConversationReader) GetByID(_ context.Context, _ string) (*domain.ConversationRecord, error) {
	return f.record, f.err
}

type fakeResultsReader struct {
	results *domain.ProcessingResults
	err     error
}

func (f *fakeResultsReader) GetProcessingResults(_ context.Context, _ string) (*domain.ProcessingResults, error) {
	return f.results, f.err
}

type fakeSimilarSearcher struct {
	items      []domain.SimilarItem
	err        error
	lastVector []float32
	lastType   string
	lastLimit  int
}

func (f *fakeSimilarSearcher) FindSimilar(_ context.Context, vector []float32, sourceType string, limit int) ([]domain.SimilarItem, error) {
	f.lastVector = vector
	f.lastType = sourceType
	f.lastLimit = limit
	return f.items, f.err
}

type fakeEmbedder struct {
	vector   []float32
	calls    int
	lastOpts llm.EmbedOptions
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string, opts llm.EmbedOptions) llm.EmbedResult {
	f.calls++
	f.lastOpts = opts
	return llm.EmbedResult{Vector: f.vector}
}

type fakeHistoricalReader struct {
	tickets       []domain.HistoricalTicket
	err           error
	lastIssueType string
	listCalls     int
}

func (f *fakeHistoricalReader) List(_ context.Context, _ int) ([]domain.HistoricalTicket, error) {
	f.listCalls++
	return f.tickets, f.err
}

func (f *fakeHistoricalReader) GetSimilarByIssueType(_ context.Context, issueType string, _ int) ([]domain.HistoricalTicket, error) {
	f.lastIssueType = issueType
	return f.tickets, f.err
}

type routerFixture struct {
	handler    http.Handler
	pipeline   *fakePipeline
	convs      *fakeConversationReader
	results    *fakeResultsReader
	similar    *fakeSimilarSearcher
	embedder   *fakeEmbedder
	historical *fakeHistoricalReader
}

func newRouterFixture() *routerFixture {
	f := &routerFixture{
		pipeline:   &fakePipeline{},
		convs:      &fakeConversationReader{},
		results:    &fakeResultsReader{},
		similar:    &fakeSimilarSearcher{},
		embedder:   &fakeEmbedder{vector: []float32{0.1, 0.2}},
		historical: &fakeHistoricalReader{},
	}
	f.handler = NewRouter(RouterConfig{
		ConversationHandler: handlers.NewConversationHandler(f.pipeline, f.convs, f.results),
		SimilarHandler:      handlers.NewSimilarHandler(f.similar, f.embedder),
		HistoricalHandler:   handlers.NewHistoricalHandler(f.historical),
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, rec.Body.String())
}

func TestProcessConversation_WithBody(t *testing.T) {
	f := newRouterFixture()

	body := `{"messages":[{"sender":"Customer","content":"my invoice is wrong","timestamp":"t1"}],"category":"billing"}`
	rec := f.do(t, http.MethodPost, "/conversations/conv-42/process", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.pipeline.received, 1)
	received := f.pipeline.received[0]
	assert.Equal(t, "conv-42", received.ConversationID)
	assert.Equal(t, "billing", received.Category)
	require.Len(t, received.Messages, 1)
	assert.Equal(t, "my invoice is wrong", received.Messages[0].Content)

	var envelope struct {
		Data pipeline.AggregateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "conv-42", envelope.Data.ConversationID)
	assert.Equal(t, "processed", envelope.Data.Summary)
}

func TestProcessConversation_SampleFallback(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/conversations/billing_issue/process", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, f.pipeline.received, 1)
	received := f.pipeline.received[0]
	assert.Equal(t, "billing_issue", received.ConversationID)
	assert.NotEmpty(t, received.Messages)
}

func TestProcessConversation_UnknownSample(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/conversations/nope/process", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"conversation has no messages"}`, rec.Body.String())
	assert.Empty(t, f.pipeline.received)
}

func TestProcessConversation_InvalidBody(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/conversations/conv-42/process", "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, f.pipeline.received)
}

func TestGetConversation(t *testing.T) {
	f := newRouterFixture()
	f.convs.record = &domain.ConversationRecord{
		Conversation: domain.Conversation{ConversationID: "conv123"},
		Summary:      "stored summary",
	}

	rec := f.do(t, http.MethodGet, "/conversations/conv123", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stored summary")
}

func TestGetConversation_NotFound(t *testing.T) {
	f := newRouterFixture()
	f.convs.err = domain.ErrConversationNotFound

	rec := f.do(t, http.MethodGet, "/conversations/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetResults(t *testing.T) {
	f := newRouterFixture()
	f.results.results = &domain.ProcessingResults{
		ConversationID: "conv123",
		Summary:        "resolved",
		Routing:        &domain.RoutingDecision{RecommendedTeam: "Billing Support"},
	}

	rec := f.do(t, http.MethodGet, "/conversations/conv123/results", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Billing Support")
}

func TestGetResults_NotFound(t *testing.T) {
	f := newRouterFixture()
	f.results.err = domain.ErrConversationNotFound

	rec := f.do(t, http.MethodGet, "/conversations/missing/results", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimilar_WithVector(t *testing.T) {
	f := newRouterFixture()
	f.similar.items = []domain.SimilarItem{{SourceID: "conv456", Similarity: 0.9}}

	rec := f.do(t, http.MethodPost, "/similar", `{"vector":[1,0,0],"limit":5}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []float32{1, 0, 0}, f.similar.lastVector)
	assert.Equal(t, pipeline.SourceTypeConversation, f.similar.lastType)
	assert.Equal(t, 5, f.similar.lastLimit)
	assert.Zero(t, f.embedder.calls)
	assert.Contains(t, rec.Body.String(), "conv456")
}

func TestSimilar_WithText(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/similar", `{"text":"billing dispute"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.embedder.calls)
	// the embedding model is the provider's choice, not the chat model
	assert.Empty(t, f.embedder.lastOpts.Model)
	assert.Equal(t, []float32{0.1, 0.2}, f.similar.lastVector)
	assert.Equal(t, 3, f.similar.lastLimit)
}

func TestSimilar_MissingInput(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodPost, "/similar", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "either text or vector is required")
}

func TestHistorical_List(t *testing.T) {
	f := newRouterFixture()
	f.historical.tickets = []domain.HistoricalTicket{{TicketID: "TICK-1000"}}

	rec := f.do(t, http.MethodGet, "/historical?limit=10", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.historical.listCalls)
	assert.Contains(t, rec.Body.String(), "TICK-1000")
}

func TestHistorical_ByIssueType(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/historical?issue_type=Billing+Issue", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Billing Issue", f.historical.lastIssueType)
	assert.Zero(t, f.historical.listCalls)
}

func TestHistorical_InvalidLimit(t *testing.T) {
	f := newRouterFixture()

	rec := f.do(t, http.MethodGet, "/historical?limit=abc", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
