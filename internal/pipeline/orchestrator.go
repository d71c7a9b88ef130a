// Package pipeline runs a conversation through the full processing sequence:
// store, sentiment, summarize, extract actions, knowledge lookup, route,
// embed and find similar, recommend resolution, predict resolution time.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/deskflow-ai/deskflow/internal/agent"
	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/knowledge"
	"github.com/deskflow-ai/deskflow/internal/llm"
	"github.com/deskflow-ai/deskflow/internal/sentiment"
	"github.com/deskflow-ai/deskflow/internal/telemetry"
)

const (
	// SourceTypeConversation tags conversation embeddings in the store.
	SourceTypeConversation = "conversation"

	similarLimit     = 3
	knowledgeMaxHits = 5
	queryTermCount   = 5
)

// Stores the pipeline writes to. Satisfied by the repository types.
type (
	ConversationStore interface {
		Save(ctx context.Context, conversation domain.Conversation) error
		UpdateSummary(ctx context.Context, conversationID, summary string) error
	}

	ActionStore interface {
		Replace(ctx context.Context, conversationID string, actions domain.ActionSet) error
	}

	RoutingStore interface {
		Replace(ctx context.Context, conversationID string, decision domain.RoutingDecision) error
	}

	RecommendationStore interface {
		Replace(ctx context.Context, conversationID string, rec domain.ResolutionRecommendation) error
	}

	PredictionStore interface {
		Replace(ctx context.Context, conversationID string, prediction domain.TimePrediction) error
	}

	EmbeddingStore interface {
		Store(ctx context.Context, sourceType, sourceID, text string, vector []float32, model string) (int64, error)
		FindSimilar(ctx context.Context, vector []float32, sourceType string, limit int) ([]domain.SimilarItem, error)
	}
)

// Stores bundles every store the orchestrator needs.
type Stores struct {
	Conversations   ConversationStore
	Actions         ActionStore
	Routing         RoutingStore
	Recommendations RecommendationStore
	Predictions     PredictionStore
	Embeddings      EmbeddingStore
}

// ProcessingTime records per-step wall-clock durations in seconds.
type ProcessingTime struct {
	Start time.Time          `json:"start"`
	Steps map[string]float64 `json:"steps"`
	Total float64            `json:"total"`
}

// AggregateResult is the complete outcome of one pipeline run. A run that
// fails partway still returns the artifacts gathered so far, with Error set.
type AggregateResult struct {
	ConversationID       string                           `json:"conversation_id"`
	SentimentAnalysis    *sentiment.ConversationResult    `json:"sentiment_analysis,omitempty"`
	Summary              string                           `json:"summary,omitempty"`
	Actions              *domain.ActionSet                `json:"actions,omitempty"`
	KnowledgeArticles    []domain.KnowledgeArticle        `json:"knowledge_articles,omitempty"`
	Routing              *domain.RoutingDecision          `json:"routing,omitempty"`
	SimilarConversations []domain.SimilarItem             `json:"similar_conversations,omitempty"`
	Recommendations      *domain.ResolutionRecommendation `json:"recommendations,omitempty"`
	TimePrediction       *domain.TimePrediction           `json:"time_prediction,omitempty"`
	ProcessingTime       ProcessingTime                   `json:"processing_time"`
	Error                string                           `json:"error,omitempty"`
}

// Orchestrator owns the stage agents and stores and runs them in sequence.
// Processing is fully synchronous: one conversation at a time, each stage
// blocking on its network call.
type Orchestrator struct {
	stores Stores

	analyzer    *sentiment.Analyzer
	kb          *knowledge.Base
	summarizer  *agent.Summarizer
	extractor   *agent.Extractor
	router      *agent.Router
	recommender *agent.Recommender
	predictor   *agent.Predictor

	gen   llm.Generator
	model string
}

// NewOrchestrator wires the pipeline. All stage agents share the one
// generator so provider selection and fallback behavior stay uniform.
func NewOrchestrator(stores Stores, gen llm.Generator, kb *knowledge.Base, model string) *Orchestrator {
	return &Orchestrator{
		stores:      stores,
		analyzer:    sentiment.NewAnalyzer(),
		kb:          kb,
		summarizer:  agent.NewSummarizer(gen),
		extractor:   agent.NewExtractor(gen),
		router:      agent.NewRouter(gen),
		recommender: agent.NewRecommender(gen),
		predictor:   agent.NewPredictor(gen),
		gen:         gen,
		model:       model,
	}
}

// Process runs the conversation through every stage. It never returns an
// error: a failure that cannot be degraded stage-locally is recorded in the
// result's Error field and the partial result is returned.
func (o *Orchestrator) Process(ctx context.Context, conversation domain.Conversation) AggregateResult {
	if conversation.ConversationID == "" {
		conversation.ConversationID = fmt.Sprintf("conv-%d", time.Now().UnixNano())
	}

	result := AggregateResult{
		ConversationID: conversation.ConversationID,
		ProcessingTime: ProcessingTime{
			Start: time.Now(),
			Steps: map[string]float64{},
		},
	}

	ctx, span := telemetry.StartSpan(ctx, "pipeline.process", telemetry.SpanAttributes{
		ConversationID: conversation.ConversationID,
	})
	defer span.End()

	if err := o.run(ctx, conversation, &result); err != nil {
		log.Printf("pipeline: processing conversation %s failed: %v", conversation.ConversationID, err)
		span.SetError(err)
		result.Error = fmt.Sprintf("error processing conversation: %v", err)
	}

	result.ProcessingTime.Total = time.Since(result.ProcessingTime.Start).Seconds()
	return result
}

func (o *Orchestrator) run(ctx context.Context, conversation domain.Conversation, result *AggregateResult) error {
	conversationID := conversation.ConversationID

	if err := o.stores.Conversations.Save(ctx, conversation); err != nil {
		return fmt.Errorf("storing conversation: %w", err)
	}

	stepStart := time.Now()
	analysis := o.analyzer.AnalyzeConversation(conversation)
	result.SentimentAnalysis = &analysis
	result.ProcessingTime.Steps["sentiment"] = time.Since(stepStart).Seconds()

	stepStart = time.Now()
	summary := o.summarizer.Summarize(ctx, conversation)
	result.Summary = summary
	result.ProcessingTime.Steps["summarization"] = time.Since(stepStart).Seconds()

	if err := o.stores.Conversations.UpdateSummary(ctx, conversationID, summary); err != nil {
		return fmt.Errorf("storing summary: %w", err)
	}

	stepStart = time.Now()
	actions := o.extractor.ExtractActions(ctx, conversation, summary)
	result.Actions = &actions
	result.ProcessingTime.Steps["action_extraction"] = time.Since(stepStart).Seconds()

	if err := o.stores.Actions.Replace(ctx, conversationID, actions); err != nil {
		return fmt.Errorf("storing actions: %w", err)
	}

	// The article query is just the summary's first few words.
	stepStart = time.Now()
	result.KnowledgeArticles = o.kb.Search(ctx, queryTerms(summary), knowledgeMaxHits)
	result.ProcessingTime.Steps["knowledge_retrieval"] = time.Since(stepStart).Seconds()

	stepStart = time.Now()
	routing := o.router.RouteTicket(ctx, conversation, summary, actions)
	result.Routing = &routing
	result.ProcessingTime.Steps["routing"] = time.Since(stepStart).Seconds()

	if err := o.stores.Routing.Replace(ctx, conversationID, routing); err != nil {
		return fmt.Errorf("storing routing decision: %w", err)
	}

	stepStart = time.Now()
	similar := o.embedAndFindSimilar(ctx, conversation, summary)
	result.SimilarConversations = similar
	result.ProcessingTime.Steps["embeddings"] = time.Since(stepStart).Seconds()

	stepStart = time.Now()
	recommendation := o.recommender.Recommend(ctx, conversation, summary, actions, similar)
	result.Recommendations = &recommendation
	result.ProcessingTime.Steps["recommendation"] = time.Since(stepStart).Seconds()

	if err := o.stores.Recommendations.Replace(ctx, conversationID, recommendation); err != nil {
		return fmt.Errorf("storing recommendation: %w", err)
	}

	stepStart = time.Now()
	prediction := o.predictor.PredictResolutionTime(ctx, conversation, summary, actions)
	result.TimePrediction = &prediction
	result.ProcessingTime.Steps["time_prediction"] = time.Since(stepStart).Seconds()

	if err := o.stores.Predictions.Replace(ctx, conversationID, prediction); err != nil {
		return fmt.Errorf("storing time prediction: %w", err)
	}

	return nil
}

// embedAndFindSimilar embeds the formatted conversation, appends it to the
// embedding store, and returns the nearest stored conversations. A storage
// failure here is logged and skipped: similarity results are an enrichment,
// not a required artifact.
func (o *Orchestrator) embedAndFindSimilar(ctx context.Context, conversation domain.Conversation, summary string) []domain.SimilarItem {
	// The generation model is not a valid embedding model on every provider;
	// leave the option empty so each client applies its own embedding default.
	embedded := o.gen.Embed(ctx, agent.Format(conversation), llm.EmbedOptions{})
	if len(embedded.Vector) == 0 {
		return []domain.SimilarItem{}
	}

	// The summary, not the raw text, is the stored representation.
	if _, err := o.stores.Embeddings.Store(ctx, SourceTypeConversation, conversation.ConversationID, summary, embedded.Vector, o.model); err != nil {
		log.Printf("pipeline: storing embedding for %s failed: %v", conversation.ConversationID, err)
		return []domain.SimilarItem{}
	}

	similar, err := o.stores.Embeddings.FindSimilar(ctx, embedded.Vector, SourceTypeConversation, similarLimit)
	if err != nil {
		log.Printf("pipeline: similarity lookup for %s failed: %v", conversation.ConversationID, err)
		return []domain.SimilarItem{}
	}
	return similar
}

func queryTerms(summary string) string {
	words := strings.Fields(summary)
	if len(words) > queryTermCount {
		words = words[:queryTermCount]
	}
	return strings.Join(words, " ")
}
