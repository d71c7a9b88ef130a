package repository

import (
	"context"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultsRepository re-assembles every stored artifact of a conversation's
// latest processing run for the dashboard read path.
type ResultsRepository struct {
	conversations   *ConversationRepository
	actions         *ActionRepository
	routing         *RoutingRepository
	recommendations *RecommendationRepository
	predictions     *PredictionRepository
}

func NewResultsRepository(pool *pgxpool.Pool) *ResultsRepository {
	return &ResultsRepository{
		conversations:   NewConversationRepository(pool),
		actions:         NewActionRepository(pool),
		routing:         NewRoutingRepository(pool),
		recommendations: NewRecommendationRepository(pool),
		predictions:     NewPredictionRepository(pool),
	}
}

// GetProcessingResults loads the conversation's summary, actions, routing
// decision, recommendation, and time prediction. A conversation that was
// stored but never processed yields empty artifacts, not an error; an unknown
// conversation id yields domain.ErrConversationNotFound.
func (r *ResultsRepository) GetProcessingResults(ctx context.Context, conversationID string) (*domain.ProcessingResults, error) {
	record, err := r.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	results := &domain.ProcessingResults{
		ConversationID: record.ConversationID,
		Summary:        record.Summary,
	}

	if results.Actions, err = r.actions.GetByConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	if results.Routing, err = r.routing.GetByConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	if results.Recommendation, err = r.recommendations.GetByConversation(ctx, conversationID); err != nil {
		return nil, err
	}
	if results.Prediction, err = r.predictions.GetByConversation(ctx, conversationID); err != nil {
		return nil, err
	}

	return results, nil
}
