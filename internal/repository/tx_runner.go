package repository

import (
	"context"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRepositories bundles the repositories bound to one transaction.
type TxRepositories struct {
	Conversations   *ConversationRepository
	Actions         *ActionRepository
	Routing         *RoutingRepository
	Recommendations *RecommendationRepository
	Predictions     *PredictionRepository
	Historical      *HistoricalRepository
	Embeddings      *EmbeddingRepository
}

// TxRunner provides transactional repositories using a pgx pool. The
// delete-then-insert Replace operations run inside a transaction so a failed
// insert never leaves a conversation without its previous artifact.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}

	repos := TxRepositories{
		Conversations:   NewConversationRepositoryWithTx(tx),
		Actions:         NewActionRepositoryWithTx(tx),
		Routing:         NewRoutingRepositoryWithTx(tx),
		Recommendations: NewRecommendationRepositoryWithTx(tx),
		Predictions:     NewPredictionRepositoryWithTx(tx),
		Historical:      NewHistoricalRepositoryWithTx(tx),
		Embeddings:      NewEmbeddingRepositoryWithTx(tx),
	}
	if err := fn(repos); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}

	return tx.Commit(ctx)
}

// The pipeline's artifact writes go through these wrappers so each
// delete-then-insert Replace commits or rolls back as a unit.
type (
	TxActionStore         struct{ runner *TxRunner }
	TxRoutingStore        struct{ runner *TxRunner }
	TxRecommendationStore struct{ runner *TxRunner }
	TxPredictionStore     struct{ runner *TxRunner }
)

func NewTxActionStore(runner *TxRunner) *TxActionStore {
	return &TxActionStore{runner: runner}
}

func (s *TxActionStore) Replace(ctx context.Context, conversationID string, actions domain.ActionSet) error {
	return s.runner.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Actions.Replace(ctx, conversationID, actions)
	})
}

func NewTxRoutingStore(runner *TxRunner) *TxRoutingStore {
	return &TxRoutingStore{runner: runner}
}

func (s *TxRoutingStore) Replace(ctx context.Context, conversationID string, decision domain.RoutingDecision) error {
	return s.runner.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Routing.Replace(ctx, conversationID, decision)
	})
}

func NewTxRecommendationStore(runner *TxRunner) *TxRecommendationStore {
	return &TxRecommendationStore{runner: runner}
}

func (s *TxRecommendationStore) Replace(ctx context.Context, conversationID string, rec domain.ResolutionRecommendation) error {
	return s.runner.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Recommendations.Replace(ctx, conversationID, rec)
	})
}

func NewTxPredictionStore(runner *TxRunner) *TxPredictionStore {
	return &TxPredictionStore{runner: runner}
}

func (s *TxPredictionStore) Replace(ctx context.Context, conversationID string, prediction domain.TimePrediction) error {
	return s.runner.WithTx(ctx, func(repos TxRepositories) error {
		return repos.Predictions.Replace(ctx, conversationID, prediction)
	})
}
