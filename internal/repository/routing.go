package repository

import (
	"context"
	"errors"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RoutingRepository stores the latest routing decision per conversation.
type RoutingRepository struct {
	db dbtx
}

func NewRoutingRepository(pool *pgxpool.Pool) *RoutingRepository {
	return &RoutingRepository{db: pool}
}

func NewRoutingRepositoryWithTx(tx pgx.Tx) *RoutingRepository {
	return &RoutingRepository{db: tx}
}

// Replace deletes any previous routing decision for the conversation and
// inserts the new one.
func (r *RoutingRepository) Replace(ctx context.Context, conversationID string, decision domain.RoutingDecision) error {
	_, err := r.db.Exec(ctx, `DELETE FROM routing_decisions WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO routing_decisions (conversation_id, recommended_team, confidence, justification, timestamp)
		 VALUES ($1, $2, $3, $4, $5)`,
		conversationID, decision.RecommendedTeam, decision.Confidence, decision.Justification, decision.Timestamp,
	)
	return err
}

// GetByConversation loads the stored routing decision, or nil if the
// conversation has none.
func (r *RoutingRepository) GetByConversation(ctx context.Context, conversationID string) (*domain.RoutingDecision, error) {
	var decision domain.RoutingDecision
	err := r.db.QueryRow(ctx,
		`SELECT recommended_team, confidence, justification, timestamp
		 FROM routing_decisions WHERE conversation_id = $1`,
		conversationID,
	).Scan(&decision.RecommendedTeam, &decision.Confidence, &decision.Justification, &decision.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &decision, nil
}
