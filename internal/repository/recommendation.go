package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecommendationRepository stores the latest resolution recommendation per
// conversation. Step lists are kept as JSONB.
type RecommendationRepository struct {
	db dbtx
}

func NewRecommendationRepository(pool *pgxpool.Pool) *RecommendationRepository {
	return &RecommendationRepository{db: pool}
}

func NewRecommendationRepositoryWithTx(tx pgx.Tx) *RecommendationRepository {
	return &RecommendationRepository{db: tx}
}

// Replace deletes any previous recommendation for the conversation and
// inserts the new one.
func (r *RecommendationRepository) Replace(ctx context.Context, conversationID string, rec domain.ResolutionRecommendation) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resolution_recommendations WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return err
	}

	immediate, err := json.Marshal(rec.ImmediateSteps)
	if err != nil {
		return err
	}
	complete, err := json.Marshal(rec.CompleteResolutionPath)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO resolution_recommendations
			(conversation_id, immediate_steps, complete_resolution_path, reasoning, confidence_score, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		conversationID, immediate, complete, rec.Reasoning, rec.ConfidenceScore, rec.Timestamp,
	)
	return err
}

// GetByConversation loads the stored recommendation, or nil if the
// conversation has none.
func (r *RecommendationRepository) GetByConversation(ctx context.Context, conversationID string) (*domain.ResolutionRecommendation, error) {
	var rec domain.ResolutionRecommendation
	var immediate, complete []byte
	err := r.db.QueryRow(ctx,
		`SELECT immediate_steps, complete_resolution_path, reasoning, confidence_score, timestamp
		 FROM resolution_recommendations WHERE conversation_id = $1`,
		conversationID,
	).Scan(&immediate, &complete, &rec.Reasoning, &rec.ConfidenceScore, &rec.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(immediate, &rec.ImmediateSteps); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(complete, &rec.CompleteResolutionPath); err != nil {
		return nil, err
	}
	return &rec, nil
}
