package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PredictionRepository stores the latest resolution-time prediction per
// conversation.
type PredictionRepository struct {
	db dbtx
}

func NewPredictionRepository(pool *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{db: pool}
}

func NewPredictionRepositoryWithTx(tx pgx.Tx) *PredictionRepository {
	return &PredictionRepository{db: tx}
}

// Replace deletes any previous prediction for the conversation and inserts
// the new one.
func (r *PredictionRepository) Replace(ctx context.Context, conversationID string, prediction domain.TimePrediction) error {
	_, err := r.db.Exec(ctx, `DELETE FROM time_predictions WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return err
	}

	factors, err := json.Marshal(prediction.Factors)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO time_predictions
			(conversation_id, predicted_category, estimated_hours, confidence_score, factors, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		conversationID, prediction.PredictedCategory, prediction.EstimatedHours, prediction.ConfidenceScore, factors, prediction.Timestamp,
	)
	return err
}

// GetByConversation loads the stored prediction, or nil if the conversation
// has none.
func (r *PredictionRepository) GetByConversation(ctx context.Context, conversationID string) (*domain.TimePrediction, error) {
	var prediction domain.TimePrediction
	var factors []byte
	err := r.db.QueryRow(ctx,
		`SELECT predicted_category, estimated_hours, confidence_score, factors, timestamp
		 FROM time_predictions WHERE conversation_id = $1`,
		conversationID,
	).Scan(&prediction.PredictedCategory, &prediction.EstimatedHours, &prediction.ConfidenceScore, &factors, &prediction.Timestamp)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(factors, &prediction.Factors); err != nil {
		return nil, err
	}
	return &prediction, nil
}
