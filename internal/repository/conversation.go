package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ConversationRepository handles persistence of raw conversations and their
// summaries.
type ConversationRepository struct {
	db dbtx
}

func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: pool}
}

func NewConversationRepositoryWithTx(tx pgx.Tx) *ConversationRepository {
	return &ConversationRepository{db: tx}
}

type conversationMetadata struct {
	Category  string `json:"category,omitempty"`
	Sentiment string `json:"sentiment,omitempty"`
	Priority  string `json:"priority,omitempty"`
}

// Save upserts the conversation row. Reprocessing the same conversation id
// replaces the raw data and metadata and clears the previous summary.
func (r *ConversationRepository) Save(ctx context.Context, conversation domain.Conversation) error {
	if conversation.ConversationID == "" {
		return domain.ErrEmptyConversationID
	}

	rawData, err := json.Marshal(conversation.Messages)
	if err != nil {
		return err
	}
	metadata, err := json.Marshal(conversationMetadata{
		Category:  conversation.Category,
		Sentiment: conversation.Sentiment,
		Priority:  conversation.Priority,
	})
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO conversations (conversation_id, raw_data, summary, timestamp, metadata)
		 VALUES ($1, $2, NULL, $3, $4)
		 ON CONFLICT (conversation_id)
		 DO UPDATE SET raw_data = EXCLUDED.raw_data, summary = NULL, timestamp = EXCLUDED.timestamp, metadata = EXCLUDED.metadata`,
		conversation.ConversationID, rawData, time.Now().UTC(), metadata,
	)
	return err
}

// UpdateSummary stores the generated summary on the conversation row.
func (r *ConversationRepository) UpdateSummary(ctx context.Context, conversationID, summary string) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE conversations SET summary = $1 WHERE conversation_id = $2`,
		nullableString(summary), conversationID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConversationNotFound
	}
	return nil
}

// GetByID loads a stored conversation with its latest summary.
func (r *ConversationRepository) GetByID(ctx context.Context, conversationID string) (*domain.ConversationRecord, error) {
	var record domain.ConversationRecord
	var rawData, metadata []byte
	var summary *string

	err := r.db.QueryRow(ctx,
		`SELECT conversation_id, raw_data, summary, timestamp, metadata
		 FROM conversations WHERE conversation_id = $1`,
		conversationID,
	).Scan(&record.ConversationID, &rawData, &summary, &record.Timestamp, &metadata)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrConversationNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(rawData, &record.Messages); err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		var meta conversationMetadata
		if err := json.Unmarshal(metadata, &meta); err != nil {
			return nil, err
		}
		record.Category = meta.Category
		record.Sentiment = meta.Sentiment
		record.Priority = meta.Priority
	}
	if summary != nil {
		record.Summary = *summary
	}
	return &record, nil
}
