package repository

import (
	"context"
	"time"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ActionRepository handles persistence of extracted action items. A
// conversation keeps only its latest action set: Replace deletes the previous
// rows before inserting.
type ActionRepository struct {
	db dbtx
}

func NewActionRepository(pool *pgxpool.Pool) *ActionRepository {
	return &ActionRepository{db: pool}
}

func NewActionRepositoryWithTx(tx pgx.Tx) *ActionRepository {
	return &ActionRepository{db: tx}
}

// Replace deletes existing action rows for the conversation and inserts the
// new set.
func (r *ActionRepository) Replace(ctx context.Context, conversationID string, actions domain.ActionSet) error {
	_, err := r.db.Exec(ctx, `DELETE FROM actions WHERE conversation_id = $1`, conversationID)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	for _, item := range actions.ActionItems {
		_, err := r.db.Exec(ctx,
			`INSERT INTO actions (conversation_id, action, priority, status, timestamp)
			 VALUES ($1, $2, $3, $4, $5)`,
			conversationID, item.Action, item.Priority, item.Status, now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetByConversation loads the stored action set for a conversation, in
// insertion order.
func (r *ActionRepository) GetByConversation(ctx context.Context, conversationID string) (domain.ActionSet, error) {
	rows, err := r.db.Query(ctx,
		`SELECT action, priority, status FROM actions
		 WHERE conversation_id = $1 ORDER BY action_id`,
		conversationID,
	)
	if err != nil {
		return domain.ActionSet{}, err
	}
	defer rows.Close()

	set := domain.ActionSet{ActionItems: []domain.ActionItem{}}
	for rows.Next() {
		var item domain.ActionItem
		if err := rows.Scan(&item.Action, &item.Priority, &item.Status); err != nil {
			return domain.ActionSet{}, err
		}
		set.ActionItems = append(set.ActionItems, item)
	}
	set.TotalActions = len(set.ActionItems)
	return set, rows.Err()
}
