package repository

import (
	"context"
	"time"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingRepository handles the append-only embeddings table and the
// similarity scan over it. Vectors are stored as pgvector columns but scored
// in Go with a plain dot-product scan; row counts here are small enough that
// no index is warranted.
type EmbeddingRepository struct {
	db dbtx
}

func NewEmbeddingRepository(pool *pgxpool.Pool) *EmbeddingRepository {
	return &EmbeddingRepository{db: pool}
}

func NewEmbeddingRepositoryWithTx(tx pgx.Tx) *EmbeddingRepository {
	return &EmbeddingRepository{db: tx}
}

// Store appends one embedding row and returns its id. There is no
// de-duplication: reprocessing a conversation accumulates rows.
func (r *EmbeddingRepository) Store(ctx context.Context, sourceType, sourceID, text string, vector []float32, model string) (int64, error) {
	if len(vector) == 0 {
		return 0, domain.ErrEmptyEmbedding
	}

	var embeddingID int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO embeddings (source_type, source_id, text, embedding, embedding_model, timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING embedding_id`,
		sourceType, sourceID, text, pgvector.NewVector(vector), model, time.Now().UTC(),
	).Scan(&embeddingID)
	return embeddingID, err
}

// FindSimilar loads every stored embedding (optionally filtered by source
// type) and returns the top limit items by dot product against the query
// vector, descending.
func (r *EmbeddingRepository) FindSimilar(ctx context.Context, vector []float32, sourceType string, limit int) ([]domain.SimilarItem, error) {
	candidates, err := r.listBySourceType(ctx, sourceType)
	if err != nil {
		return nil, err
	}
	return domain.RankBySimilarity(vector, candidates, limit), nil
}

func (r *EmbeddingRepository) listBySourceType(ctx context.Context, sourceType string) ([]domain.StoredEmbedding, error) {
	query := `SELECT embedding_id, source_type, source_id, text, embedding, embedding_model, timestamp
	          FROM embeddings`
	args := []any{}
	if sourceType != "" {
		query += ` WHERE source_type = $1`
		args = append(args, sourceType)
	}
	query += ` ORDER BY embedding_id`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var embeddings []domain.StoredEmbedding
	for rows.Next() {
		var e domain.StoredEmbedding
		var vec pgvector.Vector
		var ts time.Time
		if err := rows.Scan(&e.EmbeddingID, &e.SourceType, &e.SourceID, &e.Text, &vec, &e.Model, &ts); err != nil {
			return nil, err
		}
		e.Embedding = vec.Slice()
		e.Timestamp = ts.Format(time.RFC3339)
		embeddings = append(embeddings, e)
	}
	return embeddings, rows.Err()
}

// CountBySource reports how many embedding rows exist for a source id.
func (r *EmbeddingRepository) CountBySource(ctx context.Context, sourceType, sourceID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM embeddings WHERE source_type = $1 AND source_id = $2`,
		sourceType, sourceID,
	).Scan(&count)
	return count, err
}
