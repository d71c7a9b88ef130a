package domain

import "sort"

// StoredEmbedding is one row of the embeddings table. Rows are append-only:
// created once per (source, stage), never updated, deleted only by a whole
// database reset. Many rows per source id are allowed.
type StoredEmbedding struct {
	EmbeddingID int64     `json:"embedding_id"`
	SourceType  string    `json:"source_type"`
	SourceID    string    `json:"source_id"`
	Text        string    `json:"text"`
	Embedding   []float32 `json:"embedding"`
	Model       string    `json:"embedding_model"`
	Timestamp   string    `json:"timestamp"`
}

// SimilarItem is one ranked result of a similarity query.
type SimilarItem struct {
	SourceType string  `json:"source_type"`
	SourceID   string  `json:"source_id"`
	Text       string  `json:"text"`
	Similarity float64 `json:"similarity"`
}

// DotProduct computes the dot product of two vectors. Mismatched lengths
// score 0 rather than failing, matching the store's degenerate-row behavior.
func DotProduct(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// RankBySimilarity scores every candidate against the query vector by dot
// product and returns the top limit items in descending score order. This is
// a deliberate full linear scan; row counts and dimensionality here are small
// and no similarity index is in scope.
func RankBySimilarity(query []float32, candidates []StoredEmbedding, limit int) []SimilarItem {
	items := make([]SimilarItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, SimilarItem{
			SourceType: c.SourceType,
			SourceID:   c.SourceID,
			Text:       c.Text,
			Similarity: DotProduct(query, c.Embedding),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Similarity > items[j].Similarity
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items
}
