package domain

// KnowledgeArticle is a help-center article surfaced alongside a
// processed conversation.
type KnowledgeArticle struct {
	Title     string  `json:"title"`
	Content   string  `json:"content"`
	URL       string  `json:"url"`
	Relevance float64 `json:"relevance"`
}
