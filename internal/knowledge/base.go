// Package knowledge serves support articles for a query, either from a live
// knowledge base site or from the built-in article sets.
package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

const (
	// DefaultMaxResults bounds article lookups when the caller passes 0.
	DefaultMaxResults = 5

	searchTimeout = 15 * time.Second
)

// Base answers article queries. With a BaseURL configured it first tries the
// remote knowledge base and falls back to the built-in sets when the remote
// search fails or returns nothing; without one it serves the built-in sets
// directly.
type Base struct {
	baseURL string
	client  *http.Client
}

// Option configures a Base.
type Option func(*Base)

// WithRemote points the Base at a live knowledge base site.
func WithRemote(baseURL string) Option {
	return func(b *Base) {
		b.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient overrides the HTTP client used for remote searches.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Base) {
		b.client = client
	}
}

// NewBase creates a knowledge Base.
func NewBase(opts ...Option) *Base {
	b := &Base{
		client: &http.Client{Timeout: searchTimeout},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Search returns up to maxResults articles for the query. The built-in set is
// picked by keyword: billing/charge/refund, technical/error/issue,
// account/login/password, otherwise the general set.
func (b *Base) Search(ctx context.Context, query string, maxResults int) []domain.KnowledgeArticle {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	if b.baseURL != "" {
		articles, err := b.searchRemote(ctx, query)
		if err != nil {
			log.Printf("knowledge: remote search failed, using built-in articles: %v", err)
		} else if len(articles) > 0 {
			return capArticles(articles, maxResults)
		}
	}

	return capArticles(b.builtinArticles(query), maxResults)
}

func (b *Base) builtinArticles(query string) []domain.KnowledgeArticle {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "billing") || strings.Contains(q, "charge") || strings.Contains(q, "refund"):
		return billingArticles()
	case strings.Contains(q, "technical") || strings.Contains(q, "error") || strings.Contains(q, "issue"):
		return technicalArticles()
	case strings.Contains(q, "account") || strings.Contains(q, "login") || strings.Contains(q, "password"):
		return accountArticles()
	default:
		return generalArticles()
	}
}

func (b *Base) searchRemote(ctx context.Context, query string) ([]domain.KnowledgeArticle, error) {
	searchURL := fmt.Sprintf("%s/search?q=%s", b.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building search request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("searching knowledge base: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("knowledge base returned status %d", resp.StatusCode)
	}

	var articles []domain.KnowledgeArticle
	if err := json.NewDecoder(resp.Body).Decode(&articles); err != nil {
		return nil, fmt.Errorf("decoding search results: %w", err)
	}
	return articles, nil
}

func capArticles(articles []domain.KnowledgeArticle, max int) []domain.KnowledgeArticle {
	if len(articles) > max {
		return articles[:max]
	}
	return articles
}
