package cli

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/deskflow-ai/deskflow/internal/config"
	"github.com/deskflow-ai/deskflow/internal/knowledge"
	"github.com/deskflow-ai/deskflow/internal/llm"
	"github.com/deskflow-ai/deskflow/internal/pipeline"
	"github.com/deskflow-ai/deskflow/internal/repository"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// newGenerator picks the generation backend from config: the Ollama-style
// client by default, OpenAI when selected, with simulate mode short-circuiting
// both.
func newGenerator(cfg *config.Config) llm.Generator {
	if cfg.LLMProvider == "openai" && !cfg.Simulate {
		if !cfg.HasOpenAI() {
			log.Println("LLM_PROVIDER=openai but no OPENAI_API_KEY set, falling back to ollama")
		} else {
			return llm.NewOpenAIClient(llm.OpenAIConfig{
				APIKey:     cfg.OpenAIAPIKey,
				MaxRetries: cfg.MaxRetries,
				RetryDelay: cfg.RetryDelay,
			})
		}
	}

	return llm.NewClient(llm.Config{
		BaseURL:    cfg.OllamaURL,
		Model:      cfg.Model,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Simulate:   cfg.Simulate,
	})
}

// newKnowledgeBase builds the article source, remote-backed when
// KNOWLEDGE_BASE_URL is configured.
func newKnowledgeBase(cfg *config.Config) *knowledge.Base {
	if cfg.KnowledgeBaseURL != "" {
		return knowledge.NewBase(knowledge.WithRemote(cfg.KnowledgeBaseURL))
	}
	return knowledge.NewBase()
}

// newStores assembles the pipeline stores. Single-statement writes
// (conversations, embeddings) run straight off the pool; the
// delete-then-insert artifact writes go through the transaction runner so a
// failed insert never strands a conversation without its previous artifact.
func newStores(pool *pgxpool.Pool) pipeline.Stores {
	runner := repository.NewTxRunner(pool)
	return pipeline.Stores{
		Conversations:   repository.NewConversationRepository(pool),
		Actions:         repository.NewTxActionStore(runner),
		Routing:         repository.NewTxRoutingStore(runner),
		Recommendations: repository.NewTxRecommendationStore(runner),
		Predictions:     repository.NewTxPredictionStore(runner),
		Embeddings:      repository.NewEmbeddingRepository(pool),
	}
}

// newOrchestrator wires a full pipeline from config and a database pool.
func newOrchestrator(cfg *config.Config, pool *pgxpool.Pool) (*pipeline.Orchestrator, llm.Generator) {
	gen := newGenerator(cfg)
	return pipeline.NewOrchestrator(newStores(pool), gen, newKnowledgeBase(cfg), cfg.Model), gen
}

func runMigrations(databaseURL string) error {
	// Create a sql.DB connection for golang-migrate
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	// Create postgres driver instance
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Create migrate instance with file source
	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	// Run migrations
	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	log.Printf("migrations applied (version: %d, dirty: %v)", version, dirty)

	return nil
}
