package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// LLM provider: "ollama" (default) or "openai". Simulate skips the
	// backend entirely and serves canned responses.
	LLMProvider string        `envconfig:"LLM_PROVIDER" default:"ollama"`
	OllamaURL   string        `envconfig:"OLLAMA_URL" default:"http://localhost:11434/api"`
	Model       string        `envconfig:"MODEL" default:"llama2"`
	MaxRetries  int           `envconfig:"LLM_MAX_RETRIES" default:"3"`
	RetryDelay  time.Duration `envconfig:"LLM_RETRY_DELAY" default:"1s"`
	Simulate    bool          `envconfig:"SIMULATE" default:"false"`

	OpenAIAPIKey string `envconfig:"OPENAI_API_KEY"`

	KnowledgeBaseURL string `envconfig:"KNOWLEDGE_BASE_URL"`

	// S3-compatible archive for processing results. Optional.
	S3Endpoint  string `envconfig:"S3_ENDPOINT"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY_ID"`
	S3SecretKey string `envconfig:"S3_SECRET_ACCESS_KEY"`
	S3Bucket    string `envconfig:"S3_BUCKET" default:"deskflow-results"`
	S3Region    string `envconfig:"S3_REGION" default:"us-east-1"`

	SentryDSN string `envconfig:"SENTRY_DSN"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("DESKFLOW", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

func (c *Config) HasS3() bool {
	return c.S3Endpoint != "" && c.S3AccessKey != "" && c.S3SecretKey != ""
}

func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}
