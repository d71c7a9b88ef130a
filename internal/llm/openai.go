package llm

import (
	"context"
	"fmt"
	"log"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIEmbeddingModel is the OpenAI model used for embeddings when
// none is configured.
const DefaultOpenAIEmbeddingModel = openai.AdaEmbeddingV2

// OpenAIConfig holds configuration for the OpenAI-backed provider.
type OpenAIConfig struct {
	APIKey         string
	Model          string
	EmbeddingModel openai.EmbeddingModel
	MaxRetries     int
	RetryDelay     time.Duration
}

// openAIAPI is the slice of the OpenAI client the provider needs; it exists
// so tests can substitute a fake.
type openAIAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
	CreateEmbeddings(ctx context.Context, req openai.EmbeddingRequestConverter) (openai.EmbeddingResponse, error)
}

// OpenAIClient implements Generator against the OpenAI API. It keeps the same
// degradation contract as the Ollama client: a fixed number of retries with a
// fixed delay, then canned output instead of an error.
type OpenAIClient struct {
	api            openAIAPI
	model          string
	embeddingModel openai.EmbeddingModel
	maxRetries     int
	retryDelay     time.Duration
}

// NewOpenAIClient creates an OpenAI-backed generation client.
func NewOpenAIClient(cfg OpenAIConfig) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = openai.GPT3Dot5Turbo
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultOpenAIEmbeddingModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	return &OpenAIClient{
		api:            openai.NewClient(cfg.APIKey),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
		maxRetries:     cfg.MaxRetries,
		retryDelay:     cfg.RetryDelay,
	}
}

// Model returns the configured chat model name.
func (c *OpenAIClient) Model() string {
	return c.model
}

// Generate produces text via chat completion, degrading to a canned template
// when every attempt fails.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string, opts GenerateOptions) GenerateResult {
	model := opts.Model
	if model == "" {
		model = c.model
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.api.CreateChatCompletion(ctx, req)
		if err == nil && len(resp.Choices) > 0 {
			return GenerateResult{Text: resp.Choices[0].Message.Content}
		}
		if err == nil {
			err = fmt.Errorf("no choices returned")
		}
		lastErr = err
		log.Printf("llm: openai generate attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		if attempt < c.maxRetries && !sleepWithContext(ctx, c.retryDelay) {
			break
		}
	}

	log.Printf("llm: all openai generate attempts failed, falling back to canned response: %v", lastErr)
	return GenerateResult{
		Text:     CannedResponse(prompt),
		Degraded: true,
		Reason:   fmt.Sprintf("generation backend unavailable: %v", lastErr),
	}
}

// Embed produces an embedding vector, degrading to a uniform-random vector
// when every attempt fails.
func (c *OpenAIClient) Embed(ctx context.Context, text string, opts EmbedOptions) EmbedResult {
	model := c.embeddingModel
	if opts.Model != "" {
		model = openai.EmbeddingModel(opts.Model)
	}

	req := openai.EmbeddingRequest{
		Input: []string{text},
		Model: model,
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		resp, err := c.api.CreateEmbeddings(ctx, req)
		if err == nil && len(resp.Data) > 0 && len(resp.Data[0].Embedding) > 0 {
			return EmbedResult{Vector: resp.Data[0].Embedding}
		}
		if err == nil {
			err = fmt.Errorf("no embedding data returned")
		}
		lastErr = err
		log.Printf("llm: openai embeddings attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		if attempt < c.maxRetries && !sleepWithContext(ctx, c.retryDelay) {
			break
		}
	}

	log.Printf("llm: all openai embedding attempts failed, falling back to random vector: %v", lastErr)
	return EmbedResult{
		Vector:   CannedEmbedding(),
		Degraded: true,
		Reason:   fmt.Sprintf("embedding backend unavailable: %v", lastErr),
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
