package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Defaults for the Ollama-style generation backend.
const (
	DefaultBaseURL    = "http://localhost:11434/api"
	DefaultModel      = "llama2"
	DefaultMaxRetries = 3
	DefaultRetryDelay = time.Second

	generateTimeout  = 60 * time.Second
	embeddingTimeout = 30 * time.Second
)

// Config holds generation client configuration.
type Config struct {
	BaseURL    string
	Model      string
	MaxRetries int
	RetryDelay time.Duration

	// Simulate bypasses the network entirely and always returns canned values.
	Simulate bool

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// Client talks to an Ollama-style text-generation backend. It is stateless
// between calls except for configuration. Transport failures and timeouts are
// retried a fixed number of times with a fixed delay, then degrade silently
// to canned output; callers never see an error.
type Client struct {
	baseURL    string
	model      string
	maxRetries int
	retryDelay time.Duration
	simulate   bool
	httpClient *http.Client
}

// NewClient creates a generation client, filling unset fields with defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		simulate:   cfg.Simulate,
		httpClient: cfg.HTTPClient,
	}
}

// Model returns the configured default model name.
func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type embeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// Generate produces text for the prompt. After the retry budget is exhausted
// it returns a canned template selected by prompt content, tagged Degraded.
func (c *Client) Generate(ctx context.Context, prompt string, opts GenerateOptions) GenerateResult {
	if c.simulate {
		return GenerateResult{Text: CannedResponse(prompt), Degraded: true, Reason: "simulate mode"}
	}

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

	body := generateRequest{
		Model:       model,
		Prompt:      prompt,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Stream:      false,
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		var out generateResponse
		err := c.post(ctx, c.baseURL+"/generate", generateTimeout, body, &out)
		if err == nil {
			return GenerateResult{Text: out.Response}
		}
		lastErr = err
		log.Printf("llm: generate attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		if attempt < c.maxRetries && !c.sleep(ctx) {
			break
		}
	}

	log.Printf("llm: all generate attempts failed, falling back to canned response: %v", lastErr)
	return GenerateResult{
		Text:     CannedResponse(prompt),
		Degraded: true,
		Reason:   fmt.Sprintf("generation backend unavailable: %v", lastErr),
	}
}

// Embed produces an embedding vector for the text. After the retry budget is
// exhausted it returns a uniform-random vector, tagged Degraded.
func (c *Client) Embed(ctx context.Context, text string, opts EmbedOptions) EmbedResult {
	if c.simulate {
		return EmbedResult{Vector: CannedEmbedding(), Degraded: true, Reason: "simulate mode"}
	}

	model := opts.Model
	if model == "" {
		model = c.model
	}

	body := embeddingRequest{Model: model, Prompt: text}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries; attempt++ {
		var out embeddingResponse
		err := c.post(ctx, c.baseURL+"/embeddings", embeddingTimeout, body, &out)
		if err == nil && len(out.Embedding) > 0 {
			return EmbedResult{Vector: out.Embedding}
		}
		if err == nil {
			err = fmt.Errorf("empty embedding returned")
		}
		lastErr = err
		log.Printf("llm: embeddings attempt %d/%d failed: %v", attempt, c.maxRetries, err)
		if attempt < c.maxRetries && !c.sleep(ctx) {
			break
		}
	}

	log.Printf("llm: all embedding attempts failed, falling back to random vector: %v", lastErr)
	return EmbedResult{
		Vector:   CannedEmbedding(),
		Degraded: true,
		Reason:   fmt.Sprintf("embedding backend unavailable: %v", lastErr),
	}
}

func (c *Client) post(ctx context.Context, url string, timeout time.Duration, in, out interface{}) error {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// sleep waits out the fixed inter-attempt delay. Returns false when the
// context is cancelled first.
func (c *Client) sleep(ctx context.Context) bool {
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
