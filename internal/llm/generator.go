package llm

import "context"

// Default generation parameters, applied when the caller leaves the
// corresponding option at its zero value.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// EmbedOptions tunes a single embedding call.
type EmbedOptions struct {
	Model string
}

// GenerateResult carries the generated text. Degraded is set when the text is
// a canned fallback rather than genuine model output; callers that treat the
// two identically can ignore it, but tests and operators can tell them apart.
type GenerateResult struct {
	Text     string
	Degraded bool
	Reason   string
}

// EmbedResult carries an embedding vector, with the same degradation tag.
type EmbedResult struct {
	Vector   []float32
	Degraded bool
	Reason   string
}

// Generator is the interface every pipeline stage depends on. Implementations
// never return an error: transport failures degrade to canned output after
// the retry budget is exhausted.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) GenerateResult
	Embed(ctx context.Context, text string, opts EmbedOptions) EmbedResult
}
