package agent

import (
	"context"
	"fmt"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/llm"
)

// Summarizer generates concise summaries of customer conversations.
type Summarizer struct {
	gen llm.Generator
}

// NewSummarizer creates a Summarizer using the shared generation client.
func NewSummarizer(gen llm.Generator) *Summarizer {
	return &Summarizer{gen: gen}
}

// Summarize produces a short factual summary of the conversation. The result
// is best-effort text; a degraded backend yields canned content, never an
// error.
func (s *Summarizer) Summarize(ctx context.Context, conversation domain.Conversation) string {
	prompt := summarizationPrompt(Format(conversation))
	result := s.gen.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: 0.3,
		MaxTokens:   150,
	})
	return result.Text
}

func summarizationPrompt(formatted string) string {
	return fmt.Sprintf(`Please summarize the following customer support conversation.
Focus on the main issue, any attempted solutions, and the final outcome or current status.
Keep the summary brief and factual.

Conversation:
%s

Summary:
`, formatted)
}
