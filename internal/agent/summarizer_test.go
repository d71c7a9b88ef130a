package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestSummarize(t *testing.T) {
	gen := &stubGenerator{reply: "Customer reported a login issue; a reset link was sent."}
	summarizer := NewSummarizer(gen)

	conv := domain.Conversation{
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "I cannot log into my account", Timestamp: "2023-07-15 10:00"},
			{Sender: "Agent", Content: "I will send a reset link", Timestamp: "2023-07-15 10:05"},
		},
	}

	summary := summarizer.Summarize(context.Background(), conv)

	assert.Equal(t, "Customer reported a login issue; a reset link was sent.", summary)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Please summarize the following customer support conversation.")
	assert.Contains(t, prompt, "I cannot log into my account")
	assert.Contains(t, prompt, "Summary:")
}
