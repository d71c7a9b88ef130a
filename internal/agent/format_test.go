package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/llm"
)

// stubGenerator returns a fixed reply and records the prompts it received.
type stubGenerator struct {
	reply   string
	vector  []float32
	prompts []string
}

func (s *stubGenerator) Generate(_ context.Context, prompt string, _ llm.GenerateOptions) llm.GenerateResult {
	s.prompts = append(s.prompts, prompt)
	return llm.GenerateResult{Text: s.reply}
}

func (s *stubGenerator) Embed(_ context.Context, _ string, _ llm.EmbedOptions) llm.EmbedResult {
	return llm.EmbedResult{Vector: s.vector}
}

func TestFormat(t *testing.T) {
	conv := domain.Conversation{
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "My printer is broken", Timestamp: "2023-07-15 10:00"},
			{Sender: "Agent", Content: "Let me help with that", Timestamp: "2023-07-15 10:05"},
		},
	}

	formatted := Format(conv)

	assert.Equal(t, "Customer (2023-07-15 10:00): My printer is broken\n\nAgent (2023-07-15 10:05): Let me help with that\n\n", formatted)
}

func TestFormat_Empty(t *testing.T) {
	assert.Equal(t, "", Format(domain.Conversation{}))
}

func TestExtractEntities(t *testing.T) {
	entities := ExtractEntities("My laptop and printer are broken, I keep getting an error and I am frustrated")

	assert.Equal(t, []string{"laptop", "printer"}, entities.Products)
	assert.Equal(t, []string{"broken", "error"}, entities.Issues)
	assert.Equal(t, "negative", entities.CustomerSentiment)
}

func TestExtractEntities_Positive(t *testing.T) {
	entities := ExtractEntities("I am very happy and satisfied with the software")

	assert.Equal(t, []string{"software"}, entities.Products)
	assert.Empty(t, entities.Issues)
	assert.Equal(t, "positive", entities.CustomerSentiment)
}

func TestExtractEntities_NeutralOnTie(t *testing.T) {
	entities := ExtractEntities("I was happy at first but now I am frustrated")

	assert.Equal(t, "neutral", entities.CustomerSentiment)
}

func TestExtractEntities_Empty(t *testing.T) {
	entities := ExtractEntities("")

	assert.NotNil(t, entities.Products)
	assert.NotNil(t, entities.Issues)
	assert.Empty(t, entities.Products)
	assert.Empty(t, entities.Issues)
	assert.Equal(t, "neutral", entities.CustomerSentiment)
}

func TestEntityInfo(t *testing.T) {
	info := entityInfo(domain.Entities{
		Products:          []string{"laptop"},
		Issues:            []string{},
		CustomerSentiment: "negative",
	})

	assert.Contains(t, info, "Products mentioned: laptop")
	assert.Contains(t, info, "Issues mentioned: None")
	assert.Contains(t, info, "Customer sentiment: negative")
}
