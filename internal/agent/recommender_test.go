package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestParseRecommendationResponse_JSON(t *testing.T) {
	rec := parseRecommendationResponse(`{
		"immediate_steps": [{"action": "Verify refund status", "details": "Check processor"}],
		"complete_resolution_path": [{"action": "Monitor account"}],
		"reasoning": "Standard billing flow",
		"confidence_score": 0.9
	}`)

	require.Len(t, rec.ImmediateSteps, 1)
	assert.Equal(t, "Verify refund status", rec.ImmediateSteps[0].Action)
	assert.Equal(t, "Check processor", rec.ImmediateSteps[0].Details)
	require.Len(t, rec.CompleteResolutionPath, 1)
	assert.Equal(t, "Standard billing flow", rec.Reasoning)
	assert.Equal(t, 0.9, rec.ConfidenceScore)
	assert.NotEmpty(t, rec.Timestamp)
}

func TestParseRecommendationResponse_Sections(t *testing.T) {
	rec := parseRecommendationResponse(`Immediate steps needed:
- Verify the refund was submitted
- Email the customer a receipt

Complete resolution path:
- Audit the billing account
- Close the ticket

Reasoning:
The charge was duplicated by a retry loop.`)

	require.Len(t, rec.ImmediateSteps, 2)
	assert.Equal(t, "- Verify the refund was submitted", rec.ImmediateSteps[0].Action)
	require.Len(t, rec.CompleteResolutionPath, 2)
	assert.Equal(t, "- Close the ticket", rec.CompleteResolutionPath[1].Action)
	assert.Contains(t, rec.Reasoning, "duplicated by a retry loop")
	assert.Equal(t, 0.85, rec.ConfidenceScore)
}

func TestParseRecommendationResponse_NonListLinesIgnored(t *testing.T) {
	rec := parseRecommendationResponse(`Immediate steps needed:
Please see the list below
- Check the order status`)

	require.Len(t, rec.ImmediateSteps, 1)
	assert.Equal(t, "- Check the order status", rec.ImmediateSteps[0].Action)
}

func TestRecommend_FallbackWhenNothingRecovered(t *testing.T) {
	gen := &stubGenerator{reply: "I do not know what to suggest here"}
	recommender := NewRecommender(gen)

	rec := recommender.Recommend(context.Background(), domain.Conversation{}, "summary", domain.ActionSet{}, nil)

	fallback := FallbackRecommendation()
	assert.Equal(t, fallback.ImmediateSteps, rec.ImmediateSteps)
	assert.Equal(t, fallback.CompleteResolutionPath, rec.CompleteResolutionPath)
	assert.Equal(t, fallback.Reasoning, rec.Reasoning)
	assert.Equal(t, 0.85, rec.ConfidenceScore)
}

func TestRecommend_PromptCarriesContext(t *testing.T) {
	gen := &stubGenerator{reply: `{"reasoning": "ok"}`}
	recommender := NewRecommender(gen)

	similar := []domain.SimilarItem{{SourceID: "conv456", Text: "past billing dispute", Similarity: 0.7}}
	actions := domain.ActionSet{ActionItems: []domain.ActionItem{{Action: "Issue refund"}}, TotalActions: 1}

	rec := recommender.Recommend(context.Background(), domain.Conversation{}, "Customer double charged", actions, similar)

	assert.Equal(t, "ok", rec.Reasoning)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Customer double charged")
	assert.Contains(t, prompt, "Issue refund")
	assert.Contains(t, prompt, "past billing dispute")
}
