package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestParseActionResponse_JSON(t *testing.T) {
	set := parseActionResponse(`{
		"action_items": [
			{"action": "Send reset link", "priority": "High", "status": "Completed"},
			{"action": "Follow up", "priority": "Medium", "status": "Pending"}
		],
		"total_actions": 99
	}`)

	require.Len(t, set.ActionItems, 2)
	assert.Equal(t, "Send reset link", set.ActionItems[0].Action)
	assert.Equal(t, domain.PriorityHigh, set.ActionItems[0].Priority)
	// the stated total is ignored in favor of the actual item count
	assert.Equal(t, 2, set.TotalActions)
}

func TestParseActionResponse_JSONWithoutItems(t *testing.T) {
	set := parseActionResponse(`{"total_actions": 5}`)

	assert.NotNil(t, set.ActionItems)
	assert.Empty(t, set.ActionItems)
	assert.Zero(t, set.TotalActions)
}

func TestParseActionResponse_LineHeuristic(t *testing.T) {
	set := parseActionResponse(`Here are the items:
- Escalate to billing team, high priority
- Send invoice copy to customer (medium)
* Update the account records
The customer was satisfied.`)

	require.Len(t, set.ActionItems, 3)
	assert.Equal(t, 3, set.TotalActions)

	assert.Equal(t, "- Escalate to billing team, high priority", set.ActionItems[0].Action)
	assert.Equal(t, domain.PriorityHigh, set.ActionItems[0].Priority)
	assert.Equal(t, domain.PriorityMedium, set.ActionItems[1].Priority)
	assert.Equal(t, domain.PriorityLow, set.ActionItems[2].Priority)

	for _, item := range set.ActionItems {
		assert.Equal(t, domain.StatusPending, item.Status)
	}
}

func TestParseActionResponse_ActionWordLine(t *testing.T) {
	set := parseActionResponse("One action needed: reset the password")

	require.Len(t, set.ActionItems, 1)
	assert.Equal(t, "One action needed: reset the password", set.ActionItems[0].Action)
}

func TestParseActionResponse_NothingParseable(t *testing.T) {
	set := parseActionResponse("The conversation ended amicably.")

	assert.Empty(t, set.ActionItems)
	assert.Zero(t, set.TotalActions)
}

func TestExtractActions(t *testing.T) {
	gen := &stubGenerator{reply: `{"action_items": [{"action": "Reset password", "priority": "High", "status": "Pending"}]}`}
	extractor := NewExtractor(gen)

	conv := domain.Conversation{
		ConversationID: "conv123",
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "I cannot log in", Timestamp: "t1"},
		},
	}

	set := extractor.ExtractActions(context.Background(), conv, "Customer locked out of account")

	require.Len(t, set.ActionItems, 1)
	assert.Equal(t, "Reset password", set.ActionItems[0].Action)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Customer locked out of account")
	assert.Contains(t, gen.prompts[0], "I cannot log in")
	assert.Contains(t, gen.prompts[0], "Action Items (in JSON format):")
}
