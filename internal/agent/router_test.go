package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestParseRoutingResponse_JSON(t *testing.T) {
	decision := parseRoutingResponse(`{
		"recommended_team": "Billing Support",
		"confidence": "High",
		"justification": "Refund dispute",
		"timestamp": "2023-06-15 10:15:00"
	}`)

	assert.Equal(t, "Billing Support", decision.RecommendedTeam)
	assert.Equal(t, domain.ConfidenceHigh, decision.Confidence)
	assert.Equal(t, "Refund dispute", decision.Justification)
	assert.Equal(t, "2023-06-15 10:15:00", decision.Timestamp)
}

func TestParseRoutingResponse_JSONDefaults(t *testing.T) {
	decision := parseRoutingResponse(`{"justification": "unclear"}`)

	assert.Equal(t, domain.DefaultTeam, decision.RecommendedTeam)
	assert.Equal(t, domain.ConfidenceMedium, decision.Confidence)
	assert.NotEmpty(t, decision.Timestamp)
}

func TestParseRoutingResponse_TextScan(t *testing.T) {
	decision := parseRoutingResponse(`Recommended team: Technical Support
Confidence: High
This is because the issue is a software defect.`)

	assert.Equal(t, "Technical Support", decision.RecommendedTeam)
	assert.Equal(t, domain.ConfidenceHigh, decision.Confidence)
	assert.Contains(t, decision.Justification, "software defect")
	assert.NotEmpty(t, decision.Timestamp)
}

func TestParseRoutingResponse_LastTeamMentionWins(t *testing.T) {
	decision := parseRoutingResponse(`This is not a Technical Support matter.
It should go to billing support instead.`)

	assert.Equal(t, "Billing Support", decision.RecommendedTeam)
}

func TestParseRoutingResponse_ConfidenceRequiresSameLine(t *testing.T) {
	// "high" on its own line never sets the level; it has to co-occur with
	// the word "confidence".
	decision := parseRoutingResponse(`Route to Security Team
The priority is high`)

	assert.Equal(t, "Security Team", decision.RecommendedTeam)
	assert.Equal(t, domain.ConfidenceMedium, decision.Confidence)
}

func TestParseRoutingResponse_DefaultTeam(t *testing.T) {
	decision := parseRoutingResponse("I cannot tell where this belongs.")

	assert.Equal(t, domain.DefaultTeam, decision.RecommendedTeam)
	assert.Equal(t, domain.ConfidenceMedium, decision.Confidence)
}

func TestRouteTicket(t *testing.T) {
	gen := &stubGenerator{reply: `{"recommended_team": "Account Management", "confidence": "High", "justification": "login issue"}`}
	router := NewRouter(gen)

	conv := domain.Conversation{
		ConversationID: "conv123",
		Messages: []domain.Turn{
			{Sender: "Customer", Content: "I cannot access my account", Timestamp: "t1"},
		},
	}
	actions := domain.ActionSet{
		ActionItems: []domain.ActionItem{{Action: "Send password reset link"}},
	}

	decision := router.RouteTicket(context.Background(), conv, "Login trouble", actions)

	assert.Equal(t, "Account Management", decision.RecommendedTeam)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	for _, team := range domain.AvailableTeams {
		assert.Contains(t, prompt, team)
	}
	assert.Contains(t, prompt, "Login trouble")
	assert.Contains(t, prompt, "- Send password reset link")
}
