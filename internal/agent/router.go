package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/llm"
)

// Router decides which team a ticket should be assigned to.
type Router struct {
	gen llm.Generator
}

// NewRouter creates a Router using the shared generation client.
func NewRouter(gen llm.Generator) *Router {
	return &Router{gen: gen}
}

// RouteTicket determines the team a conversation's ticket belongs to, using
// the summary and extracted actions as context when available. The decision
// always names a team: unparseable output defaults to General Support.
func (r *Router) RouteTicket(ctx context.Context, conversation domain.Conversation, summary string, actions domain.ActionSet) domain.RoutingDecision {
	formatted := Format(conversation)
	entities := ExtractEntities(formatted)

	prompt := routingPrompt(formatted, summary, actions, entities)
	result := r.gen.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: 0.2,
		MaxTokens:   200,
	})

	return parseRoutingResponse(result.Text)
}

func routingPrompt(formatted, summary string, actions domain.ActionSet, entities domain.Entities) string {
	summaryInfo := ""
	if summary != "" {
		summaryInfo = fmt.Sprintf("\nConversation Summary: %s\n", summary)
	}

	actionsInfo := ""
	if len(actions.ActionItems) > 0 {
		var lines []string
		for _, item := range actions.ActionItems {
			lines = append(lines, "- "+item.Action)
		}
		actionsInfo = fmt.Sprintf("\nExtracted Actions:\n%s\n", strings.Join(lines, "\n"))
	}

	var teams []string
	for _, team := range domain.AvailableTeams {
		teams = append(teams, "- "+team)
	}

	return fmt.Sprintf(`Based on the following customer support conversation, determine which team or department
this ticket should be routed to. Choose from the following teams:

%s

In your response, include:
1. The recommended team
2. A confidence level (High, Medium, or Low)
3. A brief justification for your decision

Conversation:%s%s
%s

%s

Routing Decision (in JSON format):
`, strings.Join(teams, "\n"), summaryInfo, actionsInfo, formatted, entityInfo(entities))
}

// parseRoutingResponse parses the model reply into a RoutingDecision: JSON
// first, then a line scan. The scan matches team names case-insensitively
// (last match wins), infers confidence only from lines where a level word
// co-occurs with the word "confidence", and accumulates justification from
// lines containing "because", "reason", or a colon.
func parseRoutingResponse(response string) domain.RoutingDecision {
	var decision domain.RoutingDecision
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &decision); err == nil {
		if decision.RecommendedTeam == "" {
			decision.RecommendedTeam = domain.DefaultTeam
		}
		if decision.Confidence == "" {
			decision.Confidence = domain.ConfidenceMedium
		}
		if decision.Timestamp == "" {
			decision.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}
		return decision
	}

	team := ""
	confidence := domain.ConfidenceMedium
	var justification strings.Builder

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		for _, name := range domain.AvailableTeams {
			if strings.Contains(lower, strings.ToLower(name)) {
				team = name
				break
			}
		}

		if strings.Contains(lower, "confidence") {
			switch {
			case strings.Contains(lower, "high"):
				confidence = domain.ConfidenceHigh
			case strings.Contains(lower, "medium"):
				confidence = domain.ConfidenceMedium
			case strings.Contains(lower, "low"):
				confidence = domain.ConfidenceLow
			}
		}

		if strings.Contains(lower, "because") || strings.Contains(lower, "reason") || strings.Contains(line, ":") {
			justification.WriteString(line)
			justification.WriteString(" ")
		}
	}

	if team == "" {
		team = domain.DefaultTeam
	}

	return domain.RoutingDecision{
		RecommendedTeam: team,
		Confidence:      confidence,
		Justification:   strings.TrimSpace(justification.String()),
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
	}
}
