package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/deskflow-ai/deskflow/internal/llm"
)

// Extractor identifies and extracts key action items from conversations.
type Extractor struct {
	gen llm.Generator
}

// NewExtractor creates an Extractor using the shared generation client.
func NewExtractor(gen llm.Generator) *Extractor {
	return &Extractor{gen: gen}
}

// ExtractActions extracts the action items from a conversation, optionally
// informed by a pre-generated summary. Malformed model output is recovered
// by the line parser; the result is always a usable ActionSet.
func (e *Extractor) ExtractActions(ctx context.Context, conversation domain.Conversation, summary string) domain.ActionSet {
	formatted := Format(conversation)
	entities := ExtractEntities(formatted)

	prompt := actionExtractionPrompt(formatted, summary, entities)
	result := e.gen.Generate(ctx, prompt, llm.GenerateOptions{
		Temperature: 0.2,
		MaxTokens:   300,
	})

	return parseActionResponse(result.Text)
}

func actionExtractionPrompt(formatted, summary string, entities domain.Entities) string {
	summaryInfo := ""
	if summary != "" {
		summaryInfo = fmt.Sprintf("\nConversation Summary: %s\n", summary)
	}

	return fmt.Sprintf(`Analyze the following customer support conversation and extract all action items that need to be taken.
These can include:
- Escalations needed (and to which department)
- Follow-ups required (with due dates if specified)
- Information that needs to be provided to the customer
- Technical actions needed to resolve the issue
- Documentation or records that need to be updated

Format your response as a structured list of action items with priorities (High/Medium/Low).

Conversation:%s
%s

%s

Action Items (in JSON format):
`, summaryInfo, formatted, entityInfo(entities))
}

// parseActionResponse parses the model reply into an ActionSet: JSON first,
// then the line heuristic. A line is an action item when it starts with a
// bullet marker or mentions the word "action"; priority is inferred from the
// words "high"/"medium" and every item starts out Pending.
func parseActionResponse(response string) domain.ActionSet {
	var set domain.ActionSet
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &set); err == nil {
		if set.ActionItems == nil {
			set.ActionItems = []domain.ActionItem{}
		}
		set.TotalActions = len(set.ActionItems)
		return set
	}

	items := []domain.ActionItem{}
	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if !hasBulletPrefix(line) && !strings.Contains(lower, "action") {
			continue
		}

		priority := domain.PriorityLow
		if strings.Contains(lower, "high") {
			priority = domain.PriorityHigh
		} else if strings.Contains(lower, "medium") {
			priority = domain.PriorityMedium
		}

		items = append(items, domain.ActionItem{
			Action:   line,
			Priority: priority,
			Status:   domain.StatusPending,
		})
	}

	return domain.ActionSet{
		ActionItems:  items,
		TotalActions: len(items),
	}
}
