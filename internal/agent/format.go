package agent

import (
	"fmt"
	"strings"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

// Keyword lists for entity extraction. The sentiment mini-lexicon here is
// intentionally distinct from the one used by the sentiment analyzer; the two
// components were never unified and their behavior differs.
var (
	productKeywords = []string{"laptop", "phone", "tablet", "computer", "printer", "software"}
	issueKeywords   = []string{"broken", "error", "not working", "issue", "problem", "bug", "crash"}

	entityPositiveWords = []string{"happy", "satisfied", "great", "excellent"}
	entityNegativeWords = []string{"unhappy", "disappointed", "frustrated", "angry"}
)

// Format flattens a conversation into a display string, one
// "{sender} ({timestamp}): {content}" block per turn, in turn order.
func Format(conversation domain.Conversation) string {
	var b strings.Builder
	for _, msg := range conversation.Messages {
		fmt.Fprintf(&b, "%s (%s): %s\n\n", msg.Sender, msg.Timestamp, msg.Content)
	}
	return b.String()
}

// ExtractEntities pulls the small keyword-derived context out of a formatted
// conversation: every product and issue keyword present (presence only, in
// list order) and a coarse sentiment label.
func ExtractEntities(text string) domain.Entities {
	entities := domain.Entities{
		Products:          []string{},
		Issues:            []string{},
		CustomerSentiment: "neutral",
	}

	lower := strings.ToLower(text)

	for _, product := range productKeywords {
		if strings.Contains(lower, product) {
			entities.Products = append(entities.Products, product)
		}
	}
	for _, issue := range issueKeywords {
		if strings.Contains(lower, issue) {
			entities.Issues = append(entities.Issues, issue)
		}
	}

	var positive, negative int
	for _, word := range entityPositiveWords {
		if strings.Contains(lower, word) {
			positive++
		}
	}
	for _, word := range entityNegativeWords {
		if strings.Contains(lower, word) {
			negative++
		}
	}

	if positive > negative {
		entities.CustomerSentiment = "positive"
	} else if negative > positive {
		entities.CustomerSentiment = "negative"
	}

	return entities
}

// entityInfo renders the entity context block embedded in stage prompts.
func entityInfo(entities domain.Entities) string {
	products := strings.Join(entities.Products, ", ")
	if products == "" {
		products = "None"
	}
	issues := strings.Join(entities.Issues, ", ")
	if issues == "" {
		issues = "None"
	}
	return fmt.Sprintf("Products mentioned: %s\nIssues mentioned: %s\nCustomer sentiment: %s\n",
		products, issues, entities.CustomerSentiment)
}
