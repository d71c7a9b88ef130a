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

// Recommender suggests resolution steps based on the conversation and
// similar historical cases.
type Recommender struct {
	gen llm.Generator
}

// NewRecommender creates a Recommender using the shared generation client.
func NewRecommender(gen llm.Generator) *Recommender {
	return &Recommender{gen: gen}
}

// FallbackRecommendation is the fixed placeholder substituted when no
// recommendation at all can be recovered from the model output.
func FallbackRecommendation() domain.ResolutionRecommendation {
	return domain.ResolutionRecommendation{
		ImmediateSteps: []domain.ResolutionStep{
			{Action: "Verify refund status", Details: "Check if refund has been processed"},
			{Action: "Send confirmation email", Details: "Ensure customer receives refund confirmation"},
		},
		CompleteResolutionPath: []domain.ResolutionStep{
			{Action: "Monitor account", Details: "Watch for any similar issues"},
			{Action: "Update documentation", Details: "Document the resolution process"},
		},
		Reasoning:       "Based on standard billing procedures",
		ConfidenceScore: 0.85,
	}
}

// Recommend produces resolution steps for a conversation given its summary,
// extracted actions, and similar past conversations. It never fails: output
// that yields nothing at all is replaced by the fixed fallback object.
func (r *Recommender) Recommend(ctx context.Context, conversation domain.Conversation, summary string, actions domain.ActionSet, similar []domain.SimilarItem) domain.ResolutionRecommendation {
	prompt := recommendationPrompt(summary, actions, similar)
	result := r.gen.Generate(ctx, prompt, llm.GenerateOptions{})

	rec := parseRecommendationResponse(result.Text)
	if len(rec.ImmediateSteps) == 0 && len(rec.CompleteResolutionPath) == 0 && rec.Reasoning == "" {
		return FallbackRecommendation()
	}
	return rec
}

func recommendationPrompt(summary string, actions domain.ActionSet, similar []domain.SimilarItem) string {
	actionsJSON, _ := json.MarshalIndent(actions, "", "  ")
	similarJSON, _ := json.MarshalIndent(similar, "", "  ")

	return fmt.Sprintf(`Based on the following conversation and similar cases, provide detailed resolution steps:

Conversation Summary:
%s

Action Items:
%s

Similar Cases:
%s

Please provide a structured response with:
1. Immediate steps needed
2. Complete resolution path
3. Reasoning for the recommendations
4. Confidence score (0-1)

Format the response as a JSON object with these fields:
{
    "immediate_steps": [
        {"action": "step description", "details": "additional details"}
    ],
    "complete_resolution_path": [
        {"action": "step description", "details": "additional details"}
    ],
    "reasoning": "explanation of recommendations",
    "confidence_score": 0.85
}
`, summary, actionsJSON, similarJSON)
}

// recommendationSection is the state of the fallback line parser: which
// section of the reply, if any, lines are currently being accumulated into.
type recommendationSection int

const (
	sectionNone recommendationSection = iota
	sectionImmediate
	sectionComplete
	sectionReasoning
)

// nextSection returns the section a header line switches the parser into,
// or the current section when the line is not a header.
func nextSection(current recommendationSection, lower string) (recommendationSection, bool) {
	switch {
	case strings.Contains(lower, "immediate") || strings.Contains(lower, "next steps"):
		return sectionImmediate, true
	case strings.Contains(lower, "complete") || strings.Contains(lower, "full resolution"):
		return sectionComplete, true
	case strings.Contains(lower, "reasoning") || strings.Contains(lower, "rationale"):
		return sectionReasoning, true
	}
	return current, false
}

// parseRecommendationResponse parses the model reply: JSON first, then a
// section-based accumulator where header lines switch sections and list-ish
// lines (bullet prefix or containing a colon) join the active one.
func parseRecommendationResponse(response string) domain.ResolutionRecommendation {
	var rec domain.ResolutionRecommendation
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &rec); err == nil {
		if rec.Timestamp == "" {
			rec.Timestamp = time.Now().UTC().Format(time.RFC3339)
		}
		return rec
	}

	var (
		immediate []domain.ResolutionStep
		complete  []domain.ResolutionStep
		reasoning strings.Builder
		section   = sectionNone
	)

	for _, raw := range strings.Split(response, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		if next, switched := nextSection(section, lower); switched {
			section = next
			continue
		}

		listLine := hasBulletPrefix(line) || strings.Contains(line, ":")
		switch section {
		case sectionImmediate:
			if listLine {
				immediate = append(immediate, domain.ResolutionStep{Action: line})
			}
		case sectionComplete:
			if listLine {
				complete = append(complete, domain.ResolutionStep{Action: line})
			}
		case sectionReasoning:
			reasoning.WriteString(line)
			reasoning.WriteString(" ")
		}
	}

	return domain.ResolutionRecommendation{
		ImmediateSteps:         immediate,
		CompleteResolutionPath: complete,
		Reasoning:              strings.TrimSpace(reasoning.String()),
		ConfidenceScore:        0.85,
		Timestamp:              time.Now().UTC().Format(time.RFC3339),
	}
}
