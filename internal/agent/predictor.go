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

// Predictor estimates the expected resolution time for a ticket.
type Predictor struct {
	gen llm.Generator
}

// NewPredictor creates a Predictor using the shared generation client.
func NewPredictor(gen llm.Generator) *Predictor {
	return &Predictor{gen: gen}
}

// PredictResolutionTime estimates how long the conversation's issue will take
// to resolve. Like every other stage, it always returns a usable prediction.
func (p *Predictor) PredictResolutionTime(ctx context.Context, conversation domain.Conversation, summary string, actions domain.ActionSet) domain.TimePrediction {
	prompt := timePredictionPrompt(summary, actions)
	result := p.gen.Generate(ctx, prompt, llm.GenerateOptions{})
	return parseTimePredictionResponse(result.Text)
}

func timePredictionPrompt(summary string, actions domain.ActionSet) string {
	actionsJSON, _ := json.MarshalIndent(actions, "", "  ")

	var categories []string
	for _, c := range domain.TimeCategories {
		categories = append(categories, fmt.Sprintf("- %s: %d hours", titleCase(c.Name), c.Hours))
	}

	return fmt.Sprintf(`Based on the following customer support conversation, predict how long it will take to resolve the issue:

Conversation Summary:
%s

Action Items:
%s

Choose one of the following resolution time categories:

%s

Your prediction should take into account the complexity of the issue and the
number of steps required for resolution. Also provide an estimated number of hours.

Time Prediction (in JSON format with predicted_category and hours):
`, summary, actionsJSON, strings.Join(categories, "\n"))
}

// timePredictionJSON mirrors the requested reply shape. predicted_category
// and hours are required; their absence demotes the reply to the heuristic
// parser.
type timePredictionJSON struct {
	PredictedCategory *string     `json:"predicted_category"`
	Hours             *json.Number `json:"hours"`
	ConfidenceScore   float64     `json:"confidence_score"`
	Factors           []string    `json:"factors"`
}

// parseTimePredictionResponse parses the model reply: structurally valid JSON
// first, then a text scan. The scan checks category names in table order (so
// "very quick" is found before its "quick" substring) and lets an explicit
// "<digits> hour" mention override the category-implied hours.
func parseTimePredictionResponse(response string) domain.TimePrediction {
	var parsed timePredictionJSON
	if err := json.Unmarshal([]byte(strings.TrimSpace(response)), &parsed); err == nil &&
		parsed.PredictedCategory != nil && parsed.Hours != nil {
		hours64, err := parsed.Hours.Int64()
		if err != nil {
			if f, ferr := parsed.Hours.Float64(); ferr == nil {
				hours64 = int64(f)
			}
		}
		confidence := parsed.ConfidenceScore
		if confidence == 0 {
			confidence = 0.8
		}
		factors := parsed.Factors
		if factors == nil {
			factors = []string{}
		}
		return domain.TimePrediction{
			PredictedCategory: *parsed.PredictedCategory,
			EstimatedHours:    int(hours64),
			ConfidenceScore:   confidence,
			Factors:           factors,
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
		}
	}

	lower := strings.ToLower(response)

	category := "medium"
	hours := domain.HoursForCategory(category)
	for _, c := range domain.TimeCategories {
		if strings.Contains(lower, strings.ReplaceAll(c.Name, "_", " ")) || strings.Contains(lower, c.Name) {
			category = c.Name
			hours = c.Hours
			break
		}
	}

	// An explicit "<digits> hour" mention overrides the category default.
	for _, line := range strings.Split(response, "\n") {
		if !strings.Contains(strings.ToLower(line), "hour") {
			continue
		}
		words := strings.Fields(line)
		for i, word := range words {
			if i == 0 || !strings.Contains(strings.ToLower(word), "hour") {
				continue
			}
			if n, ok := parseDigits(words[i-1]); ok {
				hours = n
				break
			}
		}
	}

	return domain.TimePrediction{
		PredictedCategory: category,
		EstimatedHours:    hours,
		ConfidenceScore:   0.7,
		Factors:           []string{"issue complexity", "required actions", "team workload"},
		Timestamp:         time.Now().UTC().Format(time.RFC3339),
	}
}

// titleCase renders a snake_case category name as a spaced title,
// e.g. "very_quick" -> "Very Quick".
func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// parseDigits parses a token consisting solely of decimal digits.
func parseDigits(token string) (int, bool) {
	if token == "" {
		return 0, false
	}
	n := 0
	for _, r := range token {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}
