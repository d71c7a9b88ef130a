package agent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestParseTimePredictionResponse_JSON(t *testing.T) {
	prediction := parseTimePredictionResponse(`{
		"predicted_category": "quick",
		"hours": 3,
		"confidence_score": 0.9,
		"factors": ["simple issue"]
	}`)

	assert.Equal(t, "quick", prediction.PredictedCategory)
	assert.Equal(t, 3, prediction.EstimatedHours)
	assert.Equal(t, 0.9, prediction.ConfidenceScore)
	assert.Equal(t, []string{"simple issue"}, prediction.Factors)
	assert.NotEmpty(t, prediction.Timestamp)
}

func TestParseTimePredictionResponse_JSONDefaults(t *testing.T) {
	prediction := parseTimePredictionResponse(`{"predicted_category": "long", "hours": 8.5}`)

	assert.Equal(t, "long", prediction.PredictedCategory)
	assert.Equal(t, 8, prediction.EstimatedHours)
	assert.Equal(t, 0.8, prediction.ConfidenceScore)
	assert.NotNil(t, prediction.Factors)
	assert.Empty(t, prediction.Factors)
}

func TestParseTimePredictionResponse_JSONMissingHoursUsesHeuristic(t *testing.T) {
	// structurally valid JSON without both required fields falls through to
	// the text scan
	prediction := parseTimePredictionResponse(`{"predicted_category": "complex"}`)

	assert.Equal(t, "complex", prediction.PredictedCategory)
	assert.Equal(t, 48, prediction.EstimatedHours)
	assert.Equal(t, 0.7, prediction.ConfidenceScore)
}

func TestParseTimePredictionResponse_CategoryOrder(t *testing.T) {
	prediction := parseTimePredictionResponse("this should be very quick to handle")

	assert.Equal(t, "very_quick", prediction.PredictedCategory)
	assert.Equal(t, 1, prediction.EstimatedHours)
}

func TestParseTimePredictionResponse_ExplicitHoursOverride(t *testing.T) {
	prediction := parseTimePredictionResponse("This is a quick fix.\nEstimated: 3 hours of work")

	assert.Equal(t, "quick", prediction.PredictedCategory)
	assert.Equal(t, 3, prediction.EstimatedHours)
}

func TestParseTimePredictionResponse_Default(t *testing.T) {
	prediction := parseTimePredictionResponse("hard to say")

	assert.Equal(t, "medium", prediction.PredictedCategory)
	assert.Equal(t, 4, prediction.EstimatedHours)
	assert.Equal(t, 0.7, prediction.ConfidenceScore)
	assert.NotEmpty(t, prediction.Factors)
}

func TestPredictResolutionTime(t *testing.T) {
	gen := &stubGenerator{reply: `{"predicted_category": "medium", "hours": 4}`}
	predictor := NewPredictor(gen)

	prediction := predictor.PredictResolutionTime(context.Background(), domain.Conversation{}, "Printer jam", domain.ActionSet{})

	assert.Equal(t, "medium", prediction.PredictedCategory)
	assert.Equal(t, 4, prediction.EstimatedHours)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "Printer jam")
	assert.Contains(t, prompt, "- Very Quick: 1 hours")
	assert.Contains(t, prompt, "- Complex: 48 hours")
}

func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Very Quick", titleCase("very_quick"))
	assert.Equal(t, "Medium", titleCase("medium"))
}

func TestHoursForCategory(t *testing.T) {
	assert.Equal(t, 2, domain.HoursForCategory("quick"))
	assert.Equal(t, 0, domain.HoursForCategory("unknown"))
	assert.True(t, domain.IsKnownTimeCategory("very_long"))
	assert.False(t, domain.IsKnownTimeCategory("instant"))
}
