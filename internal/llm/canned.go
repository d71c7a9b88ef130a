package llm

import (
	"math/rand"
	"strings"
)

// CannedEmbeddingDimensions is the size of fallback embedding vectors.
const CannedEmbeddingDimensions = 10

// The five fixed response templates substituted when the backend is
// unreachable or the client runs in simulate mode.
const (
	cannedSummary = "This is a simulated summary of the conversation. The customer was experiencing login issues with their account. The agent sent a password reset link to the customer's email, and the customer confirmed they would check their email."

	cannedActions = `{
    "action_items": [
        {
            "action": "Send password reset link to customer",
            "priority": "High",
            "status": "Completed"
        },
        {
            "action": "Follow up with customer to confirm successful login",
            "priority": "Medium",
            "status": "Pending"
        }
    ],
    "total_actions": 2
}`

	cannedRouting = `{
    "recommended_team": "Account Management",
    "confidence": "High",
    "justification": "This is an account access issue related to password problems.",
    "timestamp": "2023-06-15 10:15:00"
}`

	cannedRecommendation = `{
    "immediate_steps": [
        {"action": "Verify refund status", "details": "Check if refund has been processed"},
        {"action": "Send confirmation email", "details": "Ensure customer receives refund confirmation"}
    ],
    "complete_resolution_path": [
        {"action": "Monitor account", "details": "Watch for any similar issues"},
        {"action": "Update documentation", "details": "Document the resolution process"}
    ],
    "reasoning": "Password reset is the standard procedure for login issues when the customer cannot access their account.",
    "confidence_score": 0.85
}`

	cannedPrediction = `{
    "resolution_time_category": "quick",
    "estimated_time": "2 hours",
    "explanation": "Simple issue with standard resolution path."
}`

	cannedUnknown = "I'm not sure how to respond to that prompt."
)

// CannedResponse selects the fixed template matching the prompt. Matching is
// simple substring matching, ordered so that each stage's distinctive keyword
// is checked before keywords that also occur in other stages' prompts as
// prior-stage context: "summarize" and "predict" appear in exactly one prompt
// each, the router prompt embeds action lists and says "recommended team", and
// "time" can appear in quoted conversation text, so it is checked last.
func CannedResponse(prompt string) string {
	p := strings.ToLower(prompt)
	switch {
	case strings.Contains(p, "summarize"):
		return cannedSummary
	case strings.Contains(p, "predict"):
		return cannedPrediction
	case strings.Contains(p, "route") || strings.Contains(p, "team"):
		return cannedRouting
	case strings.Contains(p, "resolution") || strings.Contains(p, "recommend"):
		return cannedRecommendation
	case strings.Contains(p, "action") || strings.Contains(p, "extract"):
		return cannedActions
	case strings.Contains(p, "time"):
		return cannedPrediction
	default:
		return cannedUnknown
	}
}

// CannedEmbedding returns a vector of uniform-random floats with the fixed
// fallback dimensionality.
func CannedEmbedding() []float32 {
	vec := make([]float32, CannedEmbeddingDimensions)
	for i := range vec {
		vec[i] = rand.Float32()
	}
	return vec
}
