package domain

// ResolutionStep is one step of a recommended resolution. Details is optional;
// heuristic-parsed steps carry the whole line in Action with empty Details.
type ResolutionStep struct {
	Action  string `json:"action"`
	Details string `json:"details,omitempty"`
}

// ResolutionRecommendation is the recommendation stage's output.
type ResolutionRecommendation struct {
	ImmediateSteps         []ResolutionStep `json:"immediate_steps"`
	CompleteResolutionPath []ResolutionStep `json:"complete_resolution_path"`
	Reasoning              string           `json:"reasoning"`
	ConfidenceScore        float64          `json:"confidence_score"`
	Timestamp              string           `json:"timestamp,omitempty"`
}
