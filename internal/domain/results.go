package domain

import "time"

// ConversationRecord is a stored conversation plus the artifacts of its last
// processing run that live on the conversations row itself.
type ConversationRecord struct {
	Conversation
	Summary   string    `json:"summary,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ProcessingResults re-assembles every stored artifact of a conversation's
// most recent processing run.
type ProcessingResults struct {
	ConversationID string                    `json:"conversation_id"`
	Summary        string                    `json:"summary,omitempty"`
	Actions        ActionSet                 `json:"actions"`
	Routing        *RoutingDecision          `json:"routing,omitempty"`
	Recommendation *ResolutionRecommendation `json:"recommendations,omitempty"`
	Prediction     *TimePrediction           `json:"time_prediction,omitempty"`
}
