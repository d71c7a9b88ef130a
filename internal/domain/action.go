package domain

// Action priorities as produced by the extraction stage. The field stays a
// plain string because model output may carry values outside the enum.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Well-known action statuses.
const (
	StatusPending   = "Pending"
	StatusCompleted = "Completed"
)

// ActionItem is a single extracted follow-up from a conversation.
type ActionItem struct {
	Action   string `json:"action"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

// ActionSet collects the action items extracted from one conversation. The
// total is redundant with len(ActionItems) but kept for the wire format.
type ActionSet struct {
	ActionItems  []ActionItem `json:"action_items"`
	TotalActions int          `json:"total_actions"`
}
