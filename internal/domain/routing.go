package domain

// AvailableTeams is the fixed set of teams a ticket can be routed to.
var AvailableTeams = []string{
	"Technical Support",
	"Billing Support",
	"Account Management",
	"Product Support",
	"Security Team",
	"Escalations Team",
	"General Support",
}

// DefaultTeam is used when no team can be determined from the model output.
const DefaultTeam = "General Support"

// Routing confidence levels.
const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// RoutingDecision is the routing stage's output for one conversation.
type RoutingDecision struct {
	RecommendedTeam string `json:"recommended_team"`
	Confidence      string `json:"confidence"`
	Justification   string `json:"justification"`
	Timestamp       string `json:"timestamp"`
}

// IsKnownTeam reports whether team is one of the enumerated routing targets.
func IsKnownTeam(team string) bool {
	for _, t := range AvailableTeams {
		if t == team {
			return true
		}
	}
	return false
}
