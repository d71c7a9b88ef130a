package domain

// TimeCategory maps a resolution-time category name to its implied hours.
type TimeCategory struct {
	Name  string
	Hours int
}

// TimeCategories is the fixed category table, in matching order. The heuristic
// parser checks categories in this order so that "very quick" wins over the
// "quick" substring it contains.
var TimeCategories = []TimeCategory{
	{"very_quick", 1},
	{"quick", 2},
	{"medium", 4},
	{"long", 8},
	{"very_long", 24},
	{"complex", 48},
}

// HoursForCategory returns the implied hours for a category name, or 0 when
// the category is unknown.
func HoursForCategory(name string) int {
	for _, c := range TimeCategories {
		if c.Name == name {
			return c.Hours
		}
	}
	return 0
}

// IsKnownTimeCategory reports whether name is one of the enumerated categories.
func IsKnownTimeCategory(name string) bool {
	return HoursForCategory(name) != 0
}

// TimePrediction is the time-prediction stage's output.
type TimePrediction struct {
	PredictedCategory string   `json:"predicted_category"`
	EstimatedHours    int      `json:"estimated_hours"`
	ConfidenceScore   float64  `json:"confidence_score"`
	Factors           []string `json:"factors"`
	Timestamp         string   `json:"timestamp,omitempty"`
}
