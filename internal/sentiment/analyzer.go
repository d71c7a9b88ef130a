// Package sentiment implements lexicon-based sentiment scoring for customer
// support conversations.
package sentiment

import (
	"strings"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

// evidenceLimit caps how many matched words a result carries per polarity.
const evidenceLimit = 5

// The scoring lexicon. This list is intentionally different from the small
// sentiment word lists used by entity extraction; the two heuristics were
// built separately and behave differently.
var (
	positiveWords = map[string]struct{}{
		"good": {}, "great": {}, "excellent": {}, "amazing": {}, "wonderful": {},
		"fantastic": {}, "terrific": {}, "outstanding": {}, "superb": {},
		"brilliant": {}, "perfect": {}, "happy": {}, "pleased": {},
		"satisfied": {}, "impressed": {}, "thankful": {}, "appreciate": {},
		"helpful": {}, "resolved": {}, "solved": {}, "fixed": {},
	}

	negativeWords = map[string]struct{}{
		"bad": {}, "terrible": {}, "awful": {}, "horrible": {},
		"disappointing": {}, "poor": {}, "inadequate": {}, "unacceptable": {},
		"frustrated": {}, "annoyed": {}, "angry": {}, "upset": {},
		"unhappy": {}, "dissatisfied": {}, "problem": {}, "issue": {},
		"error": {}, "failure": {}, "broken": {}, "useless": {},
		"waste": {}, "difficult": {},
	}
)

// Result is the outcome of scoring a single text.
type Result struct {
	Sentiment        string   `json:"sentiment"`
	Score            float64  `json:"score"`
	PositiveCount    int      `json:"positive_count"`
	NegativeCount    int      `json:"negative_count"`
	PositiveEvidence []string `json:"positive_evidence"`
	NegativeEvidence []string `json:"negative_evidence"`
}

// TurnScore is the score of one customer turn within a conversation.
type TurnScore struct {
	Timestamp string  `json:"timestamp"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`
}

// Shift marks a significant score change between consecutive customer turns.
type Shift struct {
	FromTimestamp string  `json:"from_timestamp"`
	ToTimestamp   string  `json:"to_timestamp"`
	ShiftValue    float64 `json:"shift_value"`
	Direction     string  `json:"direction"`
}

// ConversationResult aggregates sentiment across a whole conversation.
type ConversationResult struct {
	OverallSentiment Result      `json:"overall_sentiment"`
	Progression      []TurnScore `json:"progression"`
	Shifts           []Shift     `json:"shifts"`
}

// Analyzer scores text against the fixed lexicon. It holds no mutable state
// and is safe for concurrent use.
type Analyzer struct{}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze scores a single text. Tokens are whitespace-split lower-cased
// words; score = (positive − negative) / (positive + negative), 0 with no
// hits. Labels switch at ±0.2 and evidence lists are capped at 5 words each,
// in text order.
func (a *Analyzer) Analyze(text string) Result {
	words := strings.Fields(strings.ToLower(text))

	result := Result{
		Sentiment:        "neutral",
		PositiveEvidence: []string{},
		NegativeEvidence: []string{},
	}

	for _, word := range words {
		if _, ok := positiveWords[word]; ok {
			result.PositiveCount++
			if len(result.PositiveEvidence) < evidenceLimit {
				result.PositiveEvidence = append(result.PositiveEvidence, word)
			}
		}
		if _, ok := negativeWords[word]; ok {
			result.NegativeCount++
			if len(result.NegativeEvidence) < evidenceLimit {
				result.NegativeEvidence = append(result.NegativeEvidence, word)
			}
		}
	}

	total := result.PositiveCount + result.NegativeCount
	if total > 0 {
		result.Score = float64(result.PositiveCount-result.NegativeCount) / float64(total)
	}

	if result.Score > 0.2 {
		result.Sentiment = "positive"
	} else if result.Score < -0.2 {
		result.Sentiment = "negative"
	}

	return result
}

// AnalyzeConversation scores the customer side of a conversation: an overall
// score over all customer turns concatenated, a per-turn progression in turn
// order, and shifts between consecutive turns whose scores differ by 0.5 or
// more.
func (a *Analyzer) AnalyzeConversation(conversation domain.Conversation) ConversationResult {
	customerTurns := conversation.CustomerTurns()

	var contents []string
	for _, t := range customerTurns {
		contents = append(contents, t.Content)
	}

	result := ConversationResult{
		OverallSentiment: a.Analyze(strings.Join(contents, " ")),
		Progression:      []TurnScore{},
		Shifts:           []Shift{},
	}

	for _, t := range customerTurns {
		score := a.Analyze(t.Content)
		result.Progression = append(result.Progression, TurnScore{
			Timestamp: t.Timestamp,
			Sentiment: score.Sentiment,
			Score:     score.Score,
		})
	}

	for i := 1; i < len(result.Progression); i++ {
		prev := result.Progression[i-1]
		curr := result.Progression[i]
		shift := curr.Score - prev.Score
		if shift >= 0.5 || shift <= -0.5 {
			direction := "positive"
			if shift < 0 {
				direction = "negative"
			}
			result.Shifts = append(result.Shifts, Shift{
				FromTimestamp: prev.Timestamp,
				ToTimestamp:   curr.Timestamp,
				ShiftValue:    shift,
				Direction:     direction,
			})
		}
	}

	return result
}
