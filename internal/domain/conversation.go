package domain

import "strings"

// Turn is one message in a conversation: a sender label, free-text content,
// and a timestamp string. Timestamps are never parsed as dates; turn order is
// chronological order and must be preserved end-to-end.
type Turn struct {
	Sender    string `json:"sender"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// Conversation is an ordered sequence of turns with optional free-form tags.
type Conversation struct {
	ConversationID string `json:"conversation_id"`
	Messages       []Turn `json:"messages"`
	Category       string `json:"category,omitempty"`
	Sentiment      string `json:"sentiment,omitempty"`
	Priority       string `json:"priority,omitempty"`
}

// CustomerTurns returns the customer-sent turns in order. Sender matching is
// case-insensitive on the conventional "Customer" label.
func (c Conversation) CustomerTurns() []Turn {
	var turns []Turn
	for _, t := range c.Messages {
		if strings.EqualFold(t.Sender, "customer") {
			turns = append(turns, t)
		}
	}
	return turns
}

// Entities is the transient keyword-derived context computed per conversation
// and fed into every stage's prompt. It is never persisted independently.
type Entities struct {
	Products          []string `json:"products"`
	Issues            []string `json:"issues"`
	CustomerSentiment string   `json:"customer_sentiment"`
}
