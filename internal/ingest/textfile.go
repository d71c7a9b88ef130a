package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

// The text format has three metadata lines (ID, Category, Sentiment |
// Priority) followed by one `Sender: "content"` line per turn. Turn
// timestamps are synthesized at five-minute intervals from a fixed base.
const (
	timestampBase  = "2023-07-15 "
	startHour      = 10
	minuteInterval = 5
)

// ParseConversation parses the conversation text format.
func ParseConversation(data string) (domain.Conversation, error) {
	lines := strings.Split(data, "\n")
	if len(lines) < 3 {
		return domain.Conversation{}, fmt.Errorf("conversation file needs at least 3 lines, got %d", len(lines))
	}

	conversation := domain.Conversation{
		ConversationID: headerValue(lines[0]),
		Category:       headerValue(lines[1]),
	}
	if conversation.ConversationID == "" {
		conversation.ConversationID = "unknown"
	}
	if conversation.Category == "" {
		conversation.Category = "unknown"
	}

	// Third line reads `Sentiment: Frustrated | Priority: High`; the priority
	// half may carry its own label.
	sentimentPriority := headerValue(lines[2])
	if before, after, found := strings.Cut(sentimentPriority, "|"); found {
		conversation.Sentiment = strings.TrimSpace(before)
		conversation.Priority = strings.TrimSpace(headerOrValue(after))
	}

	hour := startHour
	minute := 0
	for _, line := range lines[3:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		sender, content, found := strings.Cut(line, ":")
		if !found {
			continue
		}

		conversation.Messages = append(conversation.Messages, domain.Turn{
			Sender:    strings.TrimSpace(sender),
			Content:   strings.Trim(strings.TrimSpace(content), `"`),
			Timestamp: fmt.Sprintf("%s%02d:%02d:00", timestampBase, hour, minute),
		})

		minute += minuteInterval
		if minute >= 60 {
			hour++
			minute = 0
		}
	}

	return conversation, nil
}

// headerValue returns the trimmed text after the first colon, or "" when the
// line has no colon.
func headerValue(line string) string {
	_, value, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.TrimSpace(value)
}

// headerOrValue strips an optional `Label:` prefix, returning the text as-is
// when there is none.
func headerOrValue(s string) string {
	if value := headerValue(s); value != "" {
		return value
	}
	return s
}

// LoadConversationFile reads and parses one conversation text file.
func LoadConversationFile(path string) (domain.Conversation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Conversation{}, fmt.Errorf("reading conversation file: %w", err)
	}
	return ParseConversation(string(data))
}

// ListConversationFiles returns the .txt files in a directory, sorted by
// name.
func ListConversationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing conversation directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}
