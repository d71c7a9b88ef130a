package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

// Value pools for the synthetic generator.
var (
	issueTypes = []string{
		"Login Problem", "Password Reset", "Account Access", "Billing Issue",
		"Refund Request", "Subscription Cancellation", "Technical Error",
		"Feature Request", "Bug Report", "Product Question", "Service Outage",
		"Mobile App Issue", "Browser Compatibility", "Data Migration", "API Error",
	}

	ticketStatuses   = []string{"Resolved", "Pending", "Escalated", "Closed", "Reopened"}
	ticketPriorities = []string{"Low", "Medium", "High", "Critical"}

	resolutionTemplates = map[string][]string{
		"Login Problem":   {"Reset user password", "Cleared browser cache", "Updated user credentials"},
		"Password Reset":  {"Sent password reset link", "Reset password manually", "Verified security questions"},
		"Billing Issue":   {"Processed refund", "Corrected billing information", "Applied account credit"},
		"Technical Error": {"Applied software patch", "Cleared user data cache", "Reinstalled application"},
	}

	defaultResolutions = []string{"Issue investigated and resolved", "Applied standard fix"}
)

// GenerateHistoricalTickets produces n synthetic historical tickets.
// Resolution hours correlate with the issue type: technical issues and bugs
// run long, password and login issues resolve fast.
func GenerateHistoricalTickets(n int, rng *rand.Rand) []domain.HistoricalTicket {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	tickets := make([]domain.HistoricalTicket, 0, n)
	for i := 0; i < n; i++ {
		issueType := issueTypes[rng.Intn(len(issueTypes))]

		templates, ok := resolutionTemplates[issueType]
		if !ok {
			templates = defaultResolutions
		}

		hours := 1 + rng.Intn(72)
		switch {
		case containsAny(issueType, "Technical", "Bug"):
			hours = 4 + rng.Intn(69)
		case containsAny(issueType, "Password", "Login"):
			hours = 1 + rng.Intn(4)
		}

		created := time.Now().AddDate(0, 0, -(1 + rng.Intn(180)))

		tickets = append(tickets, domain.HistoricalTicket{
			TicketID:             fmt.Sprintf("TICK-%d", i+1000),
			IssueType:            issueType,
			AssignedTeam:         domain.AvailableTeams[rng.Intn(len(domain.AvailableTeams))],
			Status:               ticketStatuses[rng.Intn(len(ticketStatuses))],
			Priority:             ticketPriorities[rng.Intn(len(ticketPriorities))],
			ResolutionTimeHours:  hours,
			ResolutionDetails:    templates[rng.Intn(len(templates))],
			CustomerSatisfaction: 1 + rng.Intn(5),
			CreatedDate:          created.Format("2006-01-02"),
		})
	}
	return tickets
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// csvColumns is the header written and expected by the CSV round-trip.
var csvColumns = []string{
	"ticket_id", "issue_type", "assigned_team", "status", "priority",
	"resolution_time_hours", "resolution_details", "customer_satisfaction", "created_date",
}

// ReadHistoricalCSV parses historical tickets from CSV. The first row must be
// a header naming the expected columns in order.
func ReadHistoricalCSV(r io.Reader) ([]domain.HistoricalTicket, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) != len(csvColumns) {
		return nil, fmt.Errorf("expected %d CSV columns, got %d", len(csvColumns), len(header))
	}

	var tickets []domain.HistoricalTicket
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		hours, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("parsing resolution_time_hours %q: %w", row[5], err)
		}
		satisfaction, err := strconv.Atoi(row[7])
		if err != nil {
			return nil, fmt.Errorf("parsing customer_satisfaction %q: %w", row[7], err)
		}

		tickets = append(tickets, domain.HistoricalTicket{
			TicketID:             row[0],
			IssueType:            row[1],
			AssignedTeam:         row[2],
			Status:               row[3],
			Priority:             row[4],
			ResolutionTimeHours:  hours,
			ResolutionDetails:    row[6],
			CustomerSatisfaction: satisfaction,
			CreatedDate:          row[8],
		})
	}
	return tickets, nil
}

// LoadHistoricalCSV reads historical tickets from a CSV file.
func LoadHistoricalCSV(path string) ([]domain.HistoricalTicket, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening historical CSV: %w", err)
	}
	defer f.Close()
	return ReadHistoricalCSV(f)
}

// WriteHistoricalCSV writes tickets as CSV with a header row.
func WriteHistoricalCSV(w io.Writer, tickets []domain.HistoricalTicket) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvColumns); err != nil {
		return err
	}
	for _, t := range tickets {
		row := []string{
			t.TicketID, t.IssueType, t.AssignedTeam, t.Status, t.Priority,
			strconv.Itoa(t.ResolutionTimeHours), t.ResolutionDetails,
			strconv.Itoa(t.CustomerSatisfaction), t.CreatedDate,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
