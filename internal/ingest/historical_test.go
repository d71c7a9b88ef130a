package ingest

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskflow-ai/deskflow/internal/domain"
)

func TestGenerateHistoricalTickets(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	tickets := GenerateHistoricalTickets(50, rng)

	require.Len(t, tickets, 50)
	assert.Equal(t, "TICK-1000", tickets[0].TicketID)
	assert.Equal(t, "TICK-1049", tickets[49].TicketID)

	for _, ticket := range tickets {
		assert.Contains(t, issueTypes, ticket.IssueType)
		assert.True(t, domain.IsKnownTeam(ticket.AssignedTeam))
		assert.Contains(t, ticketStatuses, ticket.Status)
		assert.Contains(t, ticketPriorities, ticket.Priority)
		assert.GreaterOrEqual(t, ticket.ResolutionTimeHours, 1)
		assert.LessOrEqual(t, ticket.ResolutionTimeHours, 72)
		assert.GreaterOrEqual(t, ticket.CustomerSatisfaction, 1)
		assert.LessOrEqual(t, ticket.CustomerSatisfaction, 5)
		assert.NotEmpty(t, ticket.ResolutionDetails)
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, ticket.CreatedDate)
	}
}

func TestGenerateHistoricalTickets_HoursCorrelateWithIssueType(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	tickets := GenerateHistoricalTickets(500, rng)

	for _, ticket := range tickets {
		switch {
		case strings.Contains(ticket.IssueType, "Technical"), strings.Contains(ticket.IssueType, "Bug"):
			assert.GreaterOrEqual(t, ticket.ResolutionTimeHours, 4, "issue type %s", ticket.IssueType)
		case strings.Contains(ticket.IssueType, "Password"), strings.Contains(ticket.IssueType, "Login"):
			assert.LessOrEqual(t, ticket.ResolutionTimeHours, 4, "issue type %s", ticket.IssueType)
		}
	}
}

func TestGenerateHistoricalTickets_TemplatedResolutions(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	tickets := GenerateHistoricalTickets(200, rng)

	for _, ticket := range tickets {
		templates, ok := resolutionTemplates[ticket.IssueType]
		if !ok {
			templates = defaultResolutions
		}
		assert.Contains(t, templates, ticket.ResolutionDetails)
	}
}

func TestHistoricalCSVRoundTrip(t *testing.T) {
	tickets := []domain.HistoricalTicket{
		{
			TicketID:             "TICK-1000",
			IssueType:            "Billing Issue",
			AssignedTeam:         "Billing Support",
			Status:               "Resolved",
			Priority:             "High",
			ResolutionTimeHours:  6,
			ResolutionDetails:    "Processed refund",
			CustomerSatisfaction: 4,
			CreatedDate:          "2023-05-01",
		},
		{
			TicketID:             "TICK-1001",
			IssueType:            "API Error",
			AssignedTeam:         "Technical Support",
			Status:               "Escalated",
			Priority:             "Critical",
			ResolutionTimeHours:  30,
			ResolutionDetails:    "Applied standard fix",
			CustomerSatisfaction: 2,
			CreatedDate:          "2023-05-10",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteHistoricalCSV(&buf, tickets))

	parsed, err := ReadHistoricalCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, tickets, parsed)
}

func TestReadHistoricalCSV_BadHeader(t *testing.T) {
	_, err := ReadHistoricalCSV(strings.NewReader("ticket_id,issue_type\nTICK-1,Billing\n"))
	assert.Error(t, err)
}

func TestReadHistoricalCSV_BadNumber(t *testing.T) {
	csv := strings.Join(csvColumns, ",") + "\nTICK-1,Billing,Team,Open,Low,notanumber,fixed,5,2023-01-01\n"

	_, err := ReadHistoricalCSV(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution_time_hours")
}
