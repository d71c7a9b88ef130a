package domain

// HistoricalTicket is an imported (or synthetically generated) support record.
// Historical rows are read-only reference data: appended on import, never
// produced or modified by the pipeline.
type HistoricalTicket struct {
	RecordID             int64  `json:"record_id"`
	TicketID             string `json:"ticket_id"`
	IssueType            string `json:"issue_type"`
	AssignedTeam         string `json:"assigned_team"`
	Status               string `json:"status"`
	Priority             string `json:"priority"`
	ResolutionTimeHours  int    `json:"resolution_time_hours"`
	ResolutionDetails    string `json:"resolution_details"`
	CustomerSatisfaction int    `json:"customer_satisfaction"`
	CreatedDate          string `json:"created_date"`
}
