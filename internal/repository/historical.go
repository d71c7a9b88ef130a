package repository

import (
	"context"

	"github.com/deskflow-ai/deskflow/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoricalRepository handles the imported historical ticket corpus. Rows
// are append-only reference data.
type HistoricalRepository struct {
	db dbtx
}

func NewHistoricalRepository(pool *pgxpool.Pool) *HistoricalRepository {
	return &HistoricalRepository{db: pool}
}

func NewHistoricalRepositoryWithTx(tx pgx.Tx) *HistoricalRepository {
	return &HistoricalRepository{db: tx}
}

// Insert appends one historical ticket and returns its record id.
func (r *HistoricalRepository) Insert(ctx context.Context, ticket domain.HistoricalTicket) (int64, error) {
	var recordID int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO historical_data
			(ticket_id, issue_type, assigned_team, status, priority, resolution_time_hours, resolution_details, customer_satisfaction, created_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING record_id`,
		ticket.TicketID,
		ticket.IssueType,
		ticket.AssignedTeam,
		ticket.Status,
		ticket.Priority,
		ticket.ResolutionTimeHours,
		ticket.ResolutionDetails,
		ticket.CustomerSatisfaction,
		nullableString(ticket.CreatedDate),
	).Scan(&recordID)
	return recordID, err
}

// InsertBatch appends a batch of tickets and returns how many were written.
func (r *HistoricalRepository) InsertBatch(ctx context.Context, tickets []domain.HistoricalTicket) (int, error) {
	for i, t := range tickets {
		if _, err := r.Insert(ctx, t); err != nil {
			return i, err
		}
	}
	return len(tickets), nil
}

// GetSimilarByIssueType returns up to limit tickets with the given issue
// type, newest first.
func (r *HistoricalRepository) GetSimilarByIssueType(ctx context.Context, issueType string, limit int) ([]domain.HistoricalTicket, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT record_id, ticket_id, issue_type, assigned_team, status, priority, resolution_time_hours, resolution_details, customer_satisfaction, created_date
		 FROM historical_data WHERE issue_type = $1
		 ORDER BY record_id DESC LIMIT $2`,
		issueType, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistoricalRows(rows)
}

// List returns up to limit tickets, newest first.
func (r *HistoricalRepository) List(ctx context.Context, limit int) ([]domain.HistoricalTicket, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT record_id, ticket_id, issue_type, assigned_team, status, priority, resolution_time_hours, resolution_details, customer_satisfaction, created_date
		 FROM historical_data ORDER BY record_id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanHistoricalRows(rows)
}

func scanHistoricalRows(rows pgx.Rows) ([]domain.HistoricalTicket, error) {
	tickets := []domain.HistoricalTicket{}
	for rows.Next() {
		var t domain.HistoricalTicket
		var createdDate *string
		if err := rows.Scan(
			&t.RecordID, &t.TicketID, &t.IssueType, &t.AssignedTeam, &t.Status,
			&t.Priority, &t.ResolutionTimeHours, &t.ResolutionDetails, &t.CustomerSatisfaction, &createdDate,
		); err != nil {
			return nil, err
		}
		if createdDate != nil {
			t.CreatedDate = *createdDate
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}
