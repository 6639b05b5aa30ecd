// Package store persists leads, sent-email records, and the daily send
// counter in PostgreSQL, and caches company discovery results in Redis.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"leadflow-workers/internal/models"
)

var ErrLeadNotFound = errors.New("lead not found")

// LeadStore wraps the leads, sent_emails, and daily_email_counts tables.
type LeadStore struct {
	db *sql.DB
}

func NewLeadStore(db *sql.DB) *LeadStore {
	return &LeadStore{db: db}
}

const leadColumns = `id, company, industry, location, employees, stage, website,
	notes, company_description, score, score_reason, contact_name, contact_role,
	contact_email, email_subject, email_body, status, source, source_url, created_at`

func scanLead(row *sql.Row) (*models.Lead, error) {
	var lead models.Lead
	var employees sql.NullInt64
	var createdAt sql.NullTime
	var industry, location, stage, website, notes, description sql.NullString
	var scoreReason, contactName, contactRole, contactEmail sql.NullString
	var emailSubject, emailBody, source, sourceURL sql.NullString

	err := row.Scan(
		&lead.ID, &lead.Company, &industry, &location, &employees, &stage,
		&website, &notes, &description, &lead.Score, &scoreReason,
		&contactName, &contactRole, &contactEmail, &emailSubject, &emailBody,
		&lead.Status, &source, &sourceURL, &createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}

	if employees.Valid {
		v := int(employees.Int64)
		lead.Employees = &v
	}
	if createdAt.Valid {
		lead.CreatedAt = createdAt.Time.UTC().Format(time.RFC3339)
	}
	lead.Industry = industry.String
	lead.Location = location.String
	lead.Stage = stage.String
	lead.Website = website.String
	lead.Notes = notes.String
	lead.CompanyDescription = description.String
	lead.ScoreReason = scoreReason.String
	lead.ContactName = contactName.String
	lead.ContactRole = contactRole.String
	lead.ContactEmail = contactEmail.String
	lead.EmailSubject = emailSubject.String
	lead.EmailBody = emailBody.String
	lead.Source = source.String
	lead.SourceURL = sourceURL.String

	return &lead, nil
}

func (s *LeadStore) GetLead(ctx context.Context, id int64) (*models.Lead, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)
	return scanLead(row)
}

// UpdateScore persists the scoring outcome and moves the lead to the given
// pipeline status.
func (s *LeadStore) UpdateScore(ctx context.Context, id int64, score float64, reason, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE leads SET score = $1, score_reason = $2, status = $3 WHERE id = $4`,
		score, reason, status, id)
	if err != nil {
		return fmt.Errorf("update score: %w", err)
	}
	return requireRow(result)
}

// SaveDraft stores the drafted email on the lead and marks it drafted.
func (s *LeadStore) SaveDraft(ctx context.Context, id int64, subject, body string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE leads SET email_subject = $1, email_body = $2, status = $3 WHERE id = $4`,
		subject, body, models.StatusDrafted, id)
	if err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return requireRow(result)
}

func (s *LeadStore) UpdateStatus(ctx context.Context, id int64, status string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE leads SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return requireRow(result)
}

// UpdateEnrichment stores scraped company context on the lead.
func (s *LeadStore) UpdateEnrichment(ctx context.Context, id int64, description, website string) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE leads SET company_description = $1, website = COALESCE(NULLIF($2, ''), website) WHERE id = $3`,
		description, website, id)
	if err != nil {
		return fmt.Errorf("update enrichment: %w", err)
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrLeadNotFound
	}
	return nil
}

// RecordSentEmail inserts the send audit row and marks the lead sent.
func (s *LeadStore) RecordSentEmail(ctx context.Context, email models.SentEmail) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sent_emails (message_id, lead_id, to_email, subject, body, provider, sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		email.MessageID, email.LeadID, email.ToEmail, email.Subject, email.Body,
		email.Provider, email.SentAt)
	if err != nil {
		return fmt.Errorf("insert sent email: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE leads SET status = $1 WHERE id = $2`, models.StatusSent, email.LeadID)
	if err != nil {
		return fmt.Errorf("mark lead sent: %w", err)
	}

	return tx.Commit()
}

// DailySentCount returns how many emails were sent on the given day.
func (s *LeadStore) DailySentCount(ctx context.Context, day time.Time) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(count, 0) FROM daily_email_counts WHERE day = $1`,
		day.Format("2006-01-02")).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("daily sent count: %w", err)
	}
	return count, nil
}

// IncrementDailySent bumps the counter for the given day, creating the row
// on first send.
func (s *LeadStore) IncrementDailySent(ctx context.Context, day time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO daily_email_counts (day, count) VALUES ($1, 1)
		 ON CONFLICT (day) DO UPDATE SET count = daily_email_counts.count + 1`,
		day.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("increment daily sent: %w", err)
	}
	return nil
}
