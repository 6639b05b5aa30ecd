package queries

import (
	"context"
	"database/sql"
	"time"
)

func LeadFullDetails(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	leadID, ok := params["leadId"].(int64)
	if !ok || leadID == 0 {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	var id int64
	var score float64
	var company, status string
	var employees sql.NullInt64
	var createdAt sql.NullTime
	var industry, location, stage, website, notes, description sql.NullString
	var scoreReason, contactName, contactRole, contactEmail sql.NullString
	var emailSubject, emailBody sql.NullString

	err := db.QueryRowContext(ctx, `SELECT id, company, industry, location, employees, stage, website, notes, company_description, score, score_reason, contact_name, contact_role, contact_email, email_subject, email_body, status, created_at FROM leads WHERE id = $1`, leadID).Scan(
		&id, &company, &industry, &location, &employees, &stage,
		&website, &notes, &description, &score, &scoreReason,
		&contactName, &contactRole, &contactEmail, &emailSubject, &emailBody,
		&status, &createdAt,
	)
	if err != nil {
		return nil, 0, 0, err
	}

	result := map[string]interface{}{
		"id":                 id,
		"company":            company,
		"industry":           industry.String,
		"location":           location.String,
		"stage":              stage.String,
		"website":            website.String,
		"notes":              notes.String,
		"companyDescription": description.String,
		"score":              score,
		"scoreReason":        scoreReason.String,
		"contactName":        contactName.String,
		"contactRole":        contactRole.String,
		"contactEmail":       contactEmail.String,
		"emailSubject":       emailSubject.String,
		"emailBody":          emailBody.String,
		"status":             status,
	}
	if employees.Valid {
		result["employees"] = int(employees.Int64)
	}
	if createdAt.Valid {
		result["createdAt"] = createdAt.Time.UTC().Format(time.RFC3339)
	}

	execTime := time.Since(start).Milliseconds()
	return result, 1, execTime, nil
}

func LeadsByStatus(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	status, ok := params["status"].(string)
	if !ok || status == "" {
		return nil, 0, 0, ErrMissingParam
	}
	limit := 100
	if v, ok := params["limit"].(int); ok && v > 0 {
		limit = v
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `SELECT id, company, industry, location, score, status, contact_name, contact_email FROM leads WHERE status = $1 ORDER BY score DESC, id LIMIT $2`, status, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id int64
		var score float64
		var company, rowStatus string
		var industry, location, contactName, contactEmail sql.NullString
		err := rows.Scan(&id, &company, &industry, &location, &score, &rowStatus, &contactName, &contactEmail)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":           id,
			"company":      company,
			"industry":     industry.String,
			"location":     location.String,
			"score":        score,
			"status":       rowStatus,
			"contactName":  contactName.String,
			"contactEmail": contactEmail.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

// LeadsPendingOutreach lists approved leads that have a recipient address,
// best score first. These are the leads the send stage will pick up next.
func LeadsPendingOutreach(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	limit := 100
	if v, ok := params["limit"].(int); ok && v > 0 {
		limit = v
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `SELECT id, company, score, contact_name, contact_email, email_subject FROM leads WHERE status = 'approved' AND contact_email <> '' ORDER BY score DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id int64
		var score float64
		var company string
		var contactName, contactEmail, emailSubject sql.NullString
		err := rows.Scan(&id, &company, &score, &contactName, &contactEmail, &emailSubject)
		if err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"id":           id,
			"company":      company,
			"score":        score,
			"contactName":  contactName.String,
			"contactEmail": contactEmail.String,
			"emailSubject": emailSubject.String,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
