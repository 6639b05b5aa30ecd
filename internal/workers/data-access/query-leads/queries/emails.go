package queries

import (
	"context"
	"database/sql"
	"time"
)

func SentEmailHistory(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	leadID, ok := params["leadId"].(int64)
	if !ok || leadID == 0 {
		return nil, 0, 0, ErrMissingParam
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `SELECT id, message_id, lead_id, to_email, subject, provider, sent_at FROM sent_emails WHERE lead_id = $1 ORDER BY sent_at DESC`, leadID)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var id, rowLeadID int64
		var messageID, toEmail, subject string
		var provider sql.NullString
		var sentAt sql.NullTime
		err := rows.Scan(&id, &messageID, &rowLeadID, &toEmail, &subject, &provider, &sentAt)
		if err != nil {
			return nil, 0, 0, err
		}
		entry := map[string]interface{}{
			"id":        id,
			"messageId": messageID,
			"leadId":    rowLeadID,
			"toEmail":   toEmail,
			"subject":   subject,
			"provider":  provider.String,
		}
		if sentAt.Valid {
			entry["sentAt"] = sentAt.Time.UTC().Format(time.RFC3339)
		}
		results = append(results, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}

// DailySendStats returns the per-day send counts for the trailing window,
// newest day first. Days without sends have no row.
func DailySendStats(ctx context.Context, db *sql.DB, params map[string]interface{}) (interface{}, int, int64, error) {
	days := 7
	if v, ok := params["days"].(int); ok && v > 0 {
		days = v
	}

	start := time.Now()

	rows, err := db.QueryContext(ctx, `SELECT day, count FROM daily_email_counts WHERE day >= CURRENT_DATE - $1 ORDER BY day DESC`, days)
	if err != nil {
		return nil, 0, 0, err
	}
	defer rows.Close()

	var results []map[string]interface{}
	for rows.Next() {
		var day time.Time
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, 0, 0, err
		}
		results = append(results, map[string]interface{}{
			"day":   day.Format("2006-01-02"),
			"count": count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, 0, err
	}

	execTime := time.Since(start).Milliseconds()
	return results, len(results), execTime, nil
}
