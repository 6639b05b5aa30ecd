package queryleads

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/workers/data-access/query-leads/queries"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

var leadDetailColumns = []string{
	"id", "company", "industry", "location", "employees", "stage", "website",
	"notes", "company_description", "score", "score_reason", "contact_name",
	"contact_role", "contact_email", "email_subject", "email_body", "status",
	"created_at",
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name           string
		input          *Input
		mockQuery      func(mock sqlmock.Sqlmock)
		validateOutput func(t *testing.T, output *Output)
	}{
		{
			name:  "lead full details",
			input: &Input{QueryType: string(models.QueryTypeLeadFullDetails), LeadID: 42},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(leadDetailColumns).AddRow(
					int64(42), "Summit Wellness Group", "Wellness", "Austin, TX",
					12, "growth", "https://summitwellness.example",
					"Founder working 70-hour weeks", "Boutique wellness operator",
					95.0, "Industry 'Wellness' is an Adina-served market (+30)",
					"Dana Reyes", "Founder", "dana@summitwellness.example",
					"Summit Wellness Group + ADINA: Operational support for growth growth",
					"Hi Dana,", "qualified",
					time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
				)
				mock.ExpectQuery(`SELECT id, company, industry, location, employees, stage, website, notes, company_description, score, score_reason, contact_name, contact_role, contact_email, email_subject, email_body, status, created_at FROM leads WHERE id = \$1`).
					WithArgs(int64(42)).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)
				assert.GreaterOrEqual(t, output.QueryExecutionTime, int64(0))

				data := output.Data.(map[string]interface{})
				assert.Equal(t, int64(42), data["id"])
				assert.Equal(t, "Summit Wellness Group", data["company"])
				assert.Equal(t, 95.0, data["score"])
				assert.Equal(t, 12, data["employees"])
				assert.Equal(t, "qualified", data["status"])
				assert.Equal(t, "2026-08-01T12:00:00Z", data["createdAt"])
			},
		},
		{
			name:  "leads by status",
			input: &Input{QueryType: string(models.QueryTypeLeadsByStatus), Status: "qualified"},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "company", "industry", "location", "score", "status",
					"contact_name", "contact_email",
				}).AddRow(
					int64(1), "Summit Wellness Group", "Wellness", "Austin, TX",
					95.0, "qualified", "Dana Reyes", "dana@summitwellness.example",
				).AddRow(
					int64(2), "Harbor Clinics", "Healthcare", "Boston, MA",
					70.0, "qualified", "Sam Ortiz", "sam@harborclinics.example",
				)
				mock.ExpectQuery(`SELECT id, company, industry, location, score, status, contact_name, contact_email FROM leads WHERE status = \$1 ORDER BY score DESC, id LIMIT \$2`).
					WithArgs("qualified", 100).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)

				data := output.Data.([]map[string]interface{})
				assert.Equal(t, "Summit Wellness Group", data[0]["company"])
				assert.Equal(t, 95.0, data[0]["score"])
				assert.Equal(t, "Harbor Clinics", data[1]["company"])
			},
		},
		{
			name:  "leads pending outreach",
			input: &Input{QueryType: string(models.QueryTypeLeadsPendingOutreach), Limit: 10},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "company", "score", "contact_name", "contact_email", "email_subject",
				}).AddRow(
					int64(7), "Crafted Interiors", 82.0, "Lee Park",
					"lee@crafted.example", "Crafted Interiors + ADINA: Building systems that scale",
				)
				mock.ExpectQuery(`SELECT id, company, score, contact_name, contact_email, email_subject FROM leads WHERE status = 'approved' AND contact_email <> '' ORDER BY score DESC, id LIMIT \$1`).
					WithArgs(10).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.([]map[string]interface{})
				assert.Equal(t, "lee@crafted.example", data[0]["contactEmail"])
			},
		},
		{
			name:  "sent email history",
			input: &Input{QueryType: string(models.QueryTypeSentEmailHistory), LeadID: 42},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "message_id", "lead_id", "to_email", "subject", "provider", "sent_at",
				}).AddRow(
					int64(9), "msg-123", int64(42), "dana@summitwellness.example",
					"Summit Wellness Group + ADINA: Building systems that scale", "ses",
					time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC),
				)
				mock.ExpectQuery(`SELECT id, message_id, lead_id, to_email, subject, provider, sent_at FROM sent_emails WHERE lead_id = \$1 ORDER BY sent_at DESC`).
					WithArgs(int64(42)).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 1, output.RowCount)

				data := output.Data.([]map[string]interface{})
				assert.Equal(t, "msg-123", data[0]["messageId"])
				assert.Equal(t, "ses", data[0]["provider"])
				assert.Equal(t, "2026-08-20T09:30:00Z", data[0]["sentAt"])
			},
		},
		{
			name:  "daily send stats",
			input: &Input{QueryType: string(models.QueryTypeDailySendStats), Days: 3},
			mockQuery: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"day", "count"}).
					AddRow(time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), 14).
					AddRow(time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC), 50)
				mock.ExpectQuery(`SELECT day, count FROM daily_email_counts WHERE day >= CURRENT_DATE - \$1 ORDER BY day DESC`).
					WithArgs(3).
					WillReturnRows(rows)
			},
			validateOutput: func(t *testing.T, output *Output) {
				assert.Equal(t, 2, output.RowCount)

				data := output.Data.([]map[string]interface{})
				assert.Equal(t, "2026-08-21", data[0]["day"])
				assert.Equal(t, 14, data[0]["count"])
				assert.Equal(t, 50, data[1]["count"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer db.Close()

			tt.mockQuery(mock)

			handler := NewHandler(createTestConfig(), db, createTestLogger(t))

			output, err := handler.execute(context.Background(), tt.input)

			assert.NoError(t, err)
			assert.NotNil(t, output)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tt.validateOutput != nil {
				tt.validateOutput(t, output)
			}
		})
	}
}

func TestHandler_Execute_QueryErrors(t *testing.T) {
	tests := []struct {
		name          string
		input         *Input
		mockQuery     func(mock sqlmock.Sqlmock)
		expectedErr   error
		errorContains string
	}{
		{
			name:          "unknown query type",
			input:         &Input{QueryType: "unknown_query"},
			expectedErr:   ErrInvalidQueryType,
			errorContains: "INVALID_QUERY_TYPE",
		},
		{
			name:  "database error",
			input: &Input{QueryType: string(models.QueryTypeLeadFullDetails), LeadID: 42},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM leads WHERE id = \$1`).
					WithArgs(int64(42)).
					WillReturnError(errors.New("database connection failed"))
			},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name:          "missing lead ID",
			input:         &Input{QueryType: string(models.QueryTypeLeadFullDetails)},
			expectedErr:   queries.ErrMissingParam,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name:  "no rows found",
			input: &Input{QueryType: string(models.QueryTypeLeadFullDetails), LeadID: 404},
			mockQuery: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM leads WHERE id = \$1`).
					WithArgs(int64(404)).
					WillReturnError(sql.ErrNoRows)
			},
			expectedErr:   ErrQueryExecutionFailed,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
		{
			name:          "missing status",
			input:         &Input{QueryType: string(models.QueryTypeLeadsByStatus)},
			expectedErr:   queries.ErrMissingParam,
			errorContains: "QUERY_EXECUTION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			if err != nil {
				t.Fatalf("failed to create mock: %v", err)
			}
			defer db.Close()

			if tt.mockQuery != nil {
				tt.mockQuery(mock)
			}

			handler := NewHandler(createTestConfig(), db, createTestLogger(t))
			output, err := handler.execute(context.Background(), tt.input)

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.expectedErr) || errors.Is(err, ErrQueryExecutionFailed))
			assert.Contains(t, err.Error(), tt.errorContains)
			assert.Nil(t, output)
		})
	}
}

func TestHandler_Execute_Timeout(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create mock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`FROM leads WHERE id = \$1`).
		WithArgs(int64(42)).
		WillDelayFor(200 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows(leadDetailColumns))

	config := createTestConfig()
	config.Timeout = 50 * time.Millisecond

	handler := NewHandler(config, db, createTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
	defer cancel()

	output, err := handler.execute(ctx, &Input{
		QueryType: string(models.QueryTypeLeadFullDetails), LeadID: 42,
	})

	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrQueryTimeout)
	assert.Nil(t, output)
}

func TestHandler_EdgeCases(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	t.Run("nil input", func(t *testing.T) {
		output, err := handler.execute(context.Background(), nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "input cannot be nil")
		assert.Nil(t, output)
	})

	t.Run("empty query type", func(t *testing.T) {
		output, err := handler.execute(context.Background(), &Input{})
		assert.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidQueryType)
		assert.Nil(t, output)
	})

	t.Run("empty result set is not an error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		if err != nil {
			t.Fatalf("failed to create mock: %v", err)
		}
		defer db.Close()

		mock.ExpectQuery(`FROM leads WHERE status = \$1`).
			WithArgs("closed", 100).
			WillReturnRows(sqlmock.NewRows([]string{
				"id", "company", "industry", "location", "score", "status",
				"contact_name", "contact_email",
			}))

		handler := NewHandler(createTestConfig(), db, createTestLogger(t))
		output, err := handler.execute(context.Background(), &Input{
			QueryType: string(models.QueryTypeLeadsByStatus), Status: "closed",
		})

		assert.NoError(t, err)
		assert.Equal(t, 0, output.RowCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
