// test/e2e/e2e_test.go
//
// End-to-end pipeline test against real services (PostgreSQL,
// Elasticsearch, Redis). Set LEADFLOW_E2E=1 and start the stack with
// docker compose before running; the test is skipped otherwise.
package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"leadflow-workers/internal/common/config"
	"leadflow-workers/internal/common/database"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/engine/classify"
	"leadflow-workers/internal/engine/followup"
	"leadflow-workers/internal/engine/outreach"
	"leadflow-workers/internal/engine/scoring"
	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/store"

	emailsend "leadflow-workers/internal/workers/communication/email-send"
	queryleads "leadflow-workers/internal/workers/data-access/query-leads"
	searchleads "leadflow-workers/internal/workers/data-access/search-leads"
	classifyreply "leadflow-workers/internal/workers/inbound/classify-reply"
	scorelead "leadflow-workers/internal/workers/leads/score-lead"
	draftfollowup "leadflow-workers/internal/workers/outbound/draft-followup"
	draftoutreach "leadflow-workers/internal/workers/outbound/draft-outreach"
)

type e2eEnv struct {
	cfg      *config.Config
	db       *sql.DB
	pg       *database.PostgresClient
	es       *database.ElasticsearchClient
	log      logger.Logger
	pack     *knowledge.Pack
	playbook *knowledge.Playbook
}

func setupEnv(t *testing.T) *e2eEnv {
	if os.Getenv("LEADFLOW_E2E") != "1" {
		t.Skip("set LEADFLOW_E2E=1 to run against real services")
	}

	cfg, err := config.Load()
	require.NoError(t, err)

	// Force localhost endpoints regardless of deploy config.
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}

	pg, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "postgres must be running")
	require.NoError(t, pg.Ping(context.Background()))
	t.Cleanup(func() { _ = pg.Close() })

	es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	require.NoError(t, err, "elasticsearch must be running")
	require.NoError(t, es.Ping())

	zapLog, _ := zap.NewDevelopment()
	log := logger.NewZapAdapter(zapLog)

	env := &e2eEnv{
		cfg:      cfg,
		db:       pg.GetDB(),
		pg:       pg,
		es:       es,
		log:      log,
		pack:     knowledge.LoadPack("../../configs/knowledge_pack.json", log),
		playbook: knowledge.LoadPlaybook("../../configs/response_playbook.json", log),
	}
	env.createTables(t)
	return env
}

func (e *e2eEnv) createTables(t *testing.T) {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS leads (
			id SERIAL PRIMARY KEY,
			company VARCHAR(255) NOT NULL,
			industry VARCHAR(100),
			location VARCHAR(255),
			employees INTEGER,
			stage VARCHAR(50),
			website VARCHAR(255),
			notes TEXT,
			company_description TEXT,
			score DOUBLE PRECISION DEFAULT 0,
			score_reason TEXT,
			contact_name VARCHAR(255),
			contact_role VARCHAR(100),
			contact_email VARCHAR(255),
			email_subject TEXT,
			email_body TEXT,
			status VARCHAR(50) DEFAULT 'new',
			source VARCHAR(100),
			source_url VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS sent_emails (
			id SERIAL PRIMARY KEY,
			message_id VARCHAR(255) NOT NULL,
			lead_id INTEGER REFERENCES leads(id),
			to_email VARCHAR(255) NOT NULL,
			subject TEXT,
			body TEXT,
			provider VARCHAR(50),
			sent_at TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS daily_email_counts (
			day DATE PRIMARY KEY,
			count INTEGER NOT NULL DEFAULT 0
		)`,
	}
	for _, q := range queries {
		_, err := e.db.ExecContext(context.Background(), q)
		require.NoError(t, err)
	}
}

func (e *e2eEnv) insertLead(t *testing.T, company, industry, location, notes, contactEmail string, employees int) int64 {
	var id int64
	err := e.db.QueryRowContext(context.Background(),
		`INSERT INTO leads (company, industry, location, employees, stage, notes, contact_name, contact_role, contact_email, status)
		 VALUES ($1, $2, $3, $4, 'growth', $5, 'Dana Obi', 'Founder', $6, 'new')
		 RETURNING id`,
		company, industry, location, employees, notes, contactEmail).Scan(&id)
	require.NoError(t, err)
	t.Cleanup(func() {
		e.db.Exec(`DELETE FROM sent_emails WHERE lead_id = $1`, id)
		e.db.Exec(`DELETE FROM leads WHERE id = $1`, id)
	})
	return id
}

// recordingSender keeps the outbound mail in memory so the test never
// talks to a real mail provider.
type recordingSender struct {
	sent []string
}

func (s *recordingSender) Name() string { return "e2e" }

func (s *recordingSender) Send(ctx context.Context, from, to, replyTo, subject, body string) (string, error) {
	s.sent = append(s.sent, to)
	return fmt.Sprintf("e2e-%d", len(s.sent)), nil
}

func TestLeadPipelineE2E(t *testing.T) {
	env := setupEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	leadStore := store.NewLeadStore(env.db)
	obs := &observability.Observability{}

	leadID := env.insertLead(t,
		"Summit Wellness Group", "Wellness", "Austin, TX",
		"Founder working 70 hour weeks, team of 40, no documented SOPs, growth stalling",
		"dana@summitwellness.example", 40)

	// --- 1. Score the lead ---
	scorer := scoring.NewScorer(env.pack)
	scoreHandler := scorelead.NewHandler(
		&scorelead.Config{Timeout: 30 * time.Second, QualifiedThreshold: 70, HotLeadThreshold: 90},
		leadStore, scorer, obs, env.log,
	)
	scoreOut, err := scoreHandler.Execute(ctx, &scorelead.Input{LeadID: leadID})
	require.NoError(t, err)
	assert.Greater(t, scoreOut.Score, 70.0, "a wellness lead with pain signals should qualify")
	assert.NotEmpty(t, scoreOut.Reasons)

	lead, err := leadStore.GetLead(ctx, leadID)
	require.NoError(t, err)
	assert.Equal(t, scoreOut.Score, lead.Score)
	assert.Equal(t, "qualified", lead.Status)

	// --- 2. Draft the outreach email ---
	outreachHandler := draftoutreach.NewHandler(
		&draftoutreach.Config{Timeout: 30 * time.Second},
		leadStore, outreach.NewDrafter(env.pack), obs, env.log,
	)
	draftOut, err := outreachHandler.Execute(ctx, &draftoutreach.Input{LeadID: leadID})
	require.NoError(t, err)
	assert.Contains(t, draftOut.Subject, "Summit Wellness Group")
	assert.NotEmpty(t, draftOut.Body)

	// --- 3. Send it (in-memory provider, real audit trail) ---
	require.NoError(t, leadStore.UpdateStatus(ctx, leadID, "approved"))

	sender := &recordingSender{}
	mailCfg := emailsend.DefaultConfig()
	mailCfg.FromEmail = "outreach@byadina.example"
	sendHandler := emailsend.NewHandler(mailCfg, leadStore, sender, obs, env.log)

	sendOut, err := sendHandler.Execute(ctx, &emailsend.Input{LeadID: leadID})
	require.NoError(t, err)
	assert.True(t, sendOut.Success)
	assert.Equal(t, []string{"dana@summitwellness.example"}, sender.sent)

	var auditCount int
	require.NoError(t, env.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sent_emails WHERE lead_id = $1`, leadID).Scan(&auditCount))
	assert.Equal(t, 1, auditCount)

	// --- 4. Classify the reply and draft the follow-up ---
	classifyHandler := classifyreply.NewHandler(
		&classifyreply.Config{Timeout: 10 * time.Second},
		classify.NewClassifier(env.playbook), leadStore, env.log,
	)
	classifyOut, err := classifyHandler.Execute(ctx, &classifyreply.Input{
		LeadID:    leadID,
		ReplyText: "This sounds good, happy to chat next week. Book a call with my assistant.",
	})
	require.NoError(t, err)
	assert.Equal(t, "positive", classifyOut.Intent)

	followupHandler := draftfollowup.NewHandler(
		&draftfollowup.Config{Timeout: 30 * time.Second},
		leadStore, followup.NewDrafter(env.playbook), obs, env.log,
	)
	followupOut, err := followupHandler.Execute(ctx, &draftfollowup.Input{
		LeadID: leadID,
		Intent: classifyOut.Intent,
	})
	require.NoError(t, err)
	assert.Contains(t, followupOut.Body, "Summit Wellness Group")
}

func TestQueryLeadsE2E(t *testing.T) {
	env := setupEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	leadID := env.insertLead(t,
		"Harbor Clinics", "Healthcare", "Boston, MA",
		"Scaling virtual care team", "ops@harborclinics.example", 120)

	handler := queryleads.NewHandler(
		&queryleads.Config{Timeout: 30 * time.Second},
		env.db, env.log,
	)

	out, err := handler.Execute(ctx, &queryleads.Input{
		QueryType: "lead_full_details",
		LeadID:    leadID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.RowCount)

	details, ok := out.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Harbor Clinics", details["company"])
	assert.Equal(t, "Healthcare", details["industry"])
}

func TestSearchLeadsE2E(t *testing.T) {
	env := setupEnv(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	index := "leads-e2e"
	doc := map[string]interface{}{
		"company":  "Coastal Retreats",
		"industry": "Travel",
		"notes":    "boutique travel operator scaling bookings",
		"score":    82,
		"status":   "qualified",
	}
	body, _ := json.Marshal(doc)
	res, err := esapi.IndexRequest{
		Index:      index,
		DocumentID: "e2e-1",
		Body:       bytes.NewReader(body),
		Refresh:    "true",
	}.Do(ctx, env.es.GetClient())
	require.NoError(t, err)
	res.Body.Close()
	t.Cleanup(func() {
		del, _ := esapi.IndicesDeleteRequest{Index: []string{index}}.Do(context.Background(), env.es.GetClient())
		if del != nil {
			del.Body.Close()
		}
	})

	handler := searchleads.NewHandler(
		&searchleads.Config{Timeout: 30 * time.Second, IndexName: index},
		env.es.GetClient(), env.log,
	)

	out, err := handler.Execute(ctx, &searchleads.Input{
		QueryType: "lead_search",
		Filters:   map[string]interface{}{"keywords": "travel bookings"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.TotalHits)
	assert.Equal(t, "Coastal Retreats", out.Data[0]["company"])
}
