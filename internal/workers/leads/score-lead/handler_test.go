package scorelead

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/engine/scoring"
	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/store"
)

type fakeLeadStore struct {
	leads       map[int64]*models.Lead
	getErr      error
	updateErr   error
	savedScore  float64
	savedReason string
	savedStatus string
}

func (f *fakeLeadStore) GetLead(_ context.Context, id int64) (*models.Lead, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	lead, ok := f.leads[id]
	if !ok {
		return nil, store.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeLeadStore) UpdateScore(_ context.Context, _ int64, score float64, reason, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.savedScore = score
	f.savedReason = reason
	f.savedStatus = status
	return nil
}

func testScorer() *scoring.Scorer {
	return scoring.NewScorer(&knowledge.Pack{
		IndustriesServed: []string{"Wellness", "Media and Entertainment", "Real Estate"},
	})
}

func newTestHandler(t *testing.T, leadStore LeadStore) *Handler {
	return NewHandler(LoadConfig(), leadStore, testScorer(),
		&observability.Observability{}, logger.NewTestLogger(t))
}

func intPtr(v int) *int { return &v }

func TestExecute_ScoresAndQualifiesLead(t *testing.T) {
	leadStore := &fakeLeadStore{leads: map[int64]*models.Lead{
		42: {
			ID:       42,
			Company:  "Acme Wellness",
			Industry: "Wellness",
			Location: "Austin, TX",
			Notes:    "founder-led, growing fast, urgent need for ops support",
			Status:   models.StatusNew,
		},
	}}
	handler := newTestHandler(t, leadStore)

	output, err := handler.Execute(context.Background(), &Input{LeadID: 42})

	require.NoError(t, err)
	// +30 industry, +20 location, +25 founder-led, +20 revenue scale,
	// +15 strong positive.
	assert.Equal(t, 100.0, output.Score)
	assert.Equal(t, "Hot Lead", output.QualityLabel)
	assert.True(t, output.HotLead)
	assert.Equal(t, models.StatusQualified, output.Status)
	assert.Equal(t, models.StatusQualified, leadStore.savedStatus)
	assert.NotEmpty(t, leadStore.savedReason)
}

func TestExecute_BelowThresholdKeepsStatus(t *testing.T) {
	leadStore := &fakeLeadStore{leads: map[int64]*models.Lead{
		7: {ID: 7, Company: "Tiny Co", Employees: intPtr(2), Status: models.StatusNew},
	}}
	handler := newTestHandler(t, leadStore)

	output, err := handler.Execute(context.Background(), &Input{LeadID: 7})

	require.NoError(t, err)
	assert.Equal(t, 0.0, output.Score)
	assert.Equal(t, models.StatusNew, output.Status)
	assert.False(t, output.HotLead)
}

func TestExecute_NegativeSignalBlocksQualification(t *testing.T) {
	leadStore := &fakeLeadStore{leads: map[int64]*models.Lead{
		8: {
			ID:       8,
			Company:  "Mixed Signals LLC",
			Industry: "Media",
			Location: "New York, NY",
			Notes:    "founder-led, growing fast, urgent need for ops, but not interested right now",
			Status:   models.StatusNew,
		},
	}}
	handler := newTestHandler(t, leadStore)

	output, err := handler.Execute(context.Background(), &Input{LeadID: 8})

	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, output.Status)
	assert.False(t, output.HotLead)
	assert.Contains(t, output.QualityLabel, "Possible Fit")
}

func TestExecute_InlineLeadSkipsPersistence(t *testing.T) {
	leadStore := &fakeLeadStore{}
	handler := newTestHandler(t, leadStore)

	output, err := handler.Execute(context.Background(), &Input{
		Lead: &models.Lead{Company: "Discovery Candidate", Industry: "Wellness"},
	})

	require.NoError(t, err)
	assert.Equal(t, 30.0, output.Score)
	assert.Empty(t, leadStore.savedStatus)
}

func TestExecute_LeadNotFound(t *testing.T) {
	handler := newTestHandler(t, &fakeLeadStore{leads: map[int64]*models.Lead{}})

	_, err := handler.Execute(context.Background(), &Input{LeadID: 404})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_FetchFailure(t *testing.T) {
	handler := newTestHandler(t, &fakeLeadStore{getErr: errors.New("connection refused")})

	_, err := handler.Execute(context.Background(), &Input{LeadID: 1})

	assert.ErrorIs(t, err, ErrLeadFetchFailed)
}

func TestExecute_NilInput(t *testing.T) {
	handler := newTestHandler(t, &fakeLeadStore{})

	_, err := handler.Execute(context.Background(), nil)

	assert.Error(t, err)
}

func TestExecute_MissingIdentifiers(t *testing.T) {
	handler := newTestHandler(t, &fakeLeadStore{})

	_, err := handler.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}
