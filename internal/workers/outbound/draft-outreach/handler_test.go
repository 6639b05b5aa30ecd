package draftoutreach

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/engine/outreach"
	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/store"
)

type fakeLeadStore struct {
	leads        map[int64]*models.Lead
	savedSubject string
	savedBody    string
}

func (f *fakeLeadStore) GetLead(_ context.Context, id int64) (*models.Lead, error) {
	lead, ok := f.leads[id]
	if !ok {
		return nil, store.ErrLeadNotFound
	}
	return lead, nil
}

func (f *fakeLeadStore) SaveDraft(_ context.Context, _ int64, subject, body string) error {
	f.savedSubject = subject
	f.savedBody = body
	return nil
}

func newTestHandler(t *testing.T, leadStore LeadStore) *Handler {
	drafter := outreach.NewDrafter(&knowledge.Pack{
		IndustriesServed: []string{"Wellness", "Media and Entertainment"},
		ProofPoints: []string{
			"Scaled Jerz, a media company, from founder-led chaos to a self-managing team; revenue grew 3x",
		},
		ObjectionsAndRebuttals: map[string]string{
			"How do we know it will work for our industry?": "We've built in regulated environments. Details vary.",
		},
	})
	return NewHandler(LoadConfig(), leadStore, drafter,
		&observability.Observability{}, logger.NewTestLogger(t))
}

func TestExecute_DraftsAndPersists(t *testing.T) {
	leadStore := &fakeLeadStore{leads: map[int64]*models.Lead{
		42: {ID: 42, Company: "Acme Wellness", Industry: "Wellness", Stage: "growth", Status: models.StatusQualified},
	}}
	handler := newTestHandler(t, leadStore)

	output, err := handler.Execute(context.Background(), &Input{LeadID: 42})

	require.NoError(t, err)
	assert.Equal(t, "Acme Wellness + ADINA: Operational support for growth growth", output.Subject)
	assert.True(t, strings.HasSuffix(output.Body, "ADINA & Co."))
	assert.Equal(t, models.StatusDrafted, output.Status)
	assert.Equal(t, output.Subject, leadStore.savedSubject)
	assert.Equal(t, output.Body, leadStore.savedBody)
}

func TestExecute_InlineLeadPreview(t *testing.T) {
	leadStore := &fakeLeadStore{}
	handler := newTestHandler(t, leadStore)

	output, err := handler.Execute(context.Background(), &Input{
		Lead: &models.Lead{Company: "Preview Co", Industry: "Media"},
	})

	require.NoError(t, err)
	assert.Contains(t, output.Subject, "Preview Co + ADINA")
	assert.Empty(t, leadStore.savedSubject)
}

func TestExecute_LeadNotFound(t *testing.T) {
	handler := newTestHandler(t, &fakeLeadStore{leads: map[int64]*models.Lead{}})

	_, err := handler.Execute(context.Background(), &Input{LeadID: 404})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}

func TestExecute_MissingIdentifiers(t *testing.T) {
	handler := newTestHandler(t, &fakeLeadStore{})

	_, err := handler.Execute(context.Background(), &Input{})

	assert.ErrorIs(t, err, ErrLeadNotFound)
}
