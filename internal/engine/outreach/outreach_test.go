package outreach

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/models"
)

func testPack() *knowledge.Pack {
	return &knowledge.Pack{
		IndustriesServed: []string{
			"Healthcare (including virtual care and regulated environments)",
			"Media and Entertainment",
			"Wellness",
			"Real Estate",
		},
		ProofPoints: []string{
			"Scaled Jerz, a media company, from founder-led chaos to a self-managing team; revenue grew 3x in 18 months",
			"Built the clinical operations backbone for Oshi Health, a virtual healthcare company; systems now run without founder involvement",
		},
		ObjectionsAndRebuttals: map[string]string{
			"We've tried consultants before": "Consultants leave you with a slide deck. We build the systems with your team and transfer ownership before we leave.",
			"How do we know it will work for our industry?": "We've built operating systems in regulated and non-regulated environments alike. The mechanics of execution are industry-agnostic.",
		},
	}
}

func TestDraftOutreachEmail_Subject(t *testing.T) {
	drafter := NewDrafter(testPack())

	t.Run("with stage", func(t *testing.T) {
		draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme", Stage: "Series A"})
		assert.Equal(t, "Acme + ADINA: Operational support for Series A growth", draft.Subject)
	})

	t.Run("without stage", func(t *testing.T) {
		draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme"})
		assert.Equal(t, "Acme + ADINA: Building systems that scale", draft.Subject)
	})
}

func TestDraftOutreachEmail_OpeningLine(t *testing.T) {
	drafter := NewDrafter(testPack())

	t.Run("with location", func(t *testing.T) {
		draft := drafter.DraftOutreachEmail(models.Lead{
			Company: "Glow Studio", Industry: "Beauty", Location: "Miami, FL",
		})
		assert.Contains(t, draft.Body,
			"I came across Glow Studio based in Miami, FL and noticed you're scaling in Beauty.")
	})

	t.Run("without location", func(t *testing.T) {
		draft := drafter.DraftOutreachEmail(models.Lead{Company: "Glow Studio", Industry: "Beauty"})
		assert.Contains(t, draft.Body,
			"I came across Glow Studio and noticed you're scaling in Beauty.")
	})

	t.Run("missing industry uses placeholder", func(t *testing.T) {
		draft := drafter.DraftOutreachEmail(models.Lead{Company: "Glow Studio"})
		assert.Contains(t, draft.Body, "you're scaling in your industry.")
	})
}

func TestDraftOutreachEmail_HookSelection(t *testing.T) {
	drafter := NewDrafter(testPack())

	tests := []struct {
		name     string
		industry string
		wantHook string
	}{
		{"burnout industry", "Wellness", "working 60+ hour weeks"},
		{"bottleneck industry", "Luxury Real Estate", "leadership often becomes the bottleneck"},
		{"generic hook", "Travel", "execution breaks down under complexity"},
		{"unmapped industry gets default entry", "Logistics", "leadership often becomes the bottleneck"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme", Industry: tt.industry})
			assert.Contains(t, draft.Body, tt.wantHook)
		})
	}
}

func TestDraftOutreachEmail_RegulatedIndustryRebuttal(t *testing.T) {
	drafter := NewDrafter(testPack())

	draft := drafter.DraftOutreachEmail(models.Lead{Company: "Homes Co", Industry: "Real Estate"})

	// First sentence only, and the proof-point line must not also appear.
	assert.Contains(t, draft.Body,
		"We've built operating systems in regulated and non-regulated environments alike.")
	assert.NotContains(t, draft.Body, "industry-agnostic")
	assert.NotContains(t, draft.Body, "We've seen this work in")
}

func TestDraftOutreachEmail_ConsultantRebuttal(t *testing.T) {
	drafter := NewDrafter(testPack())

	draft := drafter.DraftOutreachEmail(models.Lead{
		Company:  "Acme Media",
		Industry: "Media",
		Notes:    "Mentioned they've tried a consultant before",
	})

	assert.Contains(t, draft.Body, "Consultants leave you with a slide deck.")
	assert.NotContains(t, draft.Body, "transfer ownership")
	assert.NotContains(t, draft.Body, "We've seen this work in")
}

func TestDraftOutreachEmail_ProofPointLine(t *testing.T) {
	drafter := NewDrafter(testPack())

	draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme Media", Industry: "Media"})

	assert.Contains(t, draft.Body,
		"We've seen this work in Media: Scaled Jerz, a media company, from founder-led chaos to a self-managing team.")
}

func TestDraftOutreachEmail_NoProofPointForUnservedIndustry(t *testing.T) {
	drafter := NewDrafter(testPack())

	draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme", Industry: "Logistics"})

	assert.NotContains(t, draft.Body, "We've seen this work in")
}

func TestDraftOutreachEmail_FixedSections(t *testing.T) {
	drafter := NewDrafter(testPack())

	draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme", Industry: "Travel"})

	assert.True(t, strings.HasPrefix(draft.Body, "Hi,\n"))
	assert.Contains(t, draft.Body, "ADINA works alongside founders as an operational co-founder.")
	assert.Contains(t, draft.Body, "Would a 15-minute call make sense to see if there's a fit?")
	assert.True(t, strings.HasSuffix(draft.Body, "Best,\nIfy\nADINA & Co."))
}

func TestDraftOutreachEmail_Deterministic(t *testing.T) {
	drafter := NewDrafter(testPack())
	lead := models.Lead{Company: "Acme", Industry: "Wellness", Location: "Austin, TX", Stage: "growth"}

	first := drafter.DraftOutreachEmail(lead)
	second := drafter.DraftOutreachEmail(lead)

	assert.Equal(t, first, second)
}

func TestDraftOutreachEmail_EmptyPack(t *testing.T) {
	drafter := NewDrafter(knowledge.EmptyPack())

	draft := drafter.DraftOutreachEmail(models.Lead{Company: "Acme", Industry: "Wellness"})

	assert.NotEmpty(t, draft.Subject)
	assert.Contains(t, draft.Body, "working 60+ hour weeks")
	assert.NotContains(t, draft.Body, "We've seen this work in")
}

func TestIndustryRelevanceFor(t *testing.T) {
	t.Run("exact match", func(t *testing.T) {
		relevance := IndustryRelevanceFor("Healthcare")
		assert.Equal(t, "Inconsistent execution across the organization", relevance.Problems[0])
	})

	t.Run("partial match", func(t *testing.T) {
		relevance := IndustryRelevanceFor("Commercial Real Estate")
		assert.Equal(t, "Executive leadership becoming operational bottlenecks", relevance.Problems[0])
	})

	t.Run("default", func(t *testing.T) {
		relevance := IndustryRelevanceFor("Mining")
		assert.Equal(t, "Operating System Audit & Priority Roadmap", relevance.Services[0])
	})
}
