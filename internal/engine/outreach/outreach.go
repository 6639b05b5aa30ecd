// Package outreach composes cold outreach emails from lead data, the
// industry relevance table, and the knowledge pack. Drafting is a pure
// function of its inputs; the same lead always yields the same draft.
package outreach

import (
	"fmt"
	"strings"

	"leadflow-workers/internal/engine/lexicon"
	"leadflow-workers/internal/engine/scoring"
	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/models"
)

// Rebuttal keys looked up in the knowledge pack's objection map.
const (
	industryObjection   = "How do we know it will work for our industry?"
	consultantObjection = "We've tried consultants before"
)

// Drafter generates outreach email drafts. Safe for concurrent use.
type Drafter struct {
	pack *knowledge.Pack
}

func NewDrafter(pack *knowledge.Pack) *Drafter {
	return &Drafter{pack: pack}
}

// IndustryRelevanceFor resolves the problems/services entry for an industry:
// exact lowercase match, then partial match over table keys in order, then
// the default entry.
func IndustryRelevanceFor(industry string) lexicon.IndustryRelevance {
	industryLower := strings.TrimSpace(strings.ToLower(industry))

	if relevance, ok := lexicon.LookupIndustry(industryLower); ok {
		return relevance
	}

	for _, key := range lexicon.IndustryKeys() {
		if strings.Contains(industryLower, key) || strings.Contains(key, industryLower) {
			relevance, _ := lexicon.LookupIndustry(key)
			return relevance
		}
	}

	return lexicon.DefaultRelevance
}

// firstSentence truncates at the first period, keeping it.
func firstSentence(text string) string {
	if idx := strings.Index(text, "."); idx >= 0 {
		return text[:idx+1]
	}
	return text
}

// firstClause truncates at the first semicolon, dropping it.
func firstClause(text string) string {
	if idx := strings.Index(text, ";"); idx >= 0 {
		return text[:idx]
	}
	return text
}

// rebuttalLine picks at most one objection rebuttal sentence. Regulated
// industries get the industry-fit rebuttal; leads whose notes mention prior
// consultants get the tried-consultants rebuttal.
func (d *Drafter) rebuttalLine(lead models.Lead) string {
	if scoring.IsRegulatedIndustry(lead.Industry) {
		if rebuttal, ok := d.pack.Rebuttal(industryObjection); ok && rebuttal != "" {
			return firstSentence(rebuttal)
		}
		return ""
	}

	notesLower := strings.ToLower(lead.Notes)
	if strings.Contains(notesLower, "consultant") ||
		strings.Contains(notesLower, "fractional coo") ||
		strings.Contains(notesLower, "fractional co") {
		if rebuttal, ok := d.pack.Rebuttal(consultantObjection); ok && rebuttal != "" {
			return firstSentence(rebuttal)
		}
	}
	return ""
}

// proofPointLine finds a proof point mentioning the lead's industry. Only
// emitted when the industry is confirmed in the served-industries list.
func (d *Drafter) proofPointLine(industry string) string {
	if industry == "" {
		return ""
	}
	industryLower := strings.ToLower(industry)

	served := false
	for _, s := range d.pack.ServedIndustriesLower() {
		if strings.Contains(s, industryLower) || strings.Contains(industryLower, s) {
			served = true
			break
		}
	}
	if !served {
		return ""
	}

	for _, proof := range d.pack.ProofPoints {
		if strings.Contains(strings.ToLower(proof), industryLower) {
			return fmt.Sprintf("We've seen this work in %s: %s.", industry, firstClause(proof))
		}
	}
	return ""
}

// DraftOutreachEmail generates a personalized outreach email.
//
// The draft references company, industry, location, and stage where present,
// leads with the primary problem for the industry, and closes with a soft
// CTA. One contextual rebuttal sentence or one proof point line may be
// added, never both.
func (d *Drafter) DraftOutreachEmail(lead models.Lead) models.EmailDraft {
	company := lead.Company
	industry := lead.Industry
	if industry == "" {
		industry = "your industry"
	}

	relevance := IndustryRelevanceFor(industry)
	primaryProblem := strings.ToLower(relevance.Problems[0])

	var subject string
	if lead.Stage != "" {
		subject = fmt.Sprintf("%s + ADINA: Operational support for %s growth", company, lead.Stage)
	} else {
		subject = fmt.Sprintf("%s + ADINA: Building systems that scale", company)
	}

	locationMention := ""
	if lead.Location != "" {
		locationMention = fmt.Sprintf(" based in %s", lead.Location)
	}

	bodyLines := []string{
		"Hi,",
		"",
		fmt.Sprintf("I came across %s%s and noticed you're scaling in %s.", company, locationMention, industry),
		"",
	}

	switch {
	case strings.Contains(primaryProblem, "burnout"):
		bodyLines = append(bodyLines,
			"At this stage, founders often find themselves working 60+ hour weeks while their teams lack the systems to execute consistently.")
	case strings.Contains(primaryProblem, "bottleneck"):
		bodyLines = append(bodyLines,
			"At this stage, leadership often becomes the bottleneck—every decision runs through you because the systems don't exist for your team to own execution.")
	default:
		bodyLines = append(bodyLines,
			"At this stage, growth often stalls because execution breaks down under complexity—teams operate with guesswork, and critical systems never get built.")
	}

	bodyLines = append(bodyLines,
		"",
		"ADINA works alongside founders as an operational co-founder. We design, build, and transfer the operating systems your team needs—SOPs, workflows, accountability structures—so you can scale without burning out.")

	if rebuttal := d.rebuttalLine(lead); rebuttal != "" {
		bodyLines = append(bodyLines, "", rebuttal)
	} else if proof := d.proofPointLine(lead.Industry); proof != "" {
		bodyLines = append(bodyLines, "", proof)
	}

	bodyLines = append(bodyLines,
		"",
		"Would a 15-minute call make sense to see if there's a fit?",
		"",
		"Best,",
		"Ify",
		"ADINA & Co.")

	return models.EmailDraft{
		Subject: subject,
		Body:    strings.Join(bodyLines, "\n"),
	}
}
