// Package scoring computes ICP fit scores for leads.
//
// Scores are additive and transparent: every triggered rule contributes a
// fixed delta and a human-readable reason, and the total is clamped to
// [0, 100]. All matching is deterministic substring containment over the
// lexicon tables so operators can audit any score by hand.
package scoring

import (
	"fmt"
	"strings"

	"leadflow-workers/internal/engine/lexicon"
	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/models"
)

// ScoreResult carries the clamped score and the ordered reason list.
// Reasons follow rule evaluation order (high-score rules first), and the
// list is never empty after scoring.
type ScoreResult struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// NoCriteriaReason is the fallback reason when no rule triggers.
const NoCriteriaReason = "No scoring criteria matched — needs manual review"

// Scorer scores leads against the knowledge pack ICP. It is pure and safe
// for concurrent use; the pack is read-only after construction.
type Scorer struct {
	servedIndustries []string
}

func NewScorer(pack *knowledge.Pack) *Scorer {
	return &Scorer{
		servedIndustries: pack.ServedIndustriesLower(),
	}
}

// notesText combines notes and the scraped company description into a single
// lowercase searchable string. Negative signals deliberately do not use this
// blob; they read only the operator-authored notes field.
func notesText(lead models.Lead) string {
	return strings.ToLower(lead.Notes + " " + lead.CompanyDescription)
}

func containsAny(text string, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			return true
		}
	}
	return false
}

func matchAll(text string, phrases []string) []string {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(text, phrase) {
			matched = append(matched, phrase)
		}
	}
	return matched
}

// IsIndustryMatch reports whether the industry text matches a served
// industry: substring either direction, or any served-industry token longer
// than three characters appearing in the lead's industry string.
func (s *Scorer) IsIndustryMatch(industry string) bool {
	if industry == "" {
		return false
	}
	industryLower := strings.ToLower(industry)

	for _, served := range s.servedIndustries {
		if strings.Contains(industryLower, served) || strings.Contains(served, industryLower) {
			return true
		}
		for _, term := range strings.Fields(served) {
			if len(term) > 3 && strings.Contains(industryLower, term) {
				return true
			}
		}
	}
	return false
}

// IsRegulatedIndustry reports whether the industry is a regulated or
// lower-priority sector. The literal word "regulated" also matches, as a
// hook for manually tagged leads.
func IsRegulatedIndustry(industry string) bool {
	if industry == "" {
		return false
	}
	return containsAny(strings.ToLower(industry), lexicon.RegulatedIndustries)
}

// IsUSOrDubai reports whether the location is in the primary market.
// State names are checked as raw substrings of the whole location, and
// additionally as an exact match of the trailing comma-separated segment.
func IsUSOrDubai(location string) bool {
	if location == "" {
		return false
	}
	locationLower := strings.ToLower(location)

	if strings.Contains(locationLower, "dubai") || strings.Contains(locationLower, "uae") {
		return true
	}

	if containsAny(locationLower, lexicon.USLocations) {
		return true
	}

	if strings.Contains(locationLower, ",") {
		parts := strings.Split(locationLower, ",")
		statePart := strings.TrimSpace(parts[len(parts)-1])
		for _, usLoc := range lexicon.USLocations {
			if usLoc == statePart {
				return true
			}
		}
	}

	return false
}

// IsSmallAgency reports a team below the minimum scale threshold.
func IsSmallAgency(employees *int) bool {
	if employees == nil {
		return false
	}
	return *employees < 5
}

// HasEarlyStageSignal checks the notes blob and the stage field for
// explicit early-stage indicators.
func HasEarlyStageSignal(lead models.Lead) bool {
	if containsAny(notesText(lead), lexicon.EarlyStage) {
		return true
	}
	return containsAny(strings.ToLower(lead.Stage), lexicon.StageEarlyIndicators)
}

// HasNegativeSignal checks the raw notes field (not the combined blob) for
// explicit not-a-fit signals.
func HasNegativeSignal(notes string) bool {
	if notes == "" {
		return false
	}
	return containsAny(strings.ToLower(notes), lexicon.Negative)
}

// firstNegativeMatch returns the first matching negative phrase in lexicon
// order, for the reason text.
func firstNegativeMatch(notes string) string {
	notesLower := strings.ToLower(notes)
	for _, phrase := range lexicon.Negative {
		if strings.Contains(notesLower, phrase) {
			return phrase
		}
	}
	return ""
}

// ScoreLead scores a lead against the ICP.
//
// HIGH SCORE (+):
//   - Industry in served markets                    → +30
//   - Location in US or Dubai                       → +20
//   - Founder-led + outpaced infrastructure (notes) → +25
//   - Revenue $10M+ / scaling complexity (notes)    → +20
//   - Founder burnout risk 60+hrs/week (notes)      → +20
//   - Explicit service need in notes                → +15
//   - General operational context in notes          → +10
//
// LOW SCORE (−):
//   - Early-stage / pre-revenue                     → −20
//   - Small agency (<5 employees)                   → −15
//   - Regulated industry                            → −10
//   - Lifestyle or solo operation                   → −15
//   - Explicit not-a-fit signal in notes            → −15
//
// The final score is clamped to [0, 100].
func (s *Scorer) ScoreLead(lead models.Lead) ScoreResult {
	score := 0.0
	var reasons []string

	notes := notesText(lead)

	if s.IsIndustryMatch(lead.Industry) {
		score += 30
		reasons = append(reasons, fmt.Sprintf("Industry '%s' is an Adina-served market (+30)", lead.Industry))
	}

	if IsUSOrDubai(lead.Location) {
		score += 20
		reasons = append(reasons, fmt.Sprintf("Location '%s' is in our primary market (+20)", lead.Location))
	}

	if containsAny(notes, lexicon.FounderLed) {
		score += 25
		reasons = append(reasons, "Founder-led business showing signs of outpaced infrastructure (+25)")
	}

	if containsAny(notes, lexicon.RevenueScale) {
		score += 20
		reasons = append(reasons, "Revenue signals indicate $10M+ scaling complexity (+20)")
	}

	if containsAny(notes, lexicon.Burnout) {
		score += 20
		reasons = append(reasons, "Founder burnout risk — working 60+ hours/week (+20)")
	}

	// Strong positive takes priority over the weaker ops-keyword signal;
	// the two never stack.
	if containsAny(notes, lexicon.StrongPositive) {
		score += 15
		reasons = append(reasons, "Notes show explicit operational need for Adina services (+15)")
	} else if containsAny(notes, lexicon.OpsKeywords) {
		score += 10
		reasons = append(reasons, "Notes reference operational activity and scaling context (+10)")
	}

	if HasEarlyStageSignal(lead) {
		score -= 20
		reasons = append(reasons, "Early-stage or pre-revenue — not yet at Adina's target scale (-20)")
	}

	if IsSmallAgency(lead.Employees) {
		score -= 15
		reasons = append(reasons, fmt.Sprintf("Small team (%d employees) — below minimum scale threshold (-15)", *lead.Employees))
	}

	if IsRegulatedIndustry(lead.Industry) {
		score -= 10
		reasons = append(reasons, fmt.Sprintf("Regulated industry ('%s') adds complexity and longer sales cycles (-10)", lead.Industry))
	}

	if containsAny(notes, lexicon.Lifestyle) {
		score -= 15
		reasons = append(reasons, "Lifestyle or solo operation — not aligned with Adina's growth-stage model (-15)")
	}

	if HasNegativeSignal(lead.Notes) {
		score -= 15
		reasons = append(reasons, fmt.Sprintf("Notes indicate current mismatch: '%s' (-15)", firstNegativeMatch(lead.Notes)))
	}

	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}

	if len(reasons) == 0 {
		reasons = append(reasons, NoCriteriaReason)
	}

	return ScoreResult{Score: score, Reasons: reasons}
}

// MatchedSignals returns every matched phrase per lexicon for diagnostics.
func (s *Scorer) MatchedSignals(lead models.Lead) map[string][]string {
	notes := notesText(lead)
	return map[string][]string{
		"founder_led":      matchAll(notes, lexicon.FounderLed),
		"revenue_scale":    matchAll(notes, lexicon.RevenueScale),
		"burnout":          matchAll(notes, lexicon.Burnout),
		"strong_positives": matchAll(notes, lexicon.StrongPositive),
		"ops_keywords":     matchAll(notes, lexicon.OpsKeywords),
		"negatives":        matchAll(notes, lexicon.Negative),
		"early_stage":      matchAll(notes, lexicon.EarlyStage),
		"lifestyle":        matchAll(notes, lexicon.Lifestyle),
	}
}

// QualityLabel maps a score and negative-signal flag to the operator-facing
// quality band.
func QualityLabel(score float64, hasNegative bool) string {
	if hasNegative {
		if score >= 65 {
			return "Possible Fit — Not Hiring Now"
		}
		return "Poor Fit"
	}
	switch {
	case score >= 90:
		return "Hot Lead"
	case score >= 70:
		return "Strong Fit"
	case score >= 50:
		return "Good Fit"
	case score >= 30:
		return "Possible Fit"
	default:
		return "Weak Fit"
	}
}
