// Package classify assigns intent labels to inbound email replies.
//
// Classification is keyword and pattern matching against the response
// playbook. Patterns count double. Everything is inspectable: the detailed
// result reports exactly which vocabulary matched.
package classify

import (
	"strings"

	"leadflow-workers/internal/knowledge"
)

// Result is the detailed classification outcome.
type Result struct {
	Intent          string   `json:"intent"`
	Confidence      string   `json:"confidence"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MatchedPatterns []string `json:"matchedPatterns"`
}

// Confidence levels reported by the classifier.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// Classifier scores reply text against playbook intent vocabulary. Safe for
// concurrent use.
type Classifier struct {
	playbook *knowledge.Playbook
}

func NewClassifier(playbook *knowledge.Playbook) *Classifier {
	return &Classifier{playbook: playbook}
}

// normalizeText lowercases and collapses all whitespace runs to single
// spaces, so patterns match across line breaks.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

func countMatches(text string, phrases []string) (int, []string) {
	var matched []string
	for _, phrase := range phrases {
		if strings.Contains(text, strings.ToLower(phrase)) {
			matched = append(matched, phrase)
		}
	}
	return len(matched), matched
}

type intentScore struct {
	score           int
	matchedKeywords []string
	matchedPatterns []string
}

// ClassifyReply returns just the intent label for a reply.
func (c *Classifier) ClassifyReply(text string) string {
	return c.ClassifyReplyDetailed(text).Intent
}

// ClassifyReplyDetailed scores the reply against every intent's vocabulary.
//
// Scoring: score = keyword matches + 2 * pattern matches. Keywords match
// against the lowercased raw text; patterns against whitespace-normalized
// text. A negative score of 2 or more overrides everything else. Otherwise
// the highest-scoring intent wins, with ties resolved by the canonical
// intent order, and a zero score defaults to neutral.
func (c *Classifier) ClassifyReplyDetailed(text string) Result {
	textLower := strings.ToLower(text)
	textNormalized := normalizeText(text)

	scores := make(map[string]intentScore, len(knowledge.IntentOrder))
	for intent, rule := range c.playbook.IntentClassification {
		keywordCount, matchedKeywords := countMatches(textLower, rule.Keywords)
		patternCount, matchedPatterns := countMatches(textNormalized, rule.Patterns)

		scores[intent] = intentScore{
			score:           keywordCount + patternCount*2,
			matchedKeywords: matchedKeywords,
			matchedPatterns: matchedPatterns,
		}
	}

	// Explicit rejection overrides any other signal in the same reply.
	if negative := scores[knowledge.IntentNegative]; negative.score >= 2 {
		confidence := ConfidenceMedium
		if negative.score >= 3 {
			confidence = ConfidenceHigh
		}
		return Result{
			Intent:          knowledge.IntentNegative,
			Confidence:      confidence,
			MatchedKeywords: negative.matchedKeywords,
			MatchedPatterns: negative.matchedPatterns,
		}
	}

	bestIntent := knowledge.IntentNeutral
	bestScore := 0
	var bestData intentScore
	for _, intent := range knowledge.IntentOrder {
		if data, ok := scores[intent]; ok && data.score > bestScore {
			bestScore = data.score
			bestIntent = intent
			bestData = data
		}
	}

	var confidence string
	switch {
	case bestScore == 0:
		confidence = ConfidenceLow
	case bestScore >= 4:
		confidence = ConfidenceHigh
	case bestScore >= 2:
		confidence = ConfidenceMedium
	default:
		confidence = ConfidenceLow
	}

	return Result{
		Intent:          bestIntent,
		Confidence:      confidence,
		MatchedKeywords: bestData.matchedKeywords,
		MatchedPatterns: bestData.matchedPatterns,
	}
}
