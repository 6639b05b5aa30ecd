// Package followup drafts replies to inbound messages from playbook
// templates. Template selection is driven by the classified intent, and for
// objections by the detected objection subtype.
package followup

import (
	"strings"

	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/models"
)

// Objection subtypes, checked in priority order.
const (
	ObjectionPrice   = "price"
	ObjectionTiming  = "timing"
	ObjectionFit     = "fit"
	ObjectionDefault = "default"
)

// Result is a drafted follow-up body plus the intent it answers.
type Result struct {
	Body   string `json:"body"`
	Intent string `json:"intent"`
}

// Drafter produces follow-up email bodies from the response playbook.
// Safe for concurrent use.
type Drafter struct {
	playbook *knowledge.Playbook
}

func NewDrafter(playbook *knowledge.Playbook) *Drafter {
	return &Drafter{playbook: playbook}
}

var (
	priceKeywords  = []string{"expensive", "cost", "price", "budget", "afford", "investment"}
	timingKeywords = []string{"busy", "later", "not now", "timing", "quarter", "month"}
	fitKeywords    = []string{"not sure if", "right fit", "don't think", "not for us", "not what we need"}
)

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// DetectObjectionType identifies the objection subtype. Price is checked
// before timing before fit, so mixed objections resolve to the earlier type.
func DetectObjectionType(text string) string {
	textLower := strings.ToLower(text)

	if containsAny(textLower, priceKeywords) {
		return ObjectionPrice
	}
	if containsAny(textLower, timingKeywords) {
		return ObjectionTiming
	}
	if containsAny(textLower, fitKeywords) {
		return ObjectionFit
	}
	return ObjectionDefault
}

// ExtractTimeframe pulls a follow-up timeframe out of deferral text. The
// checks run in a fixed priority order and fall back to "a few weeks".
func ExtractTimeframe(text string) string {
	textLower := strings.ToLower(text)

	if strings.Contains(textLower, "next quarter") ||
		strings.Contains(textLower, "q2") ||
		strings.Contains(textLower, "q3") ||
		strings.Contains(textLower, "q4") {
		return "next quarter"
	}
	if strings.Contains(textLower, "next month") {
		return "a month"
	}
	if strings.Contains(textLower, "next week") {
		return "next week"
	}
	if strings.Contains(textLower, "few weeks") {
		return "a few weeks"
	}
	if strings.Contains(textLower, "next year") || strings.Contains(textLower, "new year") {
		return "the new year"
	}
	if strings.Contains(textLower, "january") {
		return "January"
	}
	if strings.Contains(textLower, "after") {
		if strings.Contains(textLower, "fundraise") || strings.Contains(textLower, "raise") {
			return "after your fundraise"
		}
		if strings.Contains(textLower, "hire") {
			return "after your hiring push"
		}
		if strings.Contains(textLower, "launch") {
			return "after your launch"
		}
	}

	return "a few weeks"
}

func (d *Drafter) templateFor(intent string) knowledge.FollowupTemplate {
	if tpl, ok := d.playbook.FollowupTemplates[intent]; ok {
		return tpl
	}
	return d.playbook.FollowupTemplates[knowledge.IntentNeutral]
}

// Draft produces a follow-up body without the inbound text. Objections use
// the default subtype template and all placeholders get generic defaults.
func (d *Drafter) Draft(intent string, lead models.Lead) string {
	tpl := d.templateFor(intent)

	template := tpl.Template
	if intent == knowledge.IntentObjection {
		template = tpl.TemplatesByObjection[ObjectionDefault]
	}

	company := lead.Company
	if company == "" {
		company = "your company"
	}

	body := strings.ReplaceAll(template, "{company}", company)
	body = strings.ReplaceAll(body, "{suggested_time}", "sometime this week")
	body = strings.ReplaceAll(body, "{followup_timeframe}", "a few weeks")
	body = strings.ReplaceAll(body, "{answer_to_question}", "[I'll address your specific question here]")
	return body
}

// DraftWithContext produces a follow-up body using the inbound text to pick
// the objection subtype and, for deferrals, the follow-up timeframe.
func (d *Drafter) DraftWithContext(intent string, lead models.Lead, inboundText string) Result {
	tpl := d.templateFor(intent)

	var template string
	if intent == knowledge.IntentObjection {
		objectionType := DetectObjectionType(inboundText)
		template = tpl.TemplatesByObjection[objectionType]
		if template == "" {
			template = tpl.TemplatesByObjection[ObjectionDefault]
		}
	} else {
		template = tpl.Template
	}

	company := lead.Company
	if company == "" {
		company = "your company"
	}

	body := strings.ReplaceAll(template, "{company}", company)
	body = strings.ReplaceAll(body, "{suggested_time}", "sometime this week")

	if intent == knowledge.IntentDeferral {
		body = strings.ReplaceAll(body, "{followup_timeframe}", ExtractTimeframe(inboundText))
	}

	body = strings.ReplaceAll(body, "{answer_to_question}", "[Your specific question addressed here]")

	return Result{Body: body, Intent: intent}
}
