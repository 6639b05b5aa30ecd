package knowledge

import (
	"encoding/json"
	"os"

	"leadflow-workers/internal/common/logger"
)

// Intent labels assigned to inbound replies.
const (
	IntentPositive  = "positive"
	IntentNeutral   = "neutral"
	IntentObjection = "objection"
	IntentDeferral  = "deferral"
	IntentNegative  = "negative"
)

// IntentOrder is the canonical iteration order for intent scoring.
// Ties between intents resolve to the earliest entry here.
var IntentOrder = []string{
	IntentPositive,
	IntentNeutral,
	IntentObjection,
	IntentDeferral,
	IntentNegative,
}

// IntentRule holds the matching vocabulary for one intent. Patterns are
// matched against whitespace-normalized text and weighted higher than
// keywords.
type IntentRule struct {
	Keywords []string `json:"keywords"`
	Patterns []string `json:"patterns"`
}

// FollowupTemplate is the reply template set for one intent. The objection
// intent carries per-subtype templates instead of a single template.
type FollowupTemplate struct {
	Template             string            `json:"template,omitempty"`
	TemplatesByObjection map[string]string `json:"templates_by_objection,omitempty"`
	Tone                 string            `json:"tone,omitempty"`
}

// Playbook maps each intent to its matching rules and follow-up template.
type Playbook struct {
	IntentClassification map[string]IntentRule       `json:"intent_classification"`
	FollowupTemplates    map[string]FollowupTemplate `json:"followup_templates"`
}

// EmptyPlaybook returns the fallback playbook structure with all expected
// keys present and no vocabulary.
func EmptyPlaybook() *Playbook {
	classification := make(map[string]IntentRule, len(IntentOrder))
	templates := make(map[string]FollowupTemplate, len(IntentOrder))
	for _, intent := range IntentOrder {
		classification[intent] = IntentRule{Keywords: []string{}, Patterns: []string{}}
		if intent == IntentObjection {
			templates[intent] = FollowupTemplate{TemplatesByObjection: map[string]string{"default": ""}}
		} else {
			templates[intent] = FollowupTemplate{}
		}
	}
	return &Playbook{
		IntentClassification: classification,
		FollowupTemplates:    templates,
	}
}

const playbookSchema = `{
	"type": "object",
	"properties": {
		"intent_classification": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"keywords": {"type": "array", "items": {"type": "string"}},
					"patterns": {"type": "array", "items": {"type": "string"}}
				}
			}
		},
		"followup_templates": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"properties": {
					"template": {"type": "string"},
					"templates_by_objection": {
						"type": "object",
						"additionalProperties": {"type": "string"}
					},
					"tone": {"type": "string"}
				}
			}
		}
	}
}`

// LoadPlaybook reads and validates the response playbook document. Any
// failure falls back to EmptyPlaybook, never an error to the caller.
func LoadPlaybook(path string, log logger.Logger) *Playbook {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("response playbook not found, using empty fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return EmptyPlaybook()
	}

	if err := validateDocument(playbookSchema, data); err != nil {
		log.Warn("response playbook failed validation, using empty fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return EmptyPlaybook()
	}

	var playbook Playbook
	if err := json.Unmarshal(data, &playbook); err != nil {
		log.Warn("response playbook failed to parse, using empty fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return EmptyPlaybook()
	}
	if playbook.IntentClassification == nil {
		playbook.IntentClassification = map[string]IntentRule{}
	}
	if playbook.FollowupTemplates == nil {
		playbook.FollowupTemplates = map[string]FollowupTemplate{}
	}

	log.Debug("response playbook loaded", map[string]interface{}{
		"path":    path,
		"intents": len(playbook.IntentClassification),
	})
	return &playbook
}
