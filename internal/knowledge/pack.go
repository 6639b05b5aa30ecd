// Package knowledge loads the static business-context documents: the
// knowledge pack (services, industries served, proof points, rebuttals)
// and the response playbook (intent rules and follow-up templates).
//
// Both documents are optional. A missing or malformed file degrades to a
// documented empty structure so the process never fails to start over
// configuration content.
package knowledge

import (
	"encoding/json"
	"os"
	"strings"

	"leadflow-workers/internal/common/logger"

	"github.com/xeipuuv/gojsonschema"
)

// Pack is the knowledge pack: static configuration describing the business.
// Read-only for the lifetime of the process.
type Pack struct {
	OneLiner               string            `json:"one_liner"`
	Services               []string          `json:"services"`
	IdealCustomers         []string          `json:"ideal_customers"`
	IndustriesServed       []string          `json:"industries_served"`
	ProblemsWeSolve        []string          `json:"problems_we_solve"`
	Outcomes               []string          `json:"outcomes"`
	ProofPoints            []string          `json:"proof_points"`
	Process                []string          `json:"process"`
	ObjectionsAndRebuttals map[string]string `json:"objections_and_rebuttals"`
	CTA                    string            `json:"CTA"`
	ToneGuidelines         []string          `json:"tone_guidelines"`
}

// EmptyPack returns the fallback pack used when the document is absent.
func EmptyPack() *Pack {
	return &Pack{
		ObjectionsAndRebuttals: map[string]string{},
	}
}

// ServedIndustriesLower returns industries_served normalized to lowercase.
func (p *Pack) ServedIndustriesLower() []string {
	out := make([]string, 0, len(p.IndustriesServed))
	for _, industry := range p.IndustriesServed {
		out = append(out, strings.ToLower(industry))
	}
	return out
}

// Rebuttal returns the rebuttal text registered for an objection question.
func (p *Pack) Rebuttal(question string) (string, bool) {
	text, ok := p.ObjectionsAndRebuttals[question]
	return text, ok
}

const packSchema = `{
	"type": "object",
	"properties": {
		"one_liner": {"type": "string"},
		"services": {"type": "array", "items": {"type": "string"}},
		"ideal_customers": {"type": "array", "items": {"type": "string"}},
		"industries_served": {"type": "array", "items": {"type": "string"}},
		"problems_we_solve": {"type": "array", "items": {"type": "string"}},
		"outcomes": {"type": "array", "items": {"type": "string"}},
		"proof_points": {"type": "array", "items": {"type": "string"}},
		"process": {"type": "array", "items": {"type": "string"}},
		"objections_and_rebuttals": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"CTA": {"type": "string"},
		"tone_guidelines": {"type": "array", "items": {"type": "string"}}
	}
}`

// LoadPack reads and validates the knowledge pack document. Any failure
// falls back to EmptyPack so scoring and drafting continue with reduced
// context rather than the process crashing.
func LoadPack(path string, log logger.Logger) *Pack {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("knowledge pack not found, using empty fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return EmptyPack()
	}

	if err := validateDocument(packSchema, data); err != nil {
		log.Warn("knowledge pack failed validation, using empty fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return EmptyPack()
	}

	var pack Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		log.Warn("knowledge pack failed to parse, using empty fallback", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return EmptyPack()
	}
	if pack.ObjectionsAndRebuttals == nil {
		pack.ObjectionsAndRebuttals = map[string]string{}
	}

	log.Debug("knowledge pack loaded", map[string]interface{}{
		"path":       path,
		"industries": len(pack.IndustriesServed),
	})
	return &pack
}

func validateDocument(schema string, document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return err
	}
	if !result.Valid() {
		var msgs []string
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return &ValidationError{Problems: msgs}
	}
	return nil
}

// ValidationError aggregates schema violations for one document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "document validation failed: " + strings.Join(e.Problems, "; ")
}
