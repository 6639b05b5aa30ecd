package scorelead

import "leadflow-workers/internal/models"

// Input identifies the lead to score. Either a persisted lead id or an
// inline lead record (for discovery candidates not yet saved).
type Input struct {
	LeadID int64        `json:"leadId,omitempty"`
	Lead   *models.Lead `json:"lead,omitempty"`
}

type Output struct {
	LeadID       int64    `json:"leadId,omitempty"`
	Score        float64  `json:"score"`
	QualityLabel string   `json:"qualityLabel"`
	Reasons      []string `json:"reasons"`
	Status       string   `json:"status,omitempty"`
	HotLead      bool     `json:"hotLead"`
}
