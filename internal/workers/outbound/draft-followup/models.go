package draftfollowup

import "leadflow-workers/internal/models"

type Input struct {
	LeadID      int64        `json:"leadId,omitempty"`
	Lead        *models.Lead `json:"lead,omitempty"`
	Intent      string       `json:"intent"`
	InboundText string       `json:"inboundText,omitempty"`
}

type Output struct {
	LeadID        int64  `json:"leadId,omitempty"`
	Intent        string `json:"intent"`
	Body          string `json:"body"`
	ObjectionType string `json:"objectionType,omitempty"`
}
