package draftoutreach

import "leadflow-workers/internal/models"

// Input identifies the lead to draft for, or carries an inline lead for
// preview drafting without persistence.
type Input struct {
	LeadID int64        `json:"leadId,omitempty"`
	Lead   *models.Lead `json:"lead,omitempty"`
}

type Output struct {
	LeadID  int64  `json:"leadId,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Status  string `json:"status,omitempty"`
}
