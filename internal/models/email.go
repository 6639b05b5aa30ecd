package models

// SentEmail records one outbound email tied to a lead.
type SentEmail struct {
	ID        int64  `json:"id,omitempty"`
	LeadID    int64  `json:"leadId"`
	ToEmail   string `json:"toEmail"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
	MessageID string `json:"messageId,omitempty"`
	Provider  string `json:"provider,omitempty"`
	SentAt    string `json:"sentAt,omitempty"`
}

// EmailDraft is a transient subject/body pair produced by the drafting engines.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}
