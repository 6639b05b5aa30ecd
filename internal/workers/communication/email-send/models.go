package emailsend

import "time"

// Input addresses the send. When only LeadID is set, the recipient and the
// drafted subject/body are loaded from the lead record.
type Input struct {
	LeadID  int64  `json:"leadId,omitempty"`
	To      string `json:"to,omitempty"`
	ReplyTo string `json:"replyTo,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

type Output struct {
	Success    bool      `json:"success"`
	MessageID  string    `json:"messageId,omitempty"`
	Provider   string    `json:"provider,omitempty"`
	SentAt     time.Time `json:"sentAt,omitempty"`
	DailyCount int       `json:"dailyCount"`
}
