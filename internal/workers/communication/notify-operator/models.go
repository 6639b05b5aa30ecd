package notifyoperator

type Input struct {
	LeadID       int64   `json:"leadId,omitempty"`
	Company      string  `json:"company"`
	Score        float64 `json:"score"`
	QualityLabel string  `json:"qualityLabel,omitempty"`
	Reason       string  `json:"reason,omitempty"`
}

type Output struct {
	Notified bool     `json:"notified"`
	Channels []string `json:"channels"`
}
