package classifyreply

type Input struct {
	ReplyText string `json:"replyText"`
	LeadID    int64  `json:"leadId,omitempty"`
}

type Output struct {
	LeadID          int64    `json:"leadId,omitempty"`
	Intent          string   `json:"intent"`
	Confidence      string   `json:"confidence"`
	MatchedKeywords []string `json:"matchedKeywords"`
	MatchedPatterns []string `json:"matchedPatterns"`
}
