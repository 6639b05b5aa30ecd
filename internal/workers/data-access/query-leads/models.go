package queryleads

type Input struct {
	QueryType string                 `json:"queryType"`
	LeadID    int64                  `json:"leadId,omitempty"`
	Status    string                 `json:"status,omitempty"`
	Limit     int                    `json:"limit,omitempty"`
	Days      int                    `json:"days,omitempty"`
	Filters   map[string]interface{} `json:"filters,omitempty"`
}

type Output struct {
	Data               interface{} `json:"data"`
	RowCount           int         `json:"rowCount"`
	QueryExecutionTime int64       `json:"queryExecutionTime"` // milliseconds
}
