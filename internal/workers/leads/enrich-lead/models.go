package enrichlead

import "leadflow-workers/internal/store"

// Input identifies the lead to enrich. Company/location override the stored
// values when provided, so discovery flows can enrich before persisting.
type Input struct {
	LeadID   int64  `json:"leadId,omitempty"`
	Company  string `json:"company,omitempty"`
	Location string `json:"location,omitempty"`
}

type Output struct {
	LeadID             int64                   `json:"leadId,omitempty"`
	CompanyDescription string                  `json:"companyDescription"`
	Website            string                  `json:"website,omitempty"`
	Sources            []store.DiscoveryResult `json:"sources"`
	CacheHit           bool                    `json:"cacheHit"`
}
