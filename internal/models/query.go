package models

// QueryType names a pre-registered read query served by the query-leads
// worker. Processes select one by name rather than sending raw SQL.
type QueryType string

const (
	QueryTypeLeadFullDetails      QueryType = "lead_full_details"
	QueryTypeLeadsByStatus        QueryType = "leads_by_status"
	QueryTypeLeadsPendingOutreach QueryType = "leads_pending_outreach"
	QueryTypeSentEmailHistory     QueryType = "sent_email_history"
	QueryTypeDailySendStats       QueryType = "daily_send_stats"
)
