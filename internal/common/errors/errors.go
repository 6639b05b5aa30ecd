// Package errors provides standardized error handling for BPMN workflow integration.
package errors

import (
	"fmt"
	"time"
)

type ErrorCode string

const (
	ErrCodeLeadNotFound     ErrorCode = "LEAD_NOT_FOUND"
	ErrCodeLeadFetchFailed  ErrorCode = "LEAD_FETCH_FAILED"
	ErrCodeScoringFailed    ErrorCode = "SCORING_FAILED"
	ErrCodeEnrichmentFailed ErrorCode = "ENRICHMENT_FAILED"
	ErrCodeEnrichmentAPITimeout ErrorCode = "ENRICHMENT_API_TIMEOUT"

	ErrCodeClassificationFailed ErrorCode = "CLASSIFICATION_FAILED"

	ErrCodeDraftFailed      ErrorCode = "DRAFT_FAILED"
	ErrCodeTemplateNotFound ErrorCode = "TEMPLATE_NOT_FOUND"

	ErrCodeEmailValidationFailed ErrorCode = "EMAIL_VALIDATION_FAILED"
	ErrCodeEmailSendFailed       ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeDailyLimitReached     ErrorCode = "DAILY_LIMIT_REACHED"
	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout             ErrorCode = "QUERY_TIMEOUT"
	ErrCodeInvalidQueryType         ErrorCode = "INVALID_QUERY_TYPE"

	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeSearchTimeout     ErrorCode = "SEARCH_TIMEOUT"
	ErrCodeIndexNotFound     ErrorCode = "INDEX_NOT_FOUND"

	ErrCodeKnowledgePackInvalid ErrorCode = "KNOWLEDGE_PACK_INVALID"
	ErrCodePlaybookInvalid      ErrorCode = "PLAYBOOK_INVALID"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerTimeout     ErrorCode = "BROKER_TIMEOUT"

	ErrCodeParseError ErrorCode = "PARSE_ERROR"
)

type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	if e.ErrorVariables != nil {
		for k, v := range e.ErrorVariables {
			vars[k] = v
		}
	}

	return vars
}

func NewParseError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeParseError,
		Message:   "Failed to parse job variables",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewLeadNotFoundError(leadID int64) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadNotFound,
		Message:   "Lead not found",
		Details:   fmt.Sprintf("lead id %d", leadID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewLeadFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeLeadFetchFailed,
		Message:   "Database error while loading lead",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewScoringFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeScoringFailed,
		Message:   "Lead scoring failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewEnrichmentTimeoutError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEnrichmentAPITimeout,
		Message:   "Company search API timed out",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewClassificationFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeClassificationFailed,
		Message:   "Reply classification failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewDraftFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDraftFailed,
		Message:   "Email drafting failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewTemplateNotFoundError(intent string) *StandardError {
	return &StandardError{
		Code:      ErrCodeTemplateNotFound,
		Message:   "No follow-up template registered for intent",
		Details:   intent,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewEmailValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailValidationFailed,
		Message:   "Email validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Mail provider rejected the send",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewDailyLimitReachedError(limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodeDailyLimitReached,
		Message:   "Daily outbound email limit reached",
		Details:   fmt.Sprintf("limit %d", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewNotificationSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeNotificationSendFailed,
		Message:   "Operator notification failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryExecutionError(queryType string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Lead query execution failed",
		Details:   fmt.Sprintf("%s: %v", queryType, err),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidQueryTypeError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidQueryType,
		Message:   "Unknown lead query type",
		Details:   queryType,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Lead query timed out",
		Details:   queryType,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Lead search failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchTimeoutError(queryType string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchTimeout,
		Message:   "Lead search timed out",
		Details:   queryType,
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewIndexNotFoundError(index string) *StandardError {
	return &StandardError{
		Code:      ErrCodeIndexNotFound,
		Message:   "Search index does not exist",
		Details:   index,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ConvertToBPMNError maps a StandardError onto the BPMN error contract.
func ConvertToBPMNError(err *StandardError) *BPMNError {
	return &BPMNError{
		Code:      string(err.Code),
		Message:   err.Message,
		Details:   err.Details,
		Retryable: err.Retryable,
		Retries:   GetRetryCount(err.Code),
	}
}

// GetRetryCount returns how many retries a given error code warrants.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeLeadFetchFailed,
		ErrCodeDatabaseConnectionFailed,
		ErrCodeQueryExecutionFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeEmailSendFailed,
		ErrCodeNotificationSendFailed,
		ErrCodeBrokerUnavailable:
		return 3
	case ErrCodeQueryTimeout,
		ErrCodeSearchTimeout,
		ErrCodeEnrichmentAPITimeout,
		ErrCodeBrokerTimeout:
		return 1
	default:
		return 0
	}
}

// IsRetryable reports whether the error code is transient.
func IsRetryable(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}
