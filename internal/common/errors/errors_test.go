package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRetryCount(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeLeadFetchFailed, 3},
		{ErrCodeDatabaseConnectionFailed, 3},
		{ErrCodeQueryExecutionFailed, 3},
		{ErrCodeSearchQueryFailed, 3},
		{ErrCodeEmailSendFailed, 3},
		{ErrCodeNotificationSendFailed, 3},
		{ErrCodeBrokerUnavailable, 3},
		{ErrCodeQueryTimeout, 1},
		{ErrCodeSearchTimeout, 1},
		{ErrCodeEnrichmentAPITimeout, 1},
		{ErrCodeBrokerTimeout, 1},
		{ErrCodeParseError, 0},
		{ErrCodeLeadNotFound, 0},
		{ErrCodeEmailValidationFailed, 0},
		{ErrCodeDailyLimitReached, 0},
		{ErrCodeInvalidQueryType, 0},
		{ErrCodeIndexNotFound, 0},
		{ErrorCode("SOMETHING_NEW"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, GetRetryCount(tt.code))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrCodeEmailSendFailed))
	assert.True(t, IsRetryable(ErrCodeQueryTimeout))
	assert.False(t, IsRetryable(ErrCodeLeadNotFound))
	assert.False(t, IsRetryable(ErrCodeParseError))
}

func TestConvertToBPMNError(t *testing.T) {
	t.Run("transient error carries a retry budget", func(t *testing.T) {
		stdErr := NewLeadFetchFailedError(stderrors.New("connection reset"))

		bpmnErr := ConvertToBPMNError(stdErr)

		assert.Equal(t, "LEAD_FETCH_FAILED", bpmnErr.Code)
		assert.Equal(t, "Database error while loading lead", bpmnErr.Message)
		assert.Equal(t, "connection reset", bpmnErr.Details)
		assert.True(t, bpmnErr.Retryable)
		assert.Equal(t, 3, bpmnErr.Retries)
	})

	t.Run("permanent error gets zero retries", func(t *testing.T) {
		bpmnErr := ConvertToBPMNError(NewLeadNotFoundError(42))

		assert.Equal(t, "LEAD_NOT_FOUND", bpmnErr.Code)
		assert.Equal(t, "lead id 42", bpmnErr.Details)
		assert.False(t, bpmnErr.Retryable)
		assert.Equal(t, 0, bpmnErr.Retries)
	})

	t.Run("retry budget follows the code table", func(t *testing.T) {
		for _, stdErr := range []*StandardError{
			NewEnrichmentTimeoutError(stderrors.New("deadline exceeded")),
			NewQueryTimeoutError("leads_by_status"),
			NewSearchTimeoutError("match_all"),
		} {
			bpmnErr := ConvertToBPMNError(stdErr)
			assert.Equal(t, 1, bpmnErr.Retries, "code %s", stdErr.Code)
		}
	})
}

func TestBPMNErrorToErrorVariables(t *testing.T) {
	bpmnErr := &BPMNError{
		Code:      "EMAIL_SEND_FAILED",
		Message:   "Mail provider rejected the send",
		Details:   "throttled",
		Retryable: true,
		ErrorVariables: map[string]interface{}{
			"leadId": int64(7),
		},
	}

	vars := bpmnErr.ToErrorVariables()

	assert.Equal(t, "EMAIL_SEND_FAILED", vars["errorCode"])
	assert.Equal(t, "Mail provider rejected the send", vars["errorMessage"])
	assert.Equal(t, "throttled", vars["errorDetails"])
	assert.Equal(t, true, vars["retryable"])
	assert.Equal(t, int64(7), vars["leadId"])
}

func TestConstructors(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name      string
		err       *StandardError
		code      ErrorCode
		retryable bool
	}{
		{"parse", NewParseError(cause), ErrCodeParseError, false},
		{"scoring failed", NewScoringFailedError(cause), ErrCodeScoringFailed, false},
		{"enrichment timeout", NewEnrichmentTimeoutError(cause), ErrCodeEnrichmentAPITimeout, true},
		{"classification failed", NewClassificationFailedError(cause), ErrCodeClassificationFailed, false},
		{"draft failed", NewDraftFailedError(cause), ErrCodeDraftFailed, false},
		{"template not found", NewTemplateNotFoundError("objection"), ErrCodeTemplateNotFound, false},
		{"email validation", NewEmailValidationError("missing subject"), ErrCodeEmailValidationFailed, false},
		{"email send failed", NewEmailSendFailedError(cause), ErrCodeEmailSendFailed, true},
		{"daily limit", NewDailyLimitReachedError(50), ErrCodeDailyLimitReached, false},
		{"notification failed", NewNotificationSendFailedError(cause), ErrCodeNotificationSendFailed, true},
		{"query execution", NewQueryExecutionError("lead_full_details", cause), ErrCodeQueryExecutionFailed, true},
		{"invalid query type", NewInvalidQueryTypeError("bogus"), ErrCodeInvalidQueryType, false},
		{"search query failed", NewSearchQueryFailedError(cause), ErrCodeSearchQueryFailed, true},
		{"index not found", NewIndexNotFoundError("leads"), ErrCodeIndexNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotNil(t, tt.err)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryable(tt.err.Code))
			assert.False(t, tt.err.Timestamp.IsZero())
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}
