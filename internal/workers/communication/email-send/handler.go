package emailsend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "leadflow-workers/internal/common/errors"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/metrics"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/store"
)

const (
	TaskType = "email-send"
)

var (
	ErrLeadNotFound      = errors.New("LEAD_NOT_FOUND")
	ErrValidationFailed  = errors.New("EMAIL_VALIDATION_FAILED")
	ErrSendFailed        = errors.New("EMAIL_SEND_FAILED")
	ErrDailyLimitReached = errors.New("DAILY_LIMIT_REACHED")
)

// LeadStore is the subset of the lead store used by this worker.
type LeadStore interface {
	GetLead(ctx context.Context, id int64) (*models.Lead, error)
	RecordSentEmail(ctx context.Context, email models.SentEmail) error
	DailySentCount(ctx context.Context, day time.Time) (int, error)
	IncrementDailySent(ctx context.Context, day time.Time) error
}

type Handler struct {
	config *Config
	store  LeadStore
	sender Sender
	obs    *observability.Observability
	now    func() time.Time
	logger logger.Logger
}

func NewHandler(config *Config, leadStore LeadStore, sender Sender, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  leadStore,
		sender: sender,
		obs:    obs,
		now:    time.Now,
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, commonerrors.NewParseError(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		var stdErr *commonerrors.StandardError
		switch {
		case errors.Is(err, ErrLeadNotFound):
			stdErr = commonerrors.NewLeadNotFoundError(input.LeadID)
		case errors.Is(err, ErrValidationFailed):
			stdErr = commonerrors.NewEmailValidationError(err.Error())
		case errors.Is(err, ErrDailyLimitReached):
			stdErr = commonerrors.NewDailyLimitReachedError(h.config.DailySendLimit)
		default:
			stdErr = commonerrors.NewEmailSendFailedError(err)
		}
		h.failJob(client, job, stdErr)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	to, subject, body := input.To, input.Subject, input.Body
	if input.LeadID != 0 && (to == "" || subject == "" || body == "") {
		lead, err := h.store.GetLead(ctx, input.LeadID)
		if err != nil {
			if errors.Is(err, store.ErrLeadNotFound) {
				return nil, fmt.Errorf("%w: lead %d", ErrLeadNotFound, input.LeadID)
			}
			return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
		}
		if to == "" {
			to = lead.ContactEmail
		}
		if subject == "" {
			subject = lead.EmailSubject
		}
		if body == "" {
			body = lead.EmailBody
		}
	}

	if !isValidEmail(to) {
		return nil, fmt.Errorf("%w: invalid 'to' address %q", ErrValidationFailed, to)
	}
	if !isValidEmail(h.config.FromEmail) {
		return nil, fmt.Errorf("%w: invalid 'from' address %q", ErrValidationFailed, h.config.FromEmail)
	}
	if subject == "" || body == "" {
		return nil, fmt.Errorf("%w: subject and body are required", ErrValidationFailed)
	}

	today := h.now().UTC()
	count, err := h.store.DailySentCount(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}
	if count >= h.config.DailySendLimit {
		return nil, fmt.Errorf("%w: %d sent today, limit %d", ErrDailyLimitReached, count, h.config.DailySendLimit)
	}

	messageID, err := h.sender.Send(ctx, h.config.FromEmail, to, input.ReplyTo, subject, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	sentAt := h.now().UTC()
	if input.LeadID != 0 {
		record := models.SentEmail{
			MessageID: messageID,
			LeadID:    input.LeadID,
			ToEmail:   to,
			Subject:   subject,
			Body:      body,
			Provider:  h.sender.Name(),
			SentAt:    sentAt.Format(time.RFC3339),
		}
		if err := h.store.RecordSentEmail(ctx, record); err != nil {
			// The mail is already out; the audit row is logged and retried
			// by reconciliation, not by resending.
			h.logger.Error("failed to record sent email", map[string]interface{}{
				"leadId":    input.LeadID,
				"messageId": messageID,
				"error":     err.Error(),
			})
		}
	}
	if err := h.store.IncrementDailySent(ctx, today); err != nil {
		h.logger.Warn("failed to increment daily counter", map[string]interface{}{
			"error": err.Error(),
		})
	}

	metrics.DailyEmailsSent.Inc()
	h.obs.RecordEmailSent(ctx, h.sender.Name())

	h.logger.Info("email sent", map[string]interface{}{
		"leadId":    input.LeadID,
		"to":        to,
		"messageId": messageID,
		"provider":  h.sender.Name(),
	})

	return &Output{
		Success:    true,
		MessageID:  messageID,
		Provider:   h.sender.Name(),
		SentAt:     sentAt,
		DailyCount: count + 1,
	}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	_, err = cmd.Send(context.Background())
	if err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, stdErr *commonerrors.StandardError) {
	bpmnErr := commonerrors.ConvertToBPMNError(stdErr)
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    bpmnErr.Code,
		"errorMessage": bpmnErr.Message,
		"retries":      bpmnErr.Retries,
	})
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, bpmnErr.Code).Inc()

	if err := commonerrors.RouteJobFailure(context.Background(), client, job, bpmnErr); err != nil {
		h.logger.Error("failed to report job failure", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
