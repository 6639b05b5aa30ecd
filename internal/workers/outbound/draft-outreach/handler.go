package draftoutreach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "leadflow-workers/internal/common/errors"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/metrics"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/engine/outreach"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/store"
)

const (
	TaskType = "draft-outreach"
)

var (
	ErrLeadNotFound = errors.New("LEAD_NOT_FOUND")
	ErrDraftFailed  = errors.New("DRAFT_FAILED")
)

// LeadStore is the subset of the lead store used by this worker.
type LeadStore interface {
	GetLead(ctx context.Context, id int64) (*models.Lead, error)
	SaveDraft(ctx context.Context, id int64, subject, body string) error
}

type Handler struct {
	config  *Config
	store   LeadStore
	drafter *outreach.Drafter
	obs     *observability.Observability
	logger  logger.Logger
}

func NewHandler(config *Config, leadStore LeadStore, drafter *outreach.Drafter, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		store:   leadStore,
		drafter: drafter,
		obs:     obs,
		logger:  log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		if errors.Is(err, ErrLeadNotFound) {
			stdErr = commonerrors.NewLeadNotFoundError(input.LeadID)
		} else {
			stdErr = commonerrors.NewDraftFailedError(err)
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

	lead := input.Lead
	persisted := false
	if lead == nil {
		if input.LeadID == 0 {
			return nil, fmt.Errorf("%w: no lead id or inline lead", ErrLeadNotFound)
		}
		var err error
		lead, err = h.store.GetLead(ctx, input.LeadID)
		if err != nil {
			if errors.Is(err, store.ErrLeadNotFound) {
				return nil, fmt.Errorf("%w: lead %d", ErrLeadNotFound, input.LeadID)
			}
			return nil, fmt.Errorf("%w: %v", ErrDraftFailed, err)
		}
		persisted = true
	}

	draft := h.drafter.DraftOutreachEmail(*lead)

	status := lead.Status
	if persisted {
		if err := h.store.SaveDraft(ctx, lead.ID, draft.Subject, draft.Body); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDraftFailed, err)
		}
		status = models.StatusDrafted
	}

	h.obs.RecordEmailDrafted(ctx, "outreach")

	h.logger.Info("outreach drafted", map[string]interface{}{
		"leadId":  lead.ID,
		"subject": draft.Subject,
	})

	return &Output{
		LeadID:  lead.ID,
		Subject: draft.Subject,
		Body:    draft.Body,
		Status:  status,
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
