package scorelead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "leadflow-workers/internal/common/errors"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/metrics"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/engine/scoring"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/store"
)

const (
	TaskType = "score-lead"
)

var (
	ErrLeadNotFound    = errors.New("LEAD_NOT_FOUND")
	ErrLeadFetchFailed = errors.New("LEAD_FETCH_FAILED")
	ErrScoringFailed   = errors.New("SCORING_FAILED")
)

// LeadStore is the subset of the lead store used by this worker.
type LeadStore interface {
	GetLead(ctx context.Context, id int64) (*models.Lead, error)
	UpdateScore(ctx context.Context, id int64, score float64, reason, status string) error
}

type Handler struct {
	config *Config
	store  LeadStore
	scorer *scoring.Scorer
	obs    *observability.Observability
	logger logger.Logger
}

func NewHandler(config *Config, leadStore LeadStore, scorer *scoring.Scorer, obs *observability.Observability, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  leadStore,
		scorer: scorer,
		obs:    obs,
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
		case errors.Is(err, ErrLeadFetchFailed):
			stdErr = commonerrors.NewLeadFetchFailedError(err)
		default:
			stdErr = commonerrors.NewScoringFailedError(err)
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

	lead, persisted, err := h.resolveLead(ctx, input)
	if err != nil {
		return nil, err
	}

	result := h.scorer.ScoreLead(*lead)
	hasNegative := scoring.HasNegativeSignal(lead.Notes)
	quality := scoring.QualityLabel(result.Score, hasNegative)

	status := lead.Status
	if result.Score >= h.config.QualifiedThreshold && !hasNegative {
		status = models.StatusQualified
	}

	if persisted {
		reason := strings.Join(result.Reasons, "; ")
		if err := h.store.UpdateScore(ctx, lead.ID, result.Score, reason, status); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrScoringFailed, err)
		}
	}

	metrics.LeadScoreDistribution.Observe(result.Score)
	h.obs.RecordLeadScored(ctx, quality)

	h.logger.Info("lead scored", map[string]interface{}{
		"leadId":  lead.ID,
		"score":   result.Score,
		"quality": quality,
	})

	return &Output{
		LeadID:       lead.ID,
		Score:        result.Score,
		QualityLabel: quality,
		Reasons:      result.Reasons,
		Status:       status,
		HotLead:      result.Score >= h.config.HotLeadThreshold && !hasNegative,
	}, nil
}

// resolveLead loads the lead by id, or uses the inline record for
// not-yet-persisted discovery candidates.
func (h *Handler) resolveLead(ctx context.Context, input *Input) (*models.Lead, bool, error) {
	if input.Lead != nil {
		input.Lead.Normalize()
		return input.Lead, false, nil
	}
	if input.LeadID == 0 {
		return nil, false, fmt.Errorf("%w: no lead id or inline lead", ErrLeadNotFound)
	}

	lead, err := h.store.GetLead(ctx, input.LeadID)
	if err != nil {
		if errors.Is(err, store.ErrLeadNotFound) {
			return nil, false, fmt.Errorf("%w: lead %d", ErrLeadNotFound, input.LeadID)
		}
		return nil, false, fmt.Errorf("%w: %v", ErrLeadFetchFailed, err)
	}
	return lead, true, nil
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
