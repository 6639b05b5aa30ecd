package classifyreply

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
	"leadflow-workers/internal/engine/classify"
	"leadflow-workers/internal/models"
)

const (
	TaskType = "classify-reply"
)

var (
	ErrEmptyReply = errors.New("CLASSIFICATION_FAILED")
)

// LeadStatusUpdater marks the lead replied once a reply is classified.
type LeadStatusUpdater interface {
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Handler struct {
	config     *Config
	classifier *classify.Classifier
	store      LeadStatusUpdater
	logger     logger.Logger
}

func NewHandler(config *Config, classifier *classify.Classifier, leadStore LeadStatusUpdater, log logger.Logger) *Handler {
	return &Handler{
		config:     config,
		classifier: classifier,
		store:      leadStore,
		logger:     log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.failJob(client, job, commonerrors.NewClassificationFailedError(err))
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.ReplyText == "" {
		return nil, fmt.Errorf("%w: empty reply text", ErrEmptyReply)
	}

	result := h.classifier.ClassifyReplyDetailed(input.ReplyText)

	if input.LeadID != 0 {
		if err := h.store.UpdateStatus(ctx, input.LeadID, models.StatusReplied); err != nil {
			// Classification already succeeded; the status update is
			// advisory and must not fail the job.
			h.logger.Warn("failed to mark lead replied", map[string]interface{}{
				"leadId": input.LeadID,
				"error":  err.Error(),
			})
		}
	}

	h.logger.Info("reply classified", map[string]interface{}{
		"leadId":     input.LeadID,
		"intent":     result.Intent,
		"confidence": result.Confidence,
	})

	return &Output{
		LeadID:          input.LeadID,
		Intent:          result.Intent,
		Confidence:      result.Confidence,
		MatchedKeywords: result.MatchedKeywords,
		MatchedPatterns: result.MatchedPatterns,
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
