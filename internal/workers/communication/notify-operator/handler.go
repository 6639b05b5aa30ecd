package notifyoperator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonaws "leadflow-workers/internal/common/aws"
	commonerrors "leadflow-workers/internal/common/errors"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/metrics"
	"leadflow-workers/internal/common/validation"
)

const (
	TaskType = "notify-operator"
)

var (
	ErrNotificationFailed = errors.New("NOTIFICATION_SEND_FAILED")
)

// SESAPI and SNSAPI are the slices of the AWS clients this worker needs.
type SESAPI interface {
	SendEmail(ctx context.Context, input *ses.SendEmailInput) (*ses.SendEmailOutput, error)
}

type SNSAPI interface {
	Publish(ctx context.Context, input *sns.PublishInput) (*sns.PublishOutput, error)
}

type Handler struct {
	config *Config
	ses    SESAPI
	sns    SNSAPI
	logger logger.Logger
}

func NewHandler(config *Config, sesClient SESAPI, snsClient SNSAPI, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		ses:    sesClient,
		sns:    snsClient,
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
		h.failJob(client, job, commonerrors.NewNotificationSendFailedError(err))
		return
	}

	h.completeJob(client, job, output)
}

// execute fans the alert out to every enabled channel. A channel failure
// only fails the job when no channel got through.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}
	if input.Company == "" {
		return nil, fmt.Errorf("%w: company is required", ErrNotificationFailed)
	}

	var channels []string
	var lastErr error

	if h.config.EmailEnabled && h.ses != nil {
		if err := h.sendEmail(ctx, input); err != nil {
			lastErr = err
			h.logger.Warn("email alert failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			channels = append(channels, "email")
		}
	}

	if h.config.SMSEnabled && h.sns != nil {
		if err := h.sendSMS(ctx, input); err != nil {
			lastErr = err
			h.logger.Warn("sms alert failed", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			channels = append(channels, "sms")
		}
	}

	enabled := (h.config.EmailEnabled && h.ses != nil) || (h.config.SMSEnabled && h.sns != nil)
	if enabled && len(channels) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrNotificationFailed, lastErr)
	}

	h.logger.Info("operator notified", map[string]interface{}{
		"leadId":   input.LeadID,
		"company":  input.Company,
		"channels": channels,
	})

	return &Output{
		Notified: len(channels) > 0,
		Channels: channels,
	}, nil
}

func (h *Handler) sendEmail(ctx context.Context, input *Input) error {
	subject := fmt.Sprintf("Hot lead: %s (score %.0f)", input.Company, input.Score)
	body := fmt.Sprintf("Lead %d (%s) scored %.0f", input.LeadID, input.Company, input.Score)
	if input.QualityLabel != "" {
		body += fmt.Sprintf(" and is labeled %q", input.QualityLabel)
	}
	body += "."
	if input.Reason != "" {
		body += "\n\n" + input.Reason
	}

	_, err := h.ses.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(h.config.EmailFrom),
		Destination: &sestypes.Destination{
			ToAddresses: []string{h.config.EmailTo},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: awssdk.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: awssdk.String(body)},
			},
		},
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, input *Input) error {
	if !validation.ValidatePhone(h.config.SMSPhone) {
		return fmt.Errorf("invalid sms phone %q", h.config.SMSPhone)
	}

	message := fmt.Sprintf("Hot lead: %s scored %.0f", input.Company, input.Score)

	publishInput := &sns.PublishInput{
		Message:           awssdk.String(message),
		PhoneNumber:       awssdk.String(h.config.SMSPhone),
		MessageAttributes: commonaws.SMSAttributes(h.config.SMSSenderID),
	}

	_, err := h.sns.Publish(ctx, publishInput)
	return err
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
