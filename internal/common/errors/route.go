package errors

import (
	"context"
	"encoding/json"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// RouteJobFailure reports a failed job to the broker. Codes with a retry
// budget fail the job so the broker redelivers it; everything else raises
// a BPMN error the process model can catch. The error contract variables
// ride along on the retry path.
func RouteJobFailure(ctx context.Context, client worker.JobClient, job entities.Job, bpmnErr *BPMNError) error {
	if bpmnErr.Retries > 0 && job.Retries > 0 {
		retries := bpmnErr.Retries
		if int(job.Retries) < retries {
			retries = int(job.Retries)
		}

		cmd := client.NewFailJobCommand().
			JobKey(job.Key).
			Retries(int32(retries)).
			ErrorMessage(bpmnErr.Message)

		if varsJSON, err := json.Marshal(bpmnErr.ToErrorVariables()); err == nil {
			if cmdWithVars, err := cmd.VariablesFromString(string(varsJSON)); err == nil {
				_, sendErr := cmdWithVars.Send(ctx)
				return sendErr
			}
		}
		_, err := cmd.Send(ctx)
		return err
	}

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(bpmnErr.Code).
		ErrorMessage(bpmnErr.Message).
		Send(ctx)
	return err
}
