package enrichlead

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	commonerrors "leadflow-workers/internal/common/errors"
	commonhttp "leadflow-workers/internal/common/http"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/metrics"
	"leadflow-workers/internal/models"
	"leadflow-workers/internal/store"
)

const (
	TaskType = "enrich-lead"
)

var (
	ErrLeadNotFound         = errors.New("LEAD_NOT_FOUND")
	ErrEnrichmentAPITimeout = errors.New("ENRICHMENT_API_TIMEOUT")
)

// LeadStore is the subset of the lead store used by this worker.
type LeadStore interface {
	GetLead(ctx context.Context, id int64) (*models.Lead, error)
	UpdateEnrichment(ctx context.Context, id int64, description, website string) error
}

// Cache is the company discovery cache.
type Cache interface {
	Get(ctx context.Context, company, location string) ([]store.DiscoveryResult, bool, error)
	Set(ctx context.Context, company, location string, results []store.DiscoveryResult) error
}

type Handler struct {
	config *Config
	store  LeadStore
	cache  Cache
	client *commonhttp.Client
	logger logger.Logger
}

func NewHandler(config *Config, leadStore LeadStore, cache Cache, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		store:  leadStore,
		cache:  cache,
		client: commonhttp.NewClient(config.Timeout),
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
		if errors.Is(err, ErrEnrichmentAPITimeout) {
			h.failJob(client, job, commonerrors.NewEnrichmentTimeoutError(err))
			return
		}
		if errors.Is(err, ErrLeadNotFound) {
			h.failJob(client, job, commonerrors.NewLeadNotFoundError(input.LeadID))
			return
		}
		// Enrichment is best effort. Anything else degrades to an empty
		// result so the process can continue with what it has.
		h.logger.Warn("enrichment failed, returning empty result", map[string]interface{}{
			"error": err.Error(),
		})
		output = &Output{LeadID: input.LeadID, Sources: []store.DiscoveryResult{}}
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("input cannot be nil")
	}

	company, location := input.Company, input.Location
	if company == "" && input.LeadID != 0 {
		lead, err := h.store.GetLead(ctx, input.LeadID)
		if err != nil {
			if errors.Is(err, store.ErrLeadNotFound) {
				return nil, fmt.Errorf("%w: lead %d", ErrLeadNotFound, input.LeadID)
			}
			return nil, err
		}
		company, location = lead.Company, lead.Location
	}
	if company == "" {
		return nil, fmt.Errorf("%w: no company to enrich", ErrLeadNotFound)
	}

	results, cacheHit, err := h.cache.Get(ctx, company, location)
	if err != nil {
		h.logger.Warn("discovery cache unavailable", map[string]interface{}{
			"error": err.Error(),
		})
	}
	if !cacheHit {
		results, err = h.search(ctx, company, location)
		if err != nil {
			return nil, err
		}
		if err := h.cache.Set(ctx, company, location, results); err != nil {
			h.logger.Warn("discovery cache write failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	description, website := summarize(results)

	if input.LeadID != 0 && description != "" {
		if err := h.store.UpdateEnrichment(ctx, input.LeadID, description, website); err != nil {
			return nil, err
		}
	}

	h.logger.Info("lead enriched", map[string]interface{}{
		"company":     company,
		"resultCount": len(results),
		"cacheHit":    cacheHit,
	})

	return &Output{
		LeadID:             input.LeadID,
		CompanyDescription: description,
		Website:            website,
		Sources:            results,
		CacheHit:           cacheHit,
	}, nil
}

func (h *Handler) search(ctx context.Context, company, location string) ([]store.DiscoveryResult, error) {
	query := strings.TrimSpace(company + " " + location)

	base, err := url.Parse(h.config.SearchAPIBaseURL)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Add("key", h.config.SearchAPIKey)
	params.Add("cx", h.config.SearchEngineID)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", h.config.MaxResults))
	base.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded ||
			strings.Contains(err.Error(), "timeout") ||
			strings.Contains(err.Error(), "deadline") ||
			strings.Contains(err.Error(), "Client.Timeout") {
			return nil, ErrEnrichmentAPITimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned %d", resp.StatusCode)
	}

	var apiResponse struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var results []store.DiscoveryResult
	for _, item := range apiResponse.Items {
		if seen[item.Link] {
			continue
		}
		seen[item.Link] = true
		results = append(results, store.DiscoveryResult{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
	}
	return results, nil
}

// summarize builds a company description from the top snippets and picks
// the first result link as the candidate website.
func summarize(results []store.DiscoveryResult) (string, string) {
	if len(results) == 0 {
		return "", ""
	}

	var snippets []string
	for i, r := range results {
		if i == 3 {
			break
		}
		if s := strings.TrimSpace(r.Snippet); s != "" {
			snippets = append(snippets, s)
		}
	}
	return strings.Join(snippets, " "), results[0].Link
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
