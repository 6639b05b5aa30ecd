// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"leadflow-workers/internal/common/aws"
	"leadflow-workers/internal/common/camunda"
	"leadflow-workers/internal/common/config"
	"leadflow-workers/internal/common/database"
	"leadflow-workers/internal/common/logger"
	"leadflow-workers/internal/common/observability"
	"leadflow-workers/internal/engine/classify"
	"leadflow-workers/internal/engine/followup"
	"leadflow-workers/internal/engine/outreach"
	"leadflow-workers/internal/engine/scoring"
	"leadflow-workers/internal/knowledge"
	"leadflow-workers/internal/store"

	// Lead Pipeline Workers (2)
	el "leadflow-workers/internal/workers/leads/enrich-lead"
	sl "leadflow-workers/internal/workers/leads/score-lead"

	// Outbound Workers (2)
	df "leadflow-workers/internal/workers/outbound/draft-followup"
	do "leadflow-workers/internal/workers/outbound/draft-outreach"

	// Inbound Workers (1)
	cr "leadflow-workers/internal/workers/inbound/classify-reply"

	// Communication Workers (2)
	es "leadflow-workers/internal/workers/communication/email-send"
	no "leadflow-workers/internal/workers/communication/notify-operator"

	// Data Access Workers (2)
	ql "leadflow-workers/internal/workers/data-access/query-leads"
	srch "leadflow-workers/internal/workers/data-access/search-leads"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var camundaClient *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		camundaClient, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      10 * time.Second,
			RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zeebeClient := camundaClient.GetClient()
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init AWS clients (only when a worker needs them) ---
	var sesClient *aws.SESClient
	if cfg.Mail.Provider == "ses" || cfg.Alerts.Email.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Mail.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}

	var snsClient *aws.SNSClient
	if cfg.Alerts.SMS.Enabled {
		region := cfg.Alerts.AWS.Region
		if region == "" {
			region = cfg.Mail.AWS.Region
		}
		snsClient, err = aws.NewSNSClient(ctx, region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	// --- Load business knowledge and build engines ---
	pack := knowledge.LoadPack(cfg.Knowledge.PackPath, log)
	playbook := knowledge.LoadPlaybook(cfg.Knowledge.PlaybookPath, log)

	scorer := scoring.NewScorer(pack)
	classifier := classify.NewClassifier(playbook)
	outreachDrafter := outreach.NewDrafter(pack)
	followupDrafter := followup.NewDrafter(playbook)

	leadStore := store.NewLeadStore(pg.GetDB())
	discoveryCache := store.NewDiscoveryCache(
		redis.GetClient(),
		time.Duration(cfg.APIs.CompanySearch.CacheTTL)*time.Second,
	)

	zapLog.Info("All external service clients initialized")

	var activeWorkers []*camunda.Worker
	register := func(taskType string, handler camunda.HandlerFunc) {
		wcfg := cfg.Workers[taskType]
		w := camunda.NewWorker(
			zeebeClient,
			taskType,
			wcfg.MaxJobsActive,
			time.Duration(wcfg.Timeout)*time.Millisecond,
			handler,
			zapLog,
		)
		activeWorkers = append(activeWorkers, w)
	}

	// --- 1. Lead Pipeline Workers (2) ---
	if cfg.Workers[sl.TaskType].Enabled {
		handler := sl.NewHandler(
			&sl.Config{
				Timeout:            workerTimeout(cfg, sl.TaskType),
				QualifiedThreshold: cfg.Outreach.QualifiedThreshold,
				HotLeadThreshold:   cfg.Outreach.HotLeadThreshold,
			},
			leadStore, scorer, obs, log,
		)
		register(sl.TaskType, handler.Handle)
	}

	if cfg.Workers[el.TaskType].Enabled {
		handler := el.NewHandler(
			&el.Config{
				SearchAPIBaseURL: cfg.APIs.CompanySearch.BaseURL,
				SearchAPIKey:     cfg.APIs.CompanySearch.APIKey,
				SearchEngineID:   cfg.APIs.CompanySearch.EngineID,
				Timeout:          time.Duration(cfg.APIs.CompanySearch.Timeout) * time.Millisecond,
				MaxResults:       5,
			},
			leadStore, discoveryCache, log,
		)
		register(el.TaskType, handler.Handle)
	}

	// --- 2. Outbound Workers (2) ---
	if cfg.Workers[do.TaskType].Enabled {
		handler := do.NewHandler(
			&do.Config{Timeout: workerTimeout(cfg, do.TaskType)},
			leadStore, outreachDrafter, obs, log,
		)
		register(do.TaskType, handler.Handle)
	}

	if cfg.Workers[df.TaskType].Enabled {
		handler := df.NewHandler(
			&df.Config{Timeout: workerTimeout(cfg, df.TaskType)},
			leadStore, followupDrafter, obs, log,
		)
		register(df.TaskType, handler.Handle)
	}

	// --- 3. Inbound Workers (1) ---
	if cfg.Workers[cr.TaskType].Enabled {
		handler := cr.NewHandler(
			&cr.Config{Timeout: workerTimeout(cfg, cr.TaskType)},
			classifier, leadStore, log,
		)
		register(cr.TaskType, handler.Handle)
	}

	// --- 4. Communication Workers (2) ---
	if cfg.Workers[es.TaskType].Enabled {
		mailCfg := es.DefaultConfig()
		mailCfg.Timeout = workerTimeout(cfg, es.TaskType)
		if cfg.Mail.Provider != "" {
			mailCfg.Provider = cfg.Mail.Provider
		}
		if cfg.Mail.DailySendLimit > 0 {
			mailCfg.DailySendLimit = cfg.Mail.DailySendLimit
		}
		mailCfg.FromEmail = cfg.Mail.AWS.FromEmail
		if mailCfg.Provider == "smtp" {
			mailCfg.FromEmail = cfg.Mail.SMTP.DefaultFrom
			mailCfg.SMTPHost = cfg.Mail.SMTP.Host
			mailCfg.SMTPPort = cfg.Mail.SMTP.Port
			mailCfg.SMTPUsername = cfg.Mail.SMTP.Username
			mailCfg.SMTPPassword = cfg.Mail.SMTP.Password
			mailCfg.UseTLS = cfg.Mail.SMTP.UseTLS
		}
		if err := mailCfg.Validate(); err != nil {
			zapLog.Fatal("invalid mail config", zap.Error(err))
		}

		var sender es.Sender
		if mailCfg.Provider == "smtp" {
			sender = es.NewSMTPSender(mailCfg)
		} else {
			sender = es.NewSESSender(sesClient)
		}

		handler := es.NewHandler(mailCfg, leadStore, sender, obs, log)
		register(es.TaskType, handler.Handle)
	}

	if cfg.Workers[no.TaskType].Enabled {
		// Typed nil pointers must not leak into the interface fields.
		var alertSES no.SESAPI
		if sesClient != nil {
			alertSES = sesClient
		}
		var alertSNS no.SNSAPI
		if snsClient != nil {
			alertSNS = snsClient
		}
		handler := no.NewHandler(
			&no.Config{
				Timeout:      workerTimeout(cfg, no.TaskType),
				EmailEnabled: cfg.Alerts.Email.Enabled,
				EmailTo:      cfg.Alerts.Email.To,
				EmailFrom:    cfg.Mail.AWS.FromEmail,
				SMSEnabled:   cfg.Alerts.SMS.Enabled,
				SMSPhone:     cfg.Alerts.SMS.Phone,
				SMSSenderID:  cfg.Alerts.SMS.SenderID,
			},
			alertSES, alertSNS, log,
		)
		register(no.TaskType, handler.Handle)
	}

	// --- 5. Data Access Workers (2) ---
	if cfg.Workers[ql.TaskType].Enabled {
		handler := ql.NewHandler(
			&ql.Config{Timeout: workerTimeout(cfg, ql.TaskType)},
			pg.GetDB(), log,
		)
		register(ql.TaskType, handler.Handle)
	}

	if cfg.Workers[srch.TaskType].Enabled {
		handler := srch.NewHandler(
			&srch.Config{
				Timeout:   workerTimeout(cfg, srch.TaskType),
				IndexName: cfg.Database.Elasticsearch.LeadsIndex,
			},
			esClient.GetClient(), log,
		)
		register(srch.TaskType, handler.Handle)
	}

	zapLog.Info("All workers registered")

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := camundaClient.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")

	for _, w := range activeWorkers {
		w.Close()
	}
	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func workerTimeout(cfg *config.Config, taskType string) time.Duration {
	return time.Duration(cfg.Workers[taskType].Timeout) * time.Millisecond
}
