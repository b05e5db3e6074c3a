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

	"enhancement-workers/internal/common/aws"
	"enhancement-workers/internal/common/camunda"
	"enhancement-workers/internal/common/config"
	"enhancement-workers/internal/common/database"
	"enhancement-workers/internal/common/logger"
	"enhancement-workers/internal/common/observability"
	"enhancement-workers/internal/common/template"
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/pkg/registry"

	// Retrieval Workers (1)
	qkb "enhancement-workers/internal/workers/retrieval/query-knowledge-base"

	// Enhancement Workers (4)
	ac "enhancement-workers/internal/workers/enhancement/assess-confidence"
	cs "enhancement-workers/internal/workers/enhancement/classify-scenario"
	ep "enhancement-workers/internal/workers/enhancement/enhance-prompt"
	ee "enhancement-workers/internal/workers/enhancement/evaluate-escalation"

	// Persistence & Communication Workers (2)
	ne "enhancement-workers/internal/workers/communication/notify-escalation"
	sch "enhancement-workers/internal/workers/persistence/save-chat-history"
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

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Validate Activity Registry ---
	if cfg.Registry.Path != "" {
		reg, err := registry.LoadRegistry(cfg.Registry.Path)
		if err != nil {
			zapLog.Fatal("activity registry invalid", zap.Error(err))
		}
		zapLog.Info("Activity registry loaded",
			zap.String("path", cfg.Registry.Path),
			zap.Int("activities", len(reg.Activities)),
		)
	}

	// --- Init Zeebe Client with retry ---
	camundaClient, err := camunda.Dial(&camunda.ClientConfig{
		GatewayAddress:         cfg.Camunda.BrokerAddress,
		UsePlaintextConnection: true,
		ConnectionTimeout:      10 * time.Second,
		RequestTimeout:         time.Duration(cfg.Camunda.RequestTimeout) * time.Millisecond,
	}, log)
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
		// Test the connection with context
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
		// Test the connection
		return esClient.Ping()
	}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

	if err != nil {
		zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
	}
	zapLog.Info("Elasticsearch connected successfully")

	knowledgeIndex := qkb.FromAppConfig(cfg).Index
	if exists, err := esClient.KnowledgeIndexExists(ctx, knowledgeIndex); err != nil {
		zapLog.Warn("knowledge index check failed", zap.Error(err))
	} else if !exists {
		zapLog.Warn("knowledge index missing; retrieval jobs will fail until it is created",
			zap.String("index", knowledgeIndex))
	}

	// --- Init Redis with retry ---
	var redis *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redis, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		// Test the connection with context
		return redis.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redis.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init External Service Clients ---
	var expander enhancement.Expander
	if cfg.Template.BaseURL != "" {
		expander = template.NewExpander(cfg.Template, redis, log)
		zapLog.Info("Template expansion service configured", zap.String("baseURL", cfg.Template.BaseURL))
	}

	var sesClient *aws.SESClient
	if cfg.Integrations.AWS.SES.Enabled {
		sesClient, err = aws.NewSESClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("ses client failed", zap.Error(err))
		}
	}

	var snsClient *aws.SNSClient
	if cfg.Integrations.AWS.SNS.Enabled {
		snsClient, err = aws.NewSNSClient(ctx, cfg.Integrations.AWS.Region)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
	}

	zapLog.Info("All external service clients initialized")

	var workers []*camunda.Worker
	register := func(taskType string, handler camunda.JobHandler) {
		wcfg := config.GetWorkerConfig(cfg, taskType)
		workers = append(workers, camunda.StartWorker(zeebeClient, taskType, wcfg, handler, log))
	}

	// --- START: Register ALL 7 Workers ---

	// --- 1. Retrieval Workers (1) ---
	if config.IsWorkerEnabled(cfg, qkb.TaskType) {
		handler := qkb.NewHandler(qkb.FromAppConfig(cfg), esClient.Client, log)
		register(qkb.TaskType, handler)
	}

	// --- 2. Enhancement Workers (4) ---
	if config.IsWorkerEnabled(cfg, cs.TaskType) {
		handler := cs.NewHandler(cs.FromAppConfig(cfg), log)
		register(cs.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, ac.TaskType) {
		handler := ac.NewHandler(ac.FromAppConfig(cfg), log)
		register(ac.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, ee.TaskType) {
		handler := ee.NewHandler(ee.FromAppConfig(cfg), log)
		register(ee.TaskType, handler)
	}

	if config.IsWorkerEnabled(cfg, ep.TaskType) {
		handler := ep.NewHandler(ep.FromAppConfig(cfg), expander, log)
		register(ep.TaskType, handler)
	}

	// --- 3. Persistence Workers (1) ---
	if config.IsWorkerEnabled(cfg, sch.TaskType) {
		handler := sch.NewHandler(sch.FromAppConfig(cfg), pg.DB, log)
		register(sch.TaskType, handler)
	}

	// --- 4. Communication Workers (1) ---
	if config.IsWorkerEnabled(cfg, ne.TaskType) {
		handler := ne.NewHandler(ne.FromAppConfig(cfg), sesClient, snsClient, log)
		register(ne.TaskType, handler)
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", len(workers)))

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
					"reason": err.Error(),
				})
				return
			}
			if err := pg.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"reason": err.Error(),
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

	for _, w := range workers {
		w.Close()
	}

	if err := camundaClient.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}
