// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"

	"enhancement-workers/internal/common/config"
	"enhancement-workers/internal/common/logger"
)

// JobHandler is the handler contract all task workers implement. Handlers
// complete or fail the job themselves through the job client.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
}

// Worker wraps an open Zeebe job subscription for one task type.
type Worker struct {
	worker   worker.JobWorker
	log      logger.Logger
	taskType string
}

// StartWorker opens a job subscription for taskType using the per-worker
// settings from configuration.
func StartWorker(client zbc.Client, taskType string, cfg config.WorkerConfig, handler JobHandler, log logger.Logger) *Worker {
	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler.Handle).
		MaxJobsActive(cfg.MaxJobsActive).
		Timeout(time.Duration(cfg.Timeout) * time.Millisecond).
		PollInterval(time.Duration(cfg.PollInterval) * time.Millisecond).
		Open()

	log.WithFields(map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": cfg.MaxJobsActive,
	}).Info("Worker started", nil)

	return &Worker{
		worker:   jobWorker,
		log:      log,
		taskType: taskType,
	}
}

// Close stops polling and waits for in-flight jobs to finish.
func (w *Worker) Close() {
	w.log.WithFields(map[string]interface{}{"taskType": w.taskType}).Info("Stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
}
