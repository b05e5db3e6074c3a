package evaluateescalation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"enhancement-workers/internal/common/logger"
	"enhancement-workers/internal/common/metrics"
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/internal/models"
)

const (
	TaskType = "evaluate-escalation"
)

var (
	ErrEvaluationFailed = errors.New("ENHANCEMENT_FAILED")
)

type Handler struct {
	config *Config
	engine *enhancement.Engine
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: enhancement.NewEngine(config.Engine, nil),
		logger: log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	if result, err := ValidateInput([]byte(job.Variables)); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("validate input: %v", err), 0)
		return
	} else if !result.Valid {
		h.failJob(client, job, "VALIDATION_FAILED", strings.Join(result.GetErrorMessages(), "; "), 0)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, "PARSE_ERROR", fmt.Sprintf("parse input: %v", err), 0)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, "ENHANCEMENT_FAILED", err.Error(), 0)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrEvaluationFailed)
	}

	scenario := input.Scenario
	if scenario == "" {
		scenario = enhancement.ScenarioGeneral
	}

	decision := h.engine.EvaluateEscalation(input.Query, models.ToSources(input.Sources), scenario)

	switch {
	case decision.Required:
		metrics.EscalationsTriggered.WithLabelValues("required", string(decision.Urgency)).Inc()
	case decision.Suggested:
		metrics.EscalationsTriggered.WithLabelValues("suggested", string(decision.Urgency)).Inc()
	}

	return &Output{
		EscalationRequired:  decision.Required,
		EscalationSuggested: decision.Suggested,
		Reason:              decision.Reason,
		Urgency:             decision.Urgency,
		EscalationPrompt:    decision.Prompt,
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
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, errorCode, errorMessage string, retries int32) {
	h.logger.Error("job failed", map[string]interface{}{
		"jobKey":       job.Key,
		"errorCode":    errorCode,
		"errorMessage": errorMessage,
		"retries":      retries,
	})

	_, err := client.NewThrowErrorCommand().
		JobKey(job.Key).
		ErrorCode(errorCode).
		ErrorMessage(errorMessage).
		Send(context.Background())
	if err != nil {
		h.logger.Error("failed to throw error", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
