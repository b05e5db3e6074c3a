package enhanceprompt

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
	TaskType = "enhance-prompt"
)

var (
	ErrEnhancementFailed = errors.New("ENHANCEMENT_FAILED")
)

type Handler struct {
	config *Config
	engine *enhancement.Engine
	logger logger.Logger
}

// NewHandler builds the worker. The expander may be nil, which disables
// user-variable substitution without affecting the rest of the pipeline.
func NewHandler(config *Config, expander enhancement.Expander, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: enhancement.NewEngine(config.Engine, expander),
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

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrEnhancementFailed)
	}

	businessContext := enhancement.BusinessContext{}
	if input.BusinessContext != nil {
		businessContext = *input.BusinessContext
	}

	result := h.engine.Enhance(ctx, input.BasePrompt, input.Query,
		models.ToSources(input.Sources), businessContext,
		enhancement.UserContext{UserID: input.UserID})

	metrics.EnhancementScenarios.WithLabelValues(string(result.Scenario.Type)).Inc()
	metrics.EnhancementConfidence.WithLabelValues(string(result.Confidence.Level)).Observe(result.Confidence.OverallConfidence)
	if result.Escalation.Required {
		metrics.EscalationsTriggered.WithLabelValues("required", string(result.Escalation.Urgency)).Inc()
	} else if result.Escalation.Suggested {
		metrics.EscalationsTriggered.WithLabelValues("suggested", string(result.Escalation.Urgency)).Inc()
	}

	return &Output{
		EnhancedPrompt:      result.EnhancedPrompt,
		Scenario:            result.Scenario.Type,
		ScenarioConfidence:  result.Scenario.Confidence,
		OverallConfidence:   result.Confidence.OverallConfidence,
		ConfidenceLevel:     result.Confidence.Level,
		Diversity:           result.Diversity,
		EscalationRequired:  result.Escalation.Required,
		EscalationSuggested: result.Escalation.Suggested,
		EscalationPrompt:    result.Escalation.Prompt,
		Citations:           result.Citations,
		UncertaintyLanguage: result.UncertaintyLanguage,
		BusinessRules:       result.BusinessRules,
		Recommendations:     result.Recommendations,
		FallbackPrompt:      result.FallbackPrompt,
		ProcessingTimeMs:    result.ProcessingTime.Milliseconds(),
		Error:               result.Error,
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
