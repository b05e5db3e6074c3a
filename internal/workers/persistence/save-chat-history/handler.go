package savechathistory

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"enhancement-workers/internal/common/logger"
)

const (
	TaskType = "save-chat-history"
)

var (
	ErrHistorySaveFailed = errors.New("HISTORY_SAVE_FAILED")
	ErrDuplicateMessage  = errors.New("DUPLICATE_MESSAGE")
	ErrInvalidMessage    = errors.New("VALIDATION_FAILED")
)

type Handler struct {
	config *Config
	db     *sql.DB
	logger logger.Logger
}

func NewHandler(config *Config, db *sql.DB, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		db:     db,
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
		errorCode := "UNKNOWN_ERROR"
		retries := int32(0)
		if errors.Is(err, ErrHistorySaveFailed) {
			errorCode = "HISTORY_SAVE_FAILED"
			retries = 3
		} else if errors.Is(err, ErrDuplicateMessage) {
			errorCode = "DUPLICATE_MESSAGE"
		} else if errors.Is(err, ErrInvalidMessage) {
			errorCode = "VALIDATION_FAILED"
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidMessage)
	}
	if strings.TrimSpace(input.ConversationID) == "" {
		return nil, fmt.Errorf("%w: conversationId is required", ErrInvalidMessage)
	}
	if input.Role != "user" && input.Role != "assistant" {
		return nil, fmt.Errorf("%w: role must be user or assistant, got %q", ErrInvalidMessage, input.Role)
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidMessage)
	}

	messageID := input.MessageID
	if messageID == "" {
		messageID = uuid.New().String()
	} else {
		// Client-supplied IDs make the save idempotent across retries.
		var exists bool
		err := h.db.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM chat_messages
				WHERE conversation_id = $1 AND id = $2
			)`, input.ConversationID, messageID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("%w: duplicate check failed: %v", ErrHistorySaveFailed, err)
		}
		if exists {
			return nil, fmt.Errorf("%w: message %s already saved in conversation %s",
				ErrDuplicateMessage, messageID, input.ConversationID)
		}
	}

	savedAt := time.Now().UTC().Format(time.RFC3339)

	enhancementJSON, err := json.Marshal(input.Enhancement)
	if err != nil {
		h.logger.Warn("failed to marshal enhancement details", map[string]interface{}{
			"error": err,
		})
		enhancementJSON = []byte("{}")
	}

	_, err = h.db.ExecContext(ctx, `
		INSERT INTO chat_messages (
			id, conversation_id, user_id, role, content,
			scenario, confidence, escalated, enhancement, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		messageID,
		input.ConversationID,
		input.UserID,
		input.Role,
		input.Content,
		input.Scenario,
		input.Confidence,
		input.Escalated,
		enhancementJSON,
		savedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: insert failed: %v", ErrHistorySaveFailed, err)
	}

	h.logger.Info("chat message saved", map[string]interface{}{
		"messageId":      messageID,
		"conversationId": input.ConversationID,
		"role":           input.Role,
		"scenario":       input.Scenario,
		"escalated":      input.Escalated,
	})

	return &Output{
		MessageID: messageID,
		SavedAt:   savedAt,
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
