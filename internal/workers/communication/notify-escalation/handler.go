package notifyescalation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"enhancement-workers/internal/common/aws"
	"enhancement-workers/internal/common/logger"
	"enhancement-workers/internal/common/metrics"
	"enhancement-workers/internal/common/validation"
)

const (
	TaskType = "notify-escalation"
)

var (
	ErrNotificationSendFailed = errors.New("NOTIFICATION_SEND_FAILED")
	ErrInvalidNotification    = errors.New("VALIDATION_FAILED")
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	sesClient *aws.SESClient
	snsClient *aws.SNSClient
}

func NewHandler(config *Config, sesClient *aws.SESClient, snsClient *aws.SNSClient, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		sesClient: sesClient,
		snsClient: snsClient,
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
		errorCode := "NOTIFICATION_SEND_FAILED"
		retries := int32(0)
		if errors.Is(err, ErrInvalidNotification) {
			errorCode = "VALIDATION_FAILED"
		} else if errors.Is(err, ErrNotificationSendFailed) {
			retries = 3
		}
		h.failJob(client, job, errorCode, err.Error(), retries)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, fmt.Errorf("%w: input cannot be nil", ErrInvalidNotification)
	}
	if strings.TrimSpace(input.ConversationID) == "" {
		return nil, fmt.Errorf("%w: conversationId is required", ErrInvalidNotification)
	}

	notificationID := uuid.New().String()
	sentAt := time.Now().UTC().Format(time.RFC3339)

	subject := fmt.Sprintf("[%s] Chat escalation: %s", strings.ToUpper(urgencyOrDefault(input.Urgency)), input.ConversationID)
	body := h.renderBody(input)

	emailSent := false
	recipients := h.validRecipients()
	if h.config.EmailEnabled && h.sesClient != nil && len(recipients) > 0 {
		if !validation.ValidateEmail(h.config.FromEmail) {
			return nil, fmt.Errorf("%w: invalid sender address %q", ErrInvalidNotification, h.config.FromEmail)
		}
		if _, err := h.sesClient.SendPlainEmail(ctx, h.config.FromEmail, recipients, subject, body); err != nil {
			h.logger.Error("escalation email failed", map[string]interface{}{
				"error":          err,
				"conversationId": input.ConversationID,
			})
			return &Output{NotificationID: notificationID, Status: StatusFailed, SentAt: sentAt}, nil
		}
		emailSent = true
	}

	pageSent := false
	if h.config.SMSEnabled && h.snsClient != nil && h.shouldPage(input.Urgency) {
		if h.config.TopicARN != "" {
			if _, err := h.snsClient.PublishToTopic(ctx, h.config.TopicARN, subject, body); err != nil {
				h.logger.Error("escalation page failed", map[string]interface{}{
					"error":          err,
					"conversationId": input.ConversationID,
				})
				return &Output{NotificationID: notificationID, Status: StatusFailed, EmailSent: emailSent, SentAt: sentAt}, nil
			}
			pageSent = true
		}
		for _, number := range h.config.OnCallNumbers {
			if !validation.ValidatePhone(number) {
				h.logger.Warn("skipping invalid on-call number", map[string]interface{}{
					"phoneNumber": number,
				})
				continue
			}
			if _, err := h.snsClient.SendSMS(ctx, number, subject, h.config.SMSSenderID); err != nil {
				h.logger.Error("escalation SMS failed", map[string]interface{}{
					"error":          err,
					"conversationId": input.ConversationID,
				})
				return &Output{NotificationID: notificationID, Status: StatusFailed, EmailSent: emailSent, SentAt: sentAt}, nil
			}
			pageSent = true
		}
	}

	status := StatusDisabled
	if emailSent || pageSent {
		status = StatusSent
		metrics.EscalationsTriggered.WithLabelValues("notified", urgencyOrDefault(input.Urgency)).Inc()
	}

	h.logger.Info("escalation notification processed", map[string]interface{}{
		"notificationId": notificationID,
		"conversationId": input.ConversationID,
		"status":         status,
		"emailSent":      emailSent,
		"pageSent":       pageSent,
	})

	return &Output{
		NotificationID: notificationID,
		Status:         status,
		EmailSent:      emailSent,
		PageSent:       pageSent,
		SentAt:         sentAt,
	}, nil
}

// validRecipients drops malformed addresses so one bad entry in the
// configuration does not sink the whole notification.
func (h *Handler) validRecipients() []string {
	valid := make([]string, 0, len(h.config.Recipients))
	for _, addr := range h.config.Recipients {
		if !validation.ValidateEmail(addr) {
			h.logger.Warn("skipping invalid escalation recipient", map[string]interface{}{
				"recipient": addr,
			})
			continue
		}
		valid = append(valid, addr)
	}
	return valid
}

// shouldPage pages the on-call channel only at or above the configured urgency.
func (h *Handler) shouldPage(urgency string) bool {
	rank := map[string]int{"low": 0, "medium": 1, "high": 2}
	floor, ok := rank[strings.ToLower(h.config.SMSUrgencyFloor)]
	if !ok {
		floor = rank["high"]
	}
	return rank[strings.ToLower(urgency)] >= floor
}

func (h *Handler) renderBody(input *Input) string {
	var b strings.Builder
	b.WriteString("A chat conversation needs human attention.\n\n")
	fmt.Fprintf(&b, "Conversation: %s\n", input.ConversationID)
	if input.UserID != "" {
		fmt.Fprintf(&b, "User: %s\n", input.UserID)
	}
	if input.Scenario != "" {
		fmt.Fprintf(&b, "Scenario: %s\n", input.Scenario)
	}
	fmt.Fprintf(&b, "Urgency: %s\n", urgencyOrDefault(input.Urgency))
	if input.Confidence > 0 {
		fmt.Fprintf(&b, "Assistant confidence: %.0f%%\n", input.Confidence*100)
	}
	if input.Reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n", input.Reason)
	}
	if input.Query != "" {
		fmt.Fprintf(&b, "\nCustomer query:\n%s\n", input.Query)
	}
	return b.String()
}

func urgencyOrDefault(urgency string) string {
	switch strings.ToLower(urgency) {
	case "low", "medium", "high":
		return strings.ToLower(urgency)
	}
	return "medium"
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
