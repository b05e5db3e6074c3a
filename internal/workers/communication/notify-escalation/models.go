// internal/workers/communication/notify-escalation/models.go
package notifyescalation

const (
	StatusSent     = "sent"
	StatusDisabled = "disabled"
	StatusFailed   = "failed"
)

type Input struct {
	ConversationID string  `json:"conversationId"`
	UserID         string  `json:"userId,omitempty"`
	Query          string  `json:"query"`
	Reason         string  `json:"reason"`
	Urgency        string  `json:"urgency"`
	Scenario       string  `json:"scenario,omitempty"`
	Confidence     float64 `json:"confidence,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"`
	EmailSent      bool   `json:"emailSent"`
	PageSent       bool   `json:"pageSent"`
	SentAt         string `json:"sentAt"`
}
