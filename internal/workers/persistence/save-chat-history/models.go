// internal/workers/persistence/save-chat-history/models.go
package savechathistory

type Input struct {
	ConversationID string                 `json:"conversationId"`
	UserID         string                 `json:"userId"`
	Role           string                 `json:"role"`
	Content        string                 `json:"content"`
	MessageID      string                 `json:"messageId,omitempty"`
	Scenario       string                 `json:"scenario,omitempty"`
	Confidence     float64                `json:"confidence,omitempty"`
	Escalated      bool                   `json:"escalated,omitempty"`
	Enhancement    map[string]interface{} `json:"enhancement,omitempty"`
}

type Output struct {
	MessageID string `json:"messageId"`
	SavedAt   string `json:"savedAt"`
}
