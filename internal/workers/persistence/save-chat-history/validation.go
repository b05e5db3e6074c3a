// internal/workers/persistence/save-chat-history/validation.go
package savechathistory

import "enhancement-workers/internal/common/validation"

// inputSchema guards the job payload before it is decoded. Process
// variables beyond this worker's input pass through unchecked.
const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["conversationId", "role", "content"],
	"properties": {
		"conversationId": {"type": "string"},
		"userId":         {"type": "string"},
		"role":           {"type": "string", "enum": ["user", "assistant"]},
		"content":        {"type": "string"},
		"messageId":      {"type": "string"},
		"scenario":       {"type": "string"},
		"confidence":     {"type": "number", "minimum": 0, "maximum": 1},
		"escalated":      {"type": "boolean"},
		"enhancement":    {"type": ["object", "null"]}
	}
}`

func ValidateInput(payload []byte) (*validation.ValidationResult, error) {
	return validation.ValidateJSON(payload, inputSchema)
}
