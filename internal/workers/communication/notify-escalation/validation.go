// internal/workers/communication/notify-escalation/validation.go
package notifyescalation

import "enhancement-workers/internal/common/validation"

// inputSchema guards the job payload before it is decoded. Process
// variables beyond this worker's input pass through unchecked.
const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["conversationId"],
	"properties": {
		"conversationId": {"type": "string"},
		"userId":         {"type": "string"},
		"query":          {"type": "string"},
		"reason":         {"type": "string"},
		"urgency":        {"type": "string"},
		"scenario":       {"type": "string"},
		"confidence":     {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

func ValidateInput(payload []byte) (*validation.ValidationResult, error) {
	return validation.ValidateJSON(payload, inputSchema)
}
