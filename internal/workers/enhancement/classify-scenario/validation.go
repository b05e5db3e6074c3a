// internal/workers/enhancement/classify-scenario/validation.go
package classifyscenario

import "enhancement-workers/internal/common/validation"

// inputSchema guards the job payload before it is decoded. Process
// variables beyond this worker's input pass through unchecked.
const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["query"],
	"properties": {
		"query":   {"type": "string"},
		"sources": {"type": ["array", "null"]}
	}
}`

func ValidateInput(payload []byte) (*validation.ValidationResult, error) {
	return validation.ValidateJSON(payload, inputSchema)
}
