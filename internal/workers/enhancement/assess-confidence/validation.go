// internal/workers/enhancement/assess-confidence/validation.go
package assessconfidence

import "enhancement-workers/internal/common/validation"

// inputSchema guards the job payload before it is decoded. Process
// variables beyond this worker's input pass through unchecked.
const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["sources"],
	"properties": {
		"sources":  {"type": ["array", "null"]},
		"scenario": {"type": "string"}
	}
}`

func ValidateInput(payload []byte) (*validation.ValidationResult, error) {
	return validation.ValidateJSON(payload, inputSchema)
}
