// internal/workers/retrieval/query-knowledge-base/validation.go
package queryknowledgebase

import "enhancement-workers/internal/common/validation"

// inputSchema guards the job payload before it is decoded. Process
// variables beyond this worker's input pass through unchecked.
const inputSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["query"],
	"properties": {
		"query":       {"type": "string"},
		"indexName":   {"type": "string"},
		"sourceTypes": {"type": ["array", "null"], "items": {"type": "string"}},
		"category":    {"type": "string"},
		"maxResults":  {"type": "integer", "minimum": 0},
		"minScore":    {"type": "number"},
		"userId":      {"type": "string"}
	}
}`

func ValidateInput(payload []byte) (*validation.ValidationResult, error) {
	return validation.ValidateJSON(payload, inputSchema)
}
