package enhanceprompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateInput(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		valid   bool
	}{
		{
			name:    "full payload",
			payload: `{"query": "best laptop under $1000", "basePrompt": "You are a helpful assistant.", "sources": [{"title": "Catalog"}], "businessContext": {"storeName": "Acme"}}`,
			valid:   true,
		},
		{
			name:    "null collaborator outputs",
			payload: `{"query": "best laptop", "sources": null, "businessContext": null}`,
			valid:   true,
		},
		{
			name:    "missing query",
			payload: `{"basePrompt": "You are a helpful assistant."}`,
			valid:   false,
		},
		{
			name:    "business context is not an object",
			payload: `{"query": "best laptop", "businessContext": "Acme"}`,
			valid:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateInput([]byte(tt.payload))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
		})
	}
}
