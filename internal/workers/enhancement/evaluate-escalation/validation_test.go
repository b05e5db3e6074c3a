package evaluateescalation

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
			name:    "query with context",
			payload: `{"query": "I want to speak to a manager", "sources": [], "scenario": "general"}`,
			valid:   true,
		},
		{
			name:    "query alone",
			payload: `{"query": "refund please"}`,
			valid:   true,
		},
		{
			name:    "missing query",
			payload: `{"scenario": "general"}`,
			valid:   false,
		},
		{
			name:    "scenario is not a string",
			payload: `{"query": "refund please", "scenario": ["general"]}`,
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
