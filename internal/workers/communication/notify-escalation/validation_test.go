package notifyescalation

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
			name:    "full escalation payload",
			payload: `{"conversationId": "conv-1", "userId": "user-42", "query": "I want a manager", "reason": "low confidence", "urgency": "high", "confidence": 0.3}`,
			valid:   true,
		},
		{
			name:    "conversation id alone",
			payload: `{"conversationId": "conv-1"}`,
			valid:   true,
		},
		{
			name:    "missing conversation id",
			payload: `{"urgency": "high"}`,
			valid:   false,
		},
		{
			name:    "confidence out of range",
			payload: `{"conversationId": "conv-1", "confidence": -0.1}`,
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
