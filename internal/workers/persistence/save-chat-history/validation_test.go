package savechathistory

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
			name:    "assistant message with enhancement",
			payload: `{"conversationId": "conv-1", "role": "assistant", "content": "Returns are free within 30 days.", "confidence": 0.82, "escalated": false, "enhancement": {"scenario": "return_refund"}}`,
			valid:   true,
		},
		{
			name:    "user message",
			payload: `{"conversationId": "conv-1", "role": "user", "content": "how do returns work"}`,
			valid:   true,
		},
		{
			name:    "missing content",
			payload: `{"conversationId": "conv-1", "role": "user"}`,
			valid:   false,
		},
		{
			name:    "unknown role",
			payload: `{"conversationId": "conv-1", "role": "system", "content": "hi"}`,
			valid:   false,
		},
		{
			name:    "confidence out of range",
			payload: `{"conversationId": "conv-1", "role": "assistant", "content": "hi", "confidence": 1.4}`,
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
