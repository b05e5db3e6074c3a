package assessconfidence

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
			name:    "sources with scenario",
			payload: `{"sources": [{"score": 0.8}], "scenario": "order_support"}`,
			valid:   true,
		},
		{
			name:    "null sources still satisfy required",
			payload: `{"sources": null}`,
			valid:   true,
		},
		{
			name:    "missing sources",
			payload: `{"scenario": "order_support"}`,
			valid:   false,
		},
		{
			name:    "sources is not an array",
			payload: `{"sources": "faq"}`,
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
