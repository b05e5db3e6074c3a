package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatMessageSchema = `{
	"type": "object",
	"required": ["conversationId", "role", "content"],
	"properties": {
		"conversationId": {"type": "string", "minLength": 1},
		"role": {"type": "string", "enum": ["user", "assistant"]},
		"content": {"type": "string", "minLength": 1},
		"confidence": {"type": "number", "minimum": 0, "maximum": 1}
	}
}`

func TestValidateInput_ValidPayload(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{
		"conversationId": "conv-001",
		"role":           "user",
		"content":        "Can you recommend headphones?",
		"confidence":     0.87,
	}, chatMessageSchema)

	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestValidateInput_InvalidPayload(t *testing.T) {
	result, err := ValidateInput(map[string]interface{}{
		"conversationId": "conv-001",
		"role":           "system",
		"confidence":     1.5,
	}, chatMessageSchema)

	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("role"))
	assert.True(t, result.HasErrors("confidence"))
	assert.NotEmpty(t, result.GetErrorMessages())
}

func TestValidateJSON(t *testing.T) {
	result, err := ValidateJSON([]byte(`{"conversationId":"conv-001","role":"assistant","content":"Sure."}`), chatMessageSchema)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	_, err = ValidateJSON([]byte(`{not json`), chatMessageSchema)
	assert.Error(t, err)
}

func TestValidateActivityNaming(t *testing.T) {
	assert.NoError(t, ValidateActivityNaming("chat.prompt.enhance"))
	assert.NoError(t, ValidateActivityNaming("chat.history.save"))
	assert.Error(t, ValidateActivityNaming("enhance-prompt"))
	assert.Error(t, ValidateActivityNaming("chat.prompt"))
	assert.Error(t, ValidateActivityNaming("Chat.Prompt.Enhance"))
}

func TestValidateEmailAndPhone(t *testing.T) {
	assert.True(t, ValidateEmail("support@company.com"))
	assert.False(t, ValidateEmail("not-an-email"))

	assert.True(t, ValidatePhone("+1 (555) 123-4567"))
	assert.False(t, ValidatePhone("12345"))
}
