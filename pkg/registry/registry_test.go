package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadRegistry(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"activities": [
			{"id": "chat.prompt.enhance", "taskType": "enhance-prompt", "category": "enhancement"},
			{"id": "chat.knowledge.search", "taskType": "query-knowledge-base", "category": "retrieval"}
		]
	}`)

	reg, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.Len(t, reg.Activities, 2)

	activity, found := reg.FindByTaskType("enhance-prompt")
	require.True(t, found)
	assert.Equal(t, "chat.prompt.enhance", activity.ID)

	_, found = reg.FindByTaskType("unknown-task")
	assert.False(t, found)

	activity, found = reg.FindByID("chat.knowledge.search")
	require.True(t, found)
	assert.Equal(t, "query-knowledge-base", activity.TaskType)

	_, found = reg.FindByID("chat.unknown.activity")
	assert.False(t, found)
}

func TestLoadRegistry_RejectsUnknownCategory(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"activities": [
			{"id": "chat.prompt.enhance", "taskType": "enhance-prompt", "category": "auth"}
		]
	}`)

	_, err := LoadRegistry(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestLoadRegistry_RejectsBadActivityID(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"activities": [
			{"id": "EnhancePrompt", "taskType": "enhance-prompt"}
		]
	}`)

	_, err := LoadRegistry(path)
	assert.Error(t, err)
}

func TestLoadRegistry_RejectsDuplicateTaskTypes(t *testing.T) {
	path := writeRegistry(t, `{
		"version": "1.0.0",
		"activities": [
			{"id": "chat.prompt.enhance", "taskType": "enhance-prompt", "category": "enhancement"},
			{"id": "chat.prompt.compose", "taskType": "enhance-prompt", "category": "enhancement"}
		]
	}`)

	_, err := LoadRegistry(path)
	assert.Error(t, err)
}
