// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"

	"enhancement-workers/internal/common/validation"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.Validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// FindByTaskType returns the activity registered for a Zeebe task type.
func (r *ActivityRegistry) FindByTaskType(taskType string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].TaskType == taskType {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// FindByID returns the activity with the given dotted ID.
func (r *ActivityRegistry) FindByID(id string) (*Activity, bool) {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i], true
		}
	}
	return nil, false
}

// Validate checks activity IDs follow the naming convention, categories are
// from the known set, and task types are unique.
func (r *ActivityRegistry) Validate() error {
	seen := make(map[string]string, len(r.Activities))
	for _, a := range r.Activities {
		if err := validation.ValidateActivityNaming(a.ID); err != nil {
			return fmt.Errorf("activity %q: %w", a.ID, err)
		}
		if !knownCategory(a.Category) {
			return fmt.Errorf("activity %q: unknown category %q (known: %v)", a.ID, a.Category, KnownCategories)
		}
		if prev, dup := seen[a.TaskType]; dup {
			return fmt.Errorf("task type %q registered by both %q and %q", a.TaskType, prev, a.ID)
		}
		seen[a.TaskType] = a.ID
	}
	return nil
}

func knownCategory(category string) bool {
	for _, c := range KnownCategories {
		if category == c {
			return true
		}
	}
	return false
}
