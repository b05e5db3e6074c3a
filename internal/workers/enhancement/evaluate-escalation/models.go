// internal/workers/enhancement/evaluate-escalation/models.go
package evaluateescalation

import (
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/internal/models"
)

type Input struct {
	Query    string                   `json:"query"`
	Sources  []models.KnowledgeSource `json:"sources,omitempty"`
	Scenario enhancement.ScenarioType `json:"scenario,omitempty"`
}

type Output struct {
	EscalationRequired  bool                `json:"escalationRequired"`
	EscalationSuggested bool                `json:"escalationSuggested"`
	Reason              string              `json:"reason,omitempty"`
	Urgency             enhancement.Urgency `json:"urgency"`
	EscalationPrompt    string              `json:"escalationPrompt"`
}
