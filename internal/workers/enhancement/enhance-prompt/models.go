// internal/workers/enhancement/enhance-prompt/models.go
package enhanceprompt

import (
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/internal/models"
)

type Input struct {
	BasePrompt      string                       `json:"basePrompt"`
	Query           string                       `json:"query"`
	Sources         []models.KnowledgeSource     `json:"sources,omitempty"`
	BusinessContext *enhancement.BusinessContext `json:"businessContext,omitempty"`
	UserID          string                       `json:"userId,omitempty"`
}

type Output struct {
	EnhancedPrompt      string                          `json:"enhancedPrompt"`
	Scenario            enhancement.ScenarioType        `json:"scenario"`
	ScenarioConfidence  float64                         `json:"scenarioConfidence"`
	OverallConfidence   float64                         `json:"overallConfidence"`
	ConfidenceLevel     enhancement.ConfidenceLevel     `json:"confidenceLevel"`
	Diversity           enhancement.DiversityAssessment `json:"diversity"`
	EscalationRequired  bool                            `json:"escalationRequired"`
	EscalationSuggested bool                            `json:"escalationSuggested"`
	EscalationPrompt    string                          `json:"escalationPrompt"`
	Citations           string                          `json:"citations"`
	UncertaintyLanguage string                          `json:"uncertaintyLanguage"`
	BusinessRules       string                          `json:"businessRules"`
	Recommendations     string                          `json:"recommendations,omitempty"`
	FallbackPrompt      string                          `json:"fallbackPrompt"`
	ProcessingTimeMs    int64                           `json:"processingTimeMs"`
	Error               string                          `json:"error,omitempty"`
}
