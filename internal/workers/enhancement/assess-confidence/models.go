// internal/workers/enhancement/assess-confidence/models.go
package assessconfidence

import (
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/internal/models"
)

type Input struct {
	Sources  []models.KnowledgeSource `json:"sources"`
	Scenario enhancement.ScenarioType `json:"scenario,omitempty"`
}

type Output struct {
	OverallConfidence   float64                         `json:"overallConfidence"`
	ConfidenceLevel     enhancement.ConfidenceLevel     `json:"confidenceLevel"`
	Diversity           enhancement.DiversityAssessment `json:"diversity"`
	Citations           string                          `json:"citations"`
	UncertaintyLanguage string                          `json:"uncertaintyLanguage"`
	FallbackPrompt      string                          `json:"fallbackPrompt"`
}
