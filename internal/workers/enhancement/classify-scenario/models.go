// internal/workers/enhancement/classify-scenario/models.go
package classifyscenario

import (
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/internal/models"
)

type Input struct {
	Query   string                   `json:"query"`
	Sources []models.KnowledgeSource `json:"sources,omitempty"`
}

type Output struct {
	Scenario           enhancement.ScenarioType             `json:"scenario"`
	ScenarioConfidence float64                              `json:"scenarioConfidence"`
	AlternativeScores  map[enhancement.ScenarioType]float64 `json:"alternativeScores,omitempty"`
}
