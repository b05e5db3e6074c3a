// internal/enhancement/types.go
package enhancement

import "time"

// ScenarioType identifies the business scenario detected for a query.
type ScenarioType string

const (
	ScenarioProductRecommendation ScenarioType = "product_recommendation"
	ScenarioOrderInquiry          ScenarioType = "order_inquiry"
	ScenarioReturnRefund          ScenarioType = "return_refund"
	ScenarioPricingAvailability   ScenarioType = "pricing_availability"
	ScenarioGeneral               ScenarioType = "general"
)

// ConfidenceLevel is the banded category of a confidence score.
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// DiversityLevel describes how many distinct source types back a response.
type DiversityLevel string

const (
	DiversityNone   DiversityLevel = "none"
	DiversityLow    DiversityLevel = "low"
	DiversityMedium DiversityLevel = "medium"
	DiversityHigh   DiversityLevel = "high"
)

// Urgency grades an escalation recommendation.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// RecommendationMode selects the framing for product recommendation prompts.
type RecommendationMode string

const (
	RecommendStandard  RecommendationMode = "standard"
	RecommendCrossSell RecommendationMode = "cross_sell"
	RecommendUpsell    RecommendationMode = "upsell"
)

// Source is one retrieved candidate snippet with attribution metadata.
// Metadata keys mirror what the knowledge index stores (sourceType, confidence,
// docTitle, filename, category, sku, price, availability, lastUpdatedAt,
// escalationRequired, requiresHumanReview). Sources are read-only inputs; nil
// entries and nil metadata are tolerated everywhere.
type Source struct {
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Scenario is the detected business-query category.
type Scenario struct {
	Type              ScenarioType             `json:"type"`
	Confidence        float64                  `json:"confidence"`
	AlternativeScores map[ScenarioType]float64 `json:"alternativeScores,omitempty"`
}

// ConfidenceAssessment is the aggregate confidence over a source set.
type ConfidenceAssessment struct {
	OverallConfidence float64         `json:"overallConfidence"`
	Level             ConfidenceLevel `json:"level"`
}

// DiversityAssessment measures source-type spread. TotalSources reports the
// raw input length (how many sources were considered); UniqueTypes and
// DiversityRatio are computed over non-nil entries only.
type DiversityAssessment struct {
	Level          DiversityLevel `json:"level"`
	UniqueTypes    int            `json:"uniqueTypes"`
	TotalSources   int            `json:"totalSources"`
	DiversityRatio float64        `json:"diversityRatio"`
	SourceTypes    []string       `json:"sourceTypes,omitempty"`
}

// EscalationDecision is the outcome of escalation-trigger evaluation.
// Required is set only by explicit trigger phrases in the query; Suggested
// captures the softer signals (low confidence, missing data, flagged sources).
type EscalationDecision struct {
	Required  bool    `json:"required"`
	Suggested bool    `json:"suggested"`
	Reason    string  `json:"reason,omitempty"`
	Urgency   Urgency `json:"urgency"`
	Prompt    string  `json:"prompt"`
}

// EnhancementResult aggregates everything the pipeline produces for one query.
// It is created per request and handed to the caller; persistence is the
// chat-history worker's job.
type EnhancementResult struct {
	Scenario            Scenario             `json:"scenario"`
	Confidence          ConfidenceAssessment `json:"confidence"`
	Diversity           DiversityAssessment  `json:"diversity"`
	Escalation          EscalationDecision   `json:"escalation"`
	Citations           string               `json:"citations"`
	UncertaintyLanguage string               `json:"uncertaintyLanguage"`
	BusinessRules       string               `json:"businessRules"`
	Recommendations     string               `json:"recommendations"`
	FallbackPrompt      string               `json:"fallbackPrompt"`
	EnhancedPrompt      string               `json:"enhancedPrompt"`
	ProcessingTime      time.Duration        `json:"processingTimeMs"`
	Error               string               `json:"error,omitempty"`
}
