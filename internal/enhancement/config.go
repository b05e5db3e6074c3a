// internal/enhancement/config.go
package enhancement

// ClassifierConfig tunes scenario detection.
type ClassifierConfig struct {
	// ContextDetectionThreshold is the minimum normalized score a scenario
	// must reach before it beats the general fallback.
	ContextDetectionThreshold float64
	// ScoreDenominator normalizes the raw keyword/pattern score before capping.
	ScoreDenominator float64
}

func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		ContextDetectionThreshold: 0.1,
		ScoreDenominator:          3.0,
	}
}

// ConfidenceConfig tunes aggregation and banding.
type ConfidenceConfig struct {
	HighThreshold   float64
	MediumThreshold float64
	LowThreshold    float64
	MaxCitations    int
}

func DefaultConfidenceConfig() ConfidenceConfig {
	return ConfidenceConfig{
		HighThreshold:   0.85,
		MediumThreshold: 0.6,
		LowThreshold:    0.5,
		MaxCitations:    8,
	}
}

// EscalationConfig tunes escalation-trigger evaluation.
type EscalationConfig struct {
	// ConfidenceThreshold is the overall confidence at or below which
	// escalation is recommended.
	ConfidenceThreshold float64
	// TriggerPhrases force Required=true when any appears in the query.
	TriggerPhrases []string
	SupportHours   string
	SupportEmail   string
	SupportPhone   string
}

func DefaultEscalationConfig() EscalationConfig {
	return EscalationConfig{
		ConfidenceThreshold: 0.5,
		TriggerPhrases: []string{
			"angry", "frustrated", "unacceptable", "manager", "supervisor",
			"refund immediately", "terrible", "awful", "worst",
			"very angry", "completely unacceptable", "speak to a manager",
			"cancel my order right now", "immediate help", "right now",
		},
		SupportHours: "9AM-5PM EST",
		SupportEmail: "support@company.com",
		SupportPhone: "1-800-SUPPORT",
	}
}

// RulesConfig carries merchant business-rule values. Defaults are overridable
// per tenant; the engine never reads them from globals.
type RulesConfig struct {
	ReturnPeriodDays      int
	FreeShippingThreshold float64
	WarrantyPeriodDays    int
	UpsellThreshold       float64
	MaxRecommendations    int
	SupportHours          string
	SupportEmail          string
	SupportPhone          string
}

func DefaultRulesConfig() RulesConfig {
	return RulesConfig{
		ReturnPeriodDays:      30,
		FreeShippingThreshold: 50,
		WarrantyPeriodDays:    365,
		UpsellThreshold:       50,
		MaxRecommendations:    5,
		SupportHours:          "9AM-5PM EST",
		SupportEmail:          "support@company.com",
		SupportPhone:          "1-800-SUPPORT",
	}
}

// ComposerConfig tunes prompt assembly. ConfidenceThreshold here is the
// moderate-guidance floor (0.7) and is intentionally stricter than the
// aggregator's medium band.
type ComposerConfig struct {
	MaxSourcesPerPrompt     int
	MaxTokensPerSource      int
	HighConfidenceThreshold float64
	ConfidenceThreshold     float64
	EnableBusinessContext   bool
	EnableAttribution       bool
}

func DefaultComposerConfig() ComposerConfig {
	return ComposerConfig{
		MaxSourcesPerPrompt:     8,
		MaxTokensPerSource:      200,
		HighConfidenceThreshold: 0.85,
		ConfidenceThreshold:     0.7,
		EnableBusinessContext:   true,
		EnableAttribution:       true,
	}
}

// Config bundles the per-component configs an Engine is built from.
type Config struct {
	Classifier ClassifierConfig
	Confidence ConfidenceConfig
	Escalation EscalationConfig
	Rules      RulesConfig
	Composer   ComposerConfig
}

func DefaultConfig() Config {
	return Config{
		Classifier: DefaultClassifierConfig(),
		Confidence: DefaultConfidenceConfig(),
		Escalation: DefaultEscalationConfig(),
		Rules:      DefaultRulesConfig(),
		Composer:   DefaultComposerConfig(),
	}
}
