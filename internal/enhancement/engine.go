// internal/enhancement/engine.go

// Package enhancement implements the classification-and-composition pipeline
// behind the knowledge assistant: scenario detection, aggregate source
// confidence, escalation triggers, business-rule text, and prompt assembly.
// Every component is a pure function of its configuration and inputs, so any
// number of requests can run concurrently with no locking. Malformed input
// (nil sources, missing metadata, empty queries) never panics and never
// returns an error; documented defaults substitute instead.
package enhancement

import (
	"context"
	"fmt"
	"time"
)

// Engine bundles the component configs behind one entry point per concern.
// Configuration is immutable after construction.
type Engine struct {
	cfg      Config
	expander Expander
}

// NewEngine builds an engine. A nil expander disables user-variable
// expansion; everything else still works.
func NewEngine(cfg Config, expander Expander) *Engine {
	if cfg.Classifier.ScoreDenominator == 0 {
		cfg.Classifier = DefaultClassifierConfig()
	}
	if cfg.Confidence.HighThreshold == 0 {
		cfg.Confidence = DefaultConfidenceConfig()
	}
	if cfg.Escalation.ConfidenceThreshold == 0 && len(cfg.Escalation.TriggerPhrases) == 0 {
		cfg.Escalation = DefaultEscalationConfig()
	}
	if cfg.Rules.MaxRecommendations == 0 {
		cfg.Rules = DefaultRulesConfig()
	}
	if cfg.Composer.MaxTokensPerSource == 0 {
		cfg.Composer = DefaultComposerConfig()
	}
	return &Engine{cfg: cfg, expander: expander}
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

func (e *Engine) Classify(query string, sources []*Source) Scenario {
	return Classify(e.cfg.Classifier, query, sources)
}

func (e *Engine) AggregateConfidence(sources []*Source) ConfidenceAssessment {
	return AggregateConfidence(e.cfg.Confidence, sources)
}

func (e *Engine) AssessDiversity(sources []*Source) DiversityAssessment {
	return AssessDiversity(sources)
}

func (e *Engine) EvaluateEscalation(query string, sources []*Source, scenario ScenarioType) EscalationDecision {
	return EvaluateEscalation(e.cfg.Escalation, e.cfg.Confidence, query, sources, scenario)
}

func (e *Engine) ApplyBusinessRules(scenario Scenario, sources []*Source) string {
	return ApplyBusinessRules(e.cfg.Rules, scenario, sources)
}

func (e *Engine) Recommend(sources []*Source, mode RecommendationMode) string {
	return Recommend(e.cfg.Rules, sources, mode)
}

// Compose assembles the final prompt. The confidence, diversity, and
// escalation results live on EnhancementResult; the composed text derives its
// own guidance from the raw per-source confidence, matching the framing the
// assistant backend expects.
func (e *Engine) Compose(ctx context.Context, basePrompt, query string, sources []*Source,
	scenario Scenario, businessContext BusinessContext, userContext UserContext) string {
	return Compose(ctx, e.cfg.Composer, e.expander, basePrompt, query, sources, scenario, businessContext, userContext)
}

// Enhance runs the whole pipeline for one query. It never returns an error:
// internal computation failures degrade into a low-confidence result that
// recommends escalation and carries fallback prompt text.
func (e *Engine) Enhance(ctx context.Context, basePrompt, query string, sources []*Source,
	businessContext BusinessContext, userContext UserContext) (result EnhancementResult) {

	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			result = e.degradedResult(fmt.Sprintf("enhancement processing failed: %v", r), time.Since(start))
		}
	}()

	scenario := e.Classify(query, sources)
	confidence := e.AggregateConfidence(sources)
	diversity := e.AssessDiversity(sources)
	escalation := e.EvaluateEscalation(query, sources, scenario.Type)

	recommendations := ""
	if scenario.Type == ScenarioProductRecommendation {
		recommendations = e.Recommend(sources, RecommendStandard)
	}

	composed := e.Compose(ctx, basePrompt, query, sources, scenario, businessContext, userContext)

	return EnhancementResult{
		Scenario:            scenario,
		Confidence:          confidence,
		Diversity:           diversity,
		Escalation:          escalation,
		Citations:           GenerateCitations(e.cfg.Confidence, sources),
		UncertaintyLanguage: BuildUncertaintyLanguage(confidence.Level, sources),
		BusinessRules:       e.ApplyBusinessRules(scenario, sources),
		Recommendations:     recommendations,
		FallbackPrompt:      BuildFallbackPrompt(e.cfg.Confidence, sources, scenario.Type),
		EnhancedPrompt:      composed,
		ProcessingTime:      time.Since(start),
	}
}

// degradedResult is the worst-case observable behavior: a valid result that
// tells the caller to defer to human support.
func (e *Engine) degradedResult(message string, elapsed time.Duration) EnhancementResult {
	return EnhancementResult{
		Scenario:   Scenario{Type: ScenarioGeneral, Confidence: neutralConfidence},
		Confidence: ConfidenceAssessment{OverallConfidence: neutralConfidence, Level: ConfidenceLow},
		Diversity:  DiversityAssessment{Level: DiversityNone},
		Escalation: EscalationDecision{
			Suggested: true,
			Reason:    "processing error occurred",
			Urgency:   UrgencyMedium,
			Prompt:    "Due to a processing error, please escalate to human support",
		},
		UncertaintyLanguage: "PROCESSING ERROR: Unable to assess confidence properly",
		FallbackPrompt:      "ERROR FALLBACK: Escalate to human support due to processing error",
		EnhancedPrompt:      "You are a helpful AI assistant. Please provide the best answer you can based on available information.",
		ProcessingTime:      elapsed,
		Error:               message,
	}
}
