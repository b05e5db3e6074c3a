// internal/enhancement/escalation.go
package enhancement

import (
	"fmt"
	"strings"
)

// scenarioEscalationTriggers lists the phrases in source text that mark a
// scenario as needing specialist handling. Product-style scenarios share the
// product list, support-style scenarios the support list; everything else
// falls back to general.
var scenarioEscalationTriggers = map[ScenarioType][]string{
	ScenarioProductRecommendation: {"complex specifications", "technical compatibility", "warranty claims", "custom requirements"},
	ScenarioPricingAvailability:   {"complex specifications", "technical compatibility", "warranty claims", "custom requirements"},
	ScenarioOrderInquiry:          {"account access", "billing disputes", "order modifications", "urgent issues"},
	ScenarioReturnRefund:          {"account access", "billing disputes", "order modifications", "urgent issues"},
	ScenarioGeneral:               {"policy exceptions", "account specific", "urgent requests", "complex scenarios"},
}

// EvaluateEscalation runs the trigger chain over the query and sources.
// The first trigger-phrase hit forces Required; softer signals only stack
// onto Suggested. Overall confidence is recomputed here so the decision is a
// pure function of its inputs.
func EvaluateEscalation(cfg EscalationConfig, confCfg ConfidenceConfig, query string, sources []*Source, scenario ScenarioType) EscalationDecision {
	decision := EscalationDecision{Urgency: UrgencyLow}
	normalized := strings.ToLower(query)
	valid := validSources(sources)

	// 1. Explicit frustration or urgency in the query.
	for _, phrase := range cfg.TriggerPhrases {
		if phrase != "" && strings.Contains(normalized, strings.ToLower(phrase)) {
			decision.Required = true
			decision.Reason = "customer expressed frustration or urgency"
			decision.Urgency = UrgencyHigh
			decision.Prompt = escalationPrompt(cfg, decision.Reason)
			return decision
		}
	}

	// 2. Source-flagged complexity.
	for _, s := range valid {
		if s.FlaggedForEscalation() {
			decision.Suggested = true
			decision.Reason = "complex issue requiring specialist knowledge"
			decision.Urgency = UrgencyMedium
			break
		}
	}

	// 3. Low aggregate confidence.
	overall := AggregateConfidence(confCfg, sources)
	if overall.OverallConfidence <= cfg.ConfidenceThreshold {
		decision.Suggested = true
		decision.Reason = "low confidence in available information"
		decision.Urgency = UrgencyMedium
	}

	// 4. Scenario-specific trigger words in source text.
	triggers, ok := scenarioEscalationTriggers[scenario]
	if !ok {
		triggers = scenarioEscalationTriggers[ScenarioGeneral]
	}
	for _, s := range valid {
		text := strings.ToLower(s.Text)
		if text == "" {
			continue
		}
		for _, trigger := range triggers {
			if strings.Contains(text, trigger) {
				decision.Suggested = true
				decision.Reason = fmt.Sprintf("%s scenario may require specialized assistance", scenario)
				if decision.Urgency == UrgencyLow {
					decision.Urgency = UrgencyMedium
				}
				break
			}
		}
	}

	// 5. Scenario heuristics: the data needed to answer is not among the
	// sources, so the request cannot be resolved automatically.
	trimmed := strings.TrimSpace(normalized)
	if strings.Contains(trimmed, "cancel") && strings.Contains(trimmed, "order") {
		decision.Suggested = true
		decision.Reason = "order cancellation may require human assistance"
		decision.Urgency = UrgencyMedium
	}
	if trimmed != "" && (scenario == ScenarioReturnRefund || strings.Contains(trimmed, "refund")) && !hasSourceType(valid, "product_catalog") {
		decision.Suggested = true
		decision.Reason = "refund request may need order verification"
		decision.Urgency = UrgencyMedium
	}
	if trimmed != "" && (scenario == ScenarioOrderInquiry || strings.Contains(trimmed, "track")) && !hasSourceType(valid, "order_data") {
		decision.Suggested = true
		decision.Reason = "order inquiry requires access to order management system"
		if decision.Urgency != UrgencyMedium {
			decision.Urgency = UrgencyLow
		}
	}

	if decision.Suggested {
		decision.Prompt = escalationPrompt(cfg, decision.Reason)
		return decision
	}

	if overall.Level == ConfidenceHigh {
		decision.Reason = "high confidence in available information"
	} else {
		decision.Reason = "adequate information available"
	}
	decision.Prompt = "ESCALATION GUIDANCE: Standard response - no escalation needed at this time"
	return decision
}

func hasSourceType(sources []*Source, sourceType string) bool {
	for _, s := range sources {
		if s.SourceType() == sourceType {
			return true
		}
	}
	return false
}

func escalationPrompt(cfg EscalationConfig, reason string) string {
	var b strings.Builder
	b.WriteString("ESCALATION GUIDANCE:\n")
	fmt.Fprintf(&b, "- This query may benefit from human support due to: %s\n", reason)
	b.WriteString("- Suggest contacting customer service for specialized assistance\n")
	b.WriteString("- Provide available information while acknowledging limitations\n")
	fmt.Fprintf(&b, "- Contact options: %s / %s (%s)\n", cfg.SupportEmail, cfg.SupportPhone, cfg.SupportHours)
	b.WriteString("- Set appropriate expectations for response time and resolution")
	return b.String()
}
