// internal/enhancement/scenario.go
package enhancement

import (
	"regexp"
	"strings"
)

// scenarioDetector holds the lexical rules for one scenario. Rule tables are
// data, not control flow, so they can be tested and extended independently.
type scenarioDetector struct {
	scenario ScenarioType
	keywords []string
	patterns []*regexp.Regexp
	// boostTypes maps source-type tags whose presence adds a contextual
	// boost to this scenario's score.
	boostTypes map[string]bool
}

// scenarioDetectors are evaluated in declaration order; ties keep the earlier
// entry so classification stays deterministic.
var scenarioDetectors = []scenarioDetector{
	{
		scenario: ScenarioProductRecommendation,
		keywords: []string{
			"recommend", "suggest", "best", "good", "better", "compare",
			"similar", "alternative", "which one", "what should", "need",
			"looking for", "want", "prefer", "like", "suitable",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(recommend|suggest|best|good)\b.*\b(for|to)\b`),
			regexp.MustCompile(`(?i)\b(which|what).*\b(should|would|do)\b.*\b(recommend|suggest|buy)\b`),
			regexp.MustCompile(`(?i)\b(need|looking for|want)\b.*\b(laptop|phone|product|item)\b`),
		},
		boostTypes: map[string]bool{"product_catalog": true},
	},
	{
		scenario: ScenarioOrderInquiry,
		keywords: []string{
			"order", "shipping", "delivery", "track", "status", "when",
			"arrive", "shipped", "package", "tracking", "shipment",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(where|when).*\b(order|package|shipment)\b`),
			regexp.MustCompile(`(?i)\b(track|status).*\b(order|shipping|delivery)\b`),
			regexp.MustCompile(`(?i)\border\s*#?\s*\d+`),
		},
		boostTypes: map[string]bool{"order_data": true},
	},
	{
		scenario: ScenarioReturnRefund,
		keywords: []string{
			"return", "refund", "exchange", "money back", "send back",
			"policy", "defective", "broken", "wrong", "damaged",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(return|refund|exchange)\b`),
			regexp.MustCompile(`(?i)\b(money\s+back|send\s+back)\b`),
			regexp.MustCompile(`(?i)\b(defective|broken|damaged|wrong)\b`),
		},
		boostTypes: map[string]bool{"policy_doc": true},
	},
	{
		scenario: ScenarioPricingAvailability,
		keywords: []string{
			"price", "cost", "how much", "expensive", "cheap", "discount",
			"sale", "available", "in stock", "out of stock", "inventory",
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(how\s+much|what.*cost|what.*price)\b`),
			regexp.MustCompile(`(?i)\b(in\s+stock|out\s+of\s+stock|available)\b`),
			regexp.MustCompile(`\$\d+`),
		},
		boostTypes: map[string]bool{"product_catalog": true},
	},
}

const (
	keywordWeight = 1.0
	patternWeight = 2.0
	sourceBoost   = 1.0
)

// Classify scores the query against every scenario rule set and returns the
// best match. Empty or whitespace-only queries, and queries whose best score
// stays under the detection threshold, fall back to the neutral general
// scenario with confidence 0.5.
func Classify(cfg ClassifierConfig, query string, sources []*Source) Scenario {
	scores := make(map[ScenarioType]float64, len(scenarioDetectors)+1)
	for _, d := range scenarioDetectors {
		scores[d.scenario] = 0
	}

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return Scenario{Type: ScenarioGeneral, Confidence: neutralConfidence, AlternativeScores: scores}
	}

	valid := validSources(sources)
	denom := cfg.ScoreDenominator
	if denom <= 0 {
		denom = DefaultClassifierConfig().ScoreDenominator
	}

	best := Scenario{Type: ScenarioGeneral, Confidence: 0}
	for _, d := range scenarioDetectors {
		var raw float64
		for _, kw := range d.keywords {
			if strings.Contains(normalized, kw) {
				raw += keywordWeight
			}
		}
		for _, p := range d.patterns {
			if p.MatchString(normalized) {
				raw += patternWeight
			}
		}
		for _, s := range valid {
			if d.boostTypes[s.SourceType()] {
				raw += sourceBoost
				break
			}
		}

		score := clamp(raw/denom, 0, 1)
		scores[d.scenario] = score
		if score > best.Confidence {
			best = Scenario{Type: d.scenario, Confidence: score}
		}
	}

	if best.Confidence < cfg.ContextDetectionThreshold {
		return Scenario{Type: ScenarioGeneral, Confidence: neutralConfidence, AlternativeScores: scores}
	}

	best.AlternativeScores = scores
	return best
}
