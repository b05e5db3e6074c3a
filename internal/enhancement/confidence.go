// internal/enhancement/confidence.go
package enhancement

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// reliabilityTiers weights per-source confidence by how trustworthy each
// source type has proven to be. Unlisted types fall back to the default.
var reliabilityTiers = map[string]float64{
	"official_docs":   1.2,
	"product_catalog": 1.2,
	"policy_doc":      1.1,
	"faq":             1.1,
	"user_manual":     1.0,
	"user_upload":     0.9,
	"web_scrape":      0.9,
}

const defaultReliabilityWeight = 0.8

const (
	staleContentAge  = 365 * 24 * time.Hour
	freshContentAge  = 30 * 24 * time.Hour
	staleMultiplier  = 0.9
	freshMultiplier  = 1.1
	diversityBonusHi = 0.05
	diversityBonusMd = 0.02
)

// AggregateConfidence combines per-source confidence into one clamped score.
// Empty or all-nil input returns the neutral 0.5 prior with a medium band
// directly; the banding formula only runs for populated input.
func AggregateConfidence(cfg ConfidenceConfig, sources []*Source) ConfidenceAssessment {
	valid := validSources(sources)
	if len(valid) == 0 {
		return ConfidenceAssessment{OverallConfidence: neutralConfidence, Level: ConfidenceMedium}
	}

	now := time.Now()
	var weightedSum, totalWeight float64
	for _, s := range valid {
		conf := s.Confidence()
		if conf <= 0 {
			continue
		}

		weight := defaultReliabilityWeight
		if w, ok := reliabilityTiers[s.SourceType()]; ok {
			weight = w
		}

		if updated, ok := s.LastUpdatedAt(); ok {
			age := now.Sub(updated)
			if age > staleContentAge {
				weight *= staleMultiplier
			} else if age < freshContentAge {
				weight *= freshMultiplier
			}
		}

		weightedSum += conf * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return ConfidenceAssessment{OverallConfidence: neutralConfidence, Level: ConfidenceMedium}
	}

	overall := weightedSum / totalWeight

	switch AssessDiversity(sources).Level {
	case DiversityHigh:
		overall += diversityBonusHi
	case DiversityMedium:
		overall += diversityBonusMd
	}

	overall = clamp(overall, 0.1, 1.0)

	return ConfidenceAssessment{
		OverallConfidence: math.Round(overall*1000) / 1000,
		Level:             Categorize(cfg, overall),
	}
}

// Categorize maps a confidence score into its band. Both threshold
// comparisons are inclusive.
func Categorize(cfg ConfidenceConfig, confidence float64) ConfidenceLevel {
	if confidence >= cfg.HighThreshold {
		return ConfidenceHigh
	}
	if confidence >= cfg.MediumThreshold {
		return ConfidenceMedium
	}
	return ConfidenceLow
}

// GenerateCitations renders the numbered source-attribution block, capped at
// MaxCitations, with type, confidence, and freshness annotations.
func GenerateCitations(cfg ConfidenceConfig, sources []*Source) string {
	valid := validSources(sources)
	if len(valid) == 0 {
		return ""
	}

	max := cfg.MaxCitations
	if max <= 0 {
		max = DefaultConfidenceConfig().MaxCitations
	}
	if len(valid) > max {
		valid = valid[:max]
	}

	var b strings.Builder
	b.WriteString("SOURCES:\n")
	now := time.Now()
	for i, s := range valid {
		fmt.Fprintf(&b, "[%d] %s (%s", i+1, s.DisplayName(), s.SourceType())
		if s.Metadata != nil {
			if _, ok := s.Metadata["confidence"]; ok {
				fmt.Fprintf(&b, ", confidence: %d%%", int(math.Round(s.Confidence()*100)))
			}
		}
		if updated, ok := s.LastUpdatedAt(); ok {
			ageDays := int(now.Sub(updated).Hours() / 24)
			switch {
			case ageDays <= 0:
				b.WriteString(", updated today")
			case ageDays < 7:
				fmt.Fprintf(&b, ", updated %d days ago", ageDays)
			case ageDays < 30:
				b.WriteString(", updated recently")
			case ageDays > 365:
				b.WriteString(", older content")
			}
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// uncertaintyTemplates holds the phrase banks the LLM is steered with per band.
var uncertaintyTemplates = map[ConfidenceLevel]struct {
	qualifiers []string
	phrases    []string
	attributes []string
}{
	ConfidenceHigh: {
		qualifiers: []string{"based on reliable sources", "according to authoritative information", "from verified documentation"},
		phrases:    []string{"I can confidently say", "The information clearly indicates", "Based on high-quality sources"},
		attributes: []string{"as documented in", "according to official sources", "as stated in reliable documentation"},
	},
	ConfidenceMedium: {
		qualifiers: []string{"based on available information", "according to current sources", "from generally reliable data"},
		phrases:    []string{"The information suggests", "It appears that", "Based on available sources"},
		attributes: []string{"according to sources", "as indicated in documentation", "based on available information"},
	},
	ConfidenceLow: {
		qualifiers: []string{"based on limited information", "from available sources", "with some uncertainty"},
		phrases:    []string{"The limited information suggests", "It may be that", "Based on uncertain sources"},
		attributes: []string{"according to limited sources", "as suggested by available information", "with some uncertainty"},
	},
}

// BuildUncertaintyLanguage produces the confidence-appropriate phrasing
// guidance block, annotated with the source-diversity context.
func BuildUncertaintyLanguage(level ConfidenceLevel, sources []*Source) string {
	t, ok := uncertaintyTemplates[level]
	if !ok {
		t = uncertaintyTemplates[ConfidenceMedium]
	}

	var b strings.Builder
	switch level {
	case ConfidenceHigh:
		fmt.Fprintf(&b, "CONFIDENCE GUIDANCE: High confidence response\n")
		fmt.Fprintf(&b, "- Use authoritative language: %q, %q\n", t.phrases[0], t.phrases[1])
		fmt.Fprintf(&b, "- Cite sources clearly: %q, %q\n", t.attributes[0], t.attributes[1])
		b.WriteString("- Present information confidently while maintaining accuracy\n")
		b.WriteString("- Acknowledge the reliable sources that support your response")
	case ConfidenceLow:
		fmt.Fprintf(&b, "CONFIDENCE GUIDANCE: Low confidence response\n")
		fmt.Fprintf(&b, "- Acknowledge uncertainty clearly: %q, %q\n", t.phrases[0], t.phrases[1])
		fmt.Fprintf(&b, "- Use careful qualifiers: %q, %q\n", t.qualifiers[0], t.qualifiers[1])
		b.WriteString("- Indicate that information may not be complete or fully reliable\n")
		b.WriteString("- Suggest verification or escalation when appropriate")
	default:
		fmt.Fprintf(&b, "CONFIDENCE GUIDANCE: Moderate confidence response\n")
		fmt.Fprintf(&b, "- Use qualified language: %q, %q\n", t.phrases[0], t.phrases[1])
		fmt.Fprintf(&b, "- Indicate reasonable certainty: %q, %q\n", t.qualifiers[0], t.qualifiers[1])
		b.WriteString("- The information should be accurate but acknowledge some uncertainty where appropriate\n")
		b.WriteString("- Balance confidence with appropriate caution")
	}

	if len(validSources(sources)) > 0 {
		d := AssessDiversity(sources)
		switch d.Level {
		case DiversityHigh:
			fmt.Fprintf(&b, "\n- Multiple sources (%d different types) support this information", d.UniqueTypes)
		case DiversityMedium:
			fmt.Fprintf(&b, "\n- Information comes from %d different source types", d.UniqueTypes)
		default:
			fmt.Fprintf(&b, "\n- Information primarily from %d source type(s) - consider this limitation", d.UniqueTypes)
		}
	}

	return b.String()
}

// BuildFallbackPrompt produces the guidance used when sources are missing or
// weak, so the model explains the gap instead of guessing.
func BuildFallbackPrompt(cfg ConfidenceConfig, sources []*Source, scenario ScenarioType) string {
	if len(validSources(sources)) == 0 {
		return fmt.Sprintf(`INSUFFICIENT INFORMATION:
- No relevant sources found for this query
- Acknowledge that specific information is not available
- Suggest alternative approaches or resources
- Provide general guidance if applicable to the %s scenario
- Offer to escalate to human support for detailed assistance
- Include contact information for further help`, scenario)
	}

	if AggregateConfidence(cfg, sources).OverallConfidence < cfg.LowThreshold {
		return `LIMITED CONFIDENCE:
- Available sources have low confidence scores
- Acknowledge uncertainty in the available information
- Provide what information is available with appropriate disclaimers
- Suggest verification through official channels
- Offer escalation to human support for authoritative answers`
	}

	return `STANDARD FALLBACK:
- Provide available information with appropriate confidence framing
- Use uncertainty language appropriate to confidence level
- Cite sources clearly with confidence indicators
- Offer additional assistance or escalation if needed`
}
