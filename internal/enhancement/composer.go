// internal/enhancement/composer.go
package enhancement

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Expander substitutes user-scoped template variables into assembled text.
// Implementations must treat an empty userID as a no-op passthrough. The
// composer tolerates expansion failure by keeping the unexpanded text.
type Expander interface {
	Expand(ctx context.Context, text, userID string) (string, error)
}

// BusinessContext carries merchant-level facts injected into the prompt.
type BusinessContext struct {
	CompanyName       string            `json:"companyName,omitempty"`
	ReturnPolicy      string            `json:"returnPolicy,omitempty"`
	FreeShipping      string            `json:"freeShipping,omitempty"`
	SupportHours      string            `json:"supportHours,omitempty"`
	SupportEmail      string            `json:"supportEmail,omitempty"`
	SupportPhone      string            `json:"supportPhone,omitempty"`
	EscalationEnabled bool              `json:"escalationEnabled,omitempty"`
	Extra             map[string]string `json:"extra,omitempty"`
}

func (bc BusinessContext) empty() bool {
	return bc.CompanyName == "" && bc.ReturnPolicy == "" && bc.FreeShipping == "" &&
		bc.SupportHours == "" && bc.SupportEmail == "" && bc.SupportPhone == "" &&
		!bc.EscalationEnabled && len(bc.Extra) == 0
}

// UserContext identifies the requesting user for variable expansion.
type UserContext struct {
	UserID string `json:"userId,omitempty"`
}

// formatGroup collapses the five scenarios into the three source-formatting
// styles the prompt templates distinguish.
type formatGroup int

const (
	groupGeneral formatGroup = iota
	groupProduct
	groupSupport
)

func groupFor(scenario ScenarioType) formatGroup {
	switch scenario {
	case ScenarioProductRecommendation, ScenarioPricingAvailability:
		return groupProduct
	case ScenarioOrderInquiry, ScenarioReturnRefund:
		return groupSupport
	default:
		return groupGeneral
	}
}

type promptTemplate struct {
	systemAddition string
	contextSection string
	instructions   []string
}

var promptTemplates = map[formatGroup]promptTemplate{
	groupProduct: {
		systemAddition: "You are an e-commerce product specialist. Focus on providing accurate product information including specifications, pricing, availability, and comparisons. Always include SKU numbers when available and cite your sources.",
		contextSection: "PRODUCT INFORMATION",
		instructions: []string{
			"Provide accurate product details including SKU, pricing, and availability",
			"Compare products when multiple items are mentioned",
			"Include specifications and features when relevant",
			"Always cite sources with [Product X] or [Source X] format",
			"If product is out of stock, suggest similar alternatives",
		},
	},
	groupSupport: {
		systemAddition: "You are a customer support specialist. Focus on helping customers with policies, procedures, and problem resolution. Provide clear, actionable guidance and know when to escalate to human support.",
		contextSection: "SUPPORT CONTEXT",
		instructions: []string{
			"Provide clear, step-by-step guidance when appropriate",
			"Reference relevant policies and procedures",
			"Include contact information for escalation when needed",
			"Be empathetic and solution-focused",
			"Always cite sources with [Policy X] or [Guide X] format",
		},
	},
	groupGeneral: {
		systemAddition: "You are a knowledgeable company representative. Provide helpful information about the business, services, and policies based on the knowledge base.",
		contextSection: "COMPANY INFORMATION",
		instructions: []string{
			"Provide accurate company and service information",
			"Reference official documentation when available",
			"Be professional and informative",
			"Always cite sources with [Reference X] format",
		},
	},
}

// Compose assembles the final prompt in a fixed section order: base prompt,
// scenario system addition, business context, formatted sources (or an
// explicit no-sources notice), attribution, confidence guidance, instruction
// checklist, then user-variable expansion last so it can touch any section.
func Compose(ctx context.Context, cfg ComposerConfig, expander Expander,
	basePrompt, query string, sources []*Source, scenario Scenario,
	businessContext BusinessContext, userContext UserContext) string {

	group := groupFor(scenario.Type)
	tmpl := promptTemplates[group]
	valid := validSources(sources)

	var b strings.Builder
	b.WriteString(basePrompt)

	b.WriteString("\n\n")
	b.WriteString(tmpl.systemAddition)

	if cfg.EnableBusinessContext && !businessContext.empty() {
		b.WriteString("\n\n")
		b.WriteString(renderBusinessContext(businessContext))
	}

	if len(valid) > 0 {
		fmt.Fprintf(&b, "\n\n%s:\n", tmpl.contextSection)
		b.WriteString(formatSources(cfg, valid, group))
	} else {
		b.WriteString("\n\nNo specific sources available for this query.")
	}

	if cfg.EnableAttribution && len(valid) > 0 {
		b.WriteString("\n\n")
		b.WriteString(buildAttribution(cfg, valid))
	}

	b.WriteString("\n\n")
	b.WriteString(confidenceGuidance(cfg, valid))

	b.WriteString("\n\nINSTRUCTIONS:\n")
	for i, instruction := range tmpl.instructions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, instruction)
	}

	composed := strings.TrimSpace(b.String())

	if expander != nil && userContext.UserID != "" {
		expanded, err := expander.Expand(ctx, composed, userContext.UserID)
		if err == nil {
			return expanded
		}
	}
	return composed
}

func formatSources(cfg ComposerConfig, valid []*Source, group formatGroup) string {
	max := cfg.MaxSourcesPerPrompt
	if max <= 0 {
		max = DefaultComposerConfig().MaxSourcesPerPrompt
	}
	if len(valid) > max {
		valid = valid[:max]
	}

	var b strings.Builder
	for i, s := range valid {
		text := truncateAtWord(s.Text, cfg.MaxTokensPerSource)
		switch group {
		case groupProduct:
			fmt.Fprintf(&b, "[Product %d]", i+1)
			if sku := s.SKU(); sku != "" {
				fmt.Fprintf(&b, " SKU: %s", sku)
			}
			if title := s.metaString("docTitle"); title != "" {
				fmt.Fprintf(&b, " %s", title)
			}
			if cat := s.Category(); cat != "" {
				fmt.Fprintf(&b, " (Category: %s)", cat)
			}
			fmt.Fprintf(&b, "\n%s", text)
			if price := s.PriceLabel(); price != "" {
				fmt.Fprintf(&b, "\nPrice: $%s", price)
			}
			if avail := s.Availability(); avail != "" {
				fmt.Fprintf(&b, "\nAvailability: %s", avail)
			}
		case groupSupport:
			fmt.Fprintf(&b, "[Support %d] %s", i+1, s.DisplayName())
			if cat := s.Category(); cat != "" {
				fmt.Fprintf(&b, " (Topic: %s)", cat)
			}
			fmt.Fprintf(&b, "\n%s", text)
			if updated, ok := s.LastUpdatedAt(); ok {
				fmt.Fprintf(&b, "\nLast Updated: %s", updated.Format("2006-01-02"))
			}
		default:
			fmt.Fprintf(&b, "[Reference %d] %s (%s)\n%s", i+1, s.DisplayName(), s.SourceType(), text)
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func buildAttribution(cfg ComposerConfig, valid []*Source) string {
	max := cfg.MaxSourcesPerPrompt
	if max <= 0 {
		max = DefaultComposerConfig().MaxSourcesPerPrompt
	}
	if len(valid) > max {
		valid = valid[:max]
	}

	var b strings.Builder
	b.WriteString("SOURCES:\n")
	for i, s := range valid {
		fmt.Fprintf(&b, "[%d] %s (%s", i+1, s.DisplayName(), s.SourceType())
		if s.Metadata != nil {
			if _, ok := s.Metadata["confidence"]; ok {
				fmt.Fprintf(&b, ", confidence: %d%%", int(s.Confidence()*100+0.5))
			}
		}
		if cat := s.Category(); cat != "" {
			fmt.Fprintf(&b, ", category: %s", cat)
		}
		b.WriteString(")\n")
	}
	return b.String()
}

// confidenceGuidance frames the response by the plain average of per-source
// confidence; the weighted aggregate belongs to the confidence engine, while
// the composer only needs a coarse signal.
func confidenceGuidance(cfg ComposerConfig, valid []*Source) string {
	if len(valid) == 0 {
		return "MODERATE CONFIDENCE: Limited information available. Acknowledge uncertainty and suggest contacting support if needed."
	}

	var sum float64
	var n int
	for _, s := range valid {
		conf := s.Confidence()
		if conf <= 0 {
			continue
		}
		sum += conf
		n++
	}
	if n == 0 {
		return "MODERATE CONFIDENCE: Source confidence unknown. Provide available information and indicate uncertainty where appropriate."
	}

	avg := sum / float64(n)
	switch {
	case avg >= cfg.HighConfidenceThreshold:
		return "HIGH CONFIDENCE: Sources are highly reliable. Provide authoritative information and cite sources clearly."
	case avg >= cfg.ConfidenceThreshold:
		return "MODERATE CONFIDENCE: Information is likely accurate. Provide available information and indicate uncertainty where appropriate."
	default:
		return "LOW CONFIDENCE: Limited or uncertain information. Acknowledge limitations, provide what information is available, and suggest escalation to human support."
	}
}

func renderBusinessContext(bc BusinessContext) string {
	var b strings.Builder
	b.WriteString("BUSINESS CONTEXT:\n")
	if bc.CompanyName != "" {
		fmt.Fprintf(&b, "Company: %s\n", bc.CompanyName)
	}
	if bc.ReturnPolicy != "" {
		fmt.Fprintf(&b, "Return Policy: %s\n", bc.ReturnPolicy)
	}
	if bc.FreeShipping != "" {
		fmt.Fprintf(&b, "Free Shipping: %s\n", bc.FreeShipping)
	}
	if bc.SupportHours != "" {
		fmt.Fprintf(&b, "Support Hours: %s\n", bc.SupportHours)
	}
	if bc.SupportEmail != "" {
		fmt.Fprintf(&b, "Support Email: %s\n", bc.SupportEmail)
	}
	if bc.SupportPhone != "" {
		fmt.Fprintf(&b, "Support Phone: %s\n", bc.SupportPhone)
	}
	if bc.EscalationEnabled {
		b.WriteString("Escalation Available: Human support available when needed\n")
	}
	if len(bc.Extra) > 0 {
		keys := make([]string, 0, len(bc.Extra))
		for k := range bc.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, bc.Extra[k])
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
