// internal/enhancement/rules.go
package enhancement

import (
	"fmt"
	"strings"
)

// ApplyBusinessRules renders the scenario-keyed policy block, always suffixed
// with the support contact section.
func ApplyBusinessRules(cfg RulesConfig, scenario Scenario, sources []*Source) string {
	var b strings.Builder

	switch scenario.Type {
	case ScenarioReturnRefund:
		b.WriteString("RETURN POLICY:\n")
		fmt.Fprintf(&b, "- Return Period: %d days from purchase\n", cfg.ReturnPeriodDays)
		b.WriteString("- Return Conditions: Items must be unused and in original packaging\n")
		b.WriteString("- Refund Processing: 5-7 business days after return received\n")
		b.WriteString("- Return Shipping: Customer responsible unless item is defective\n")
		fmt.Fprintf(&b, "- Warranty: defective items covered for %d days from purchase\n", cfg.WarrantyPeriodDays)
		if scenario.Confidence > 0.8 || hasComplexReturn(sources) {
			b.WriteString("- For complex returns, escalation to customer service may be required\n")
		}
	case ScenarioOrderInquiry:
		b.WriteString("SHIPPING INFORMATION:\n")
		fmt.Fprintf(&b, "- Free shipping on orders over $%.0f\n", cfg.FreeShippingThreshold)
		b.WriteString("- Standard shipping: 3-5 business days\n")
		b.WriteString("- Express shipping: 1-2 business days (additional cost)\n")
		b.WriteString("- Order processing: 1-2 business days before shipping\n")
		b.WriteString("- Tracking information available once shipped\n")
	case ScenarioPricingAvailability:
		b.WriteString("PRICING GUIDELINES:\n")
		b.WriteString("- Always provide current pricing information\n")
		b.WriteString("- Mention current promotions and discounts if available\n")
		b.WriteString("- Include availability status (in stock/out of stock/backordered)\n")
		b.WriteString("- For out of stock items, provide restock estimates if available\n")
		b.WriteString("- Compare with similar products if customer is price-sensitive\n")
	case ScenarioProductRecommendation:
		b.WriteString("RECOMMENDATION GUIDELINES:\n")
		b.WriteString("- Focus on customer's specific needs and preferences\n")
		b.WriteString("- Compare key features and benefits of recommended products\n")
		b.WriteString("- Include price ranges and value propositions\n")
		b.WriteString("- Mention availability and shipping timeframes\n")
		b.WriteString("- Suggest complementary products when appropriate\n")
	default:
		b.WriteString("GENERAL GUIDELINES:\n")
		b.WriteString("- Provide helpful and accurate information\n")
		b.WriteString("- Reference company policies when relevant\n")
		b.WriteString("- Offer to escalate to human support if needed\n")
	}

	b.WriteString("\nCUSTOMER SUPPORT:\n")
	fmt.Fprintf(&b, "- Hours: %s\n", cfg.SupportHours)
	fmt.Fprintf(&b, "- Email: %s\n", cfg.SupportEmail)
	fmt.Fprintf(&b, "- Phone: %s\n", cfg.SupportPhone)

	return b.String()
}

func hasComplexReturn(sources []*Source) bool {
	for _, s := range validSources(sources) {
		text := strings.ToLower(s.Text)
		if strings.Contains(text, "defective") ||
			strings.Contains(text, "damaged") ||
			strings.Contains(text, "warranty") ||
			s.FlaggedForEscalation() {
			return true
		}
	}
	return false
}

// Recommend renders product recommendation prompt fragments from the
// product_catalog sources, with mode-specific framing. An empty string means
// there is nothing to recommend; that is the contract, not an error.
func Recommend(cfg RulesConfig, sources []*Source, mode RecommendationMode) string {
	products := productSources(sources)
	if len(products) == 0 {
		return ""
	}
	max := cfg.MaxRecommendations
	if max <= 0 {
		max = DefaultRulesConfig().MaxRecommendations
	}
	if len(products) > max {
		products = products[:max]
	}

	var b strings.Builder
	switch mode {
	case RecommendCrossSell:
		b.WriteString("COMPLEMENTARY PRODUCTS:\n")
		b.WriteString("Suggest products that work well together or enhance the main product:\n")
	case RecommendUpsell:
		b.WriteString("PREMIUM OPTIONS:\n")
		b.WriteString("Highlight higher-tier products with additional features and benefits:\n")
	default:
		b.WriteString("PRODUCT RECOMMENDATIONS:\n")
		b.WriteString("Based on the available products, here are the best options:\n")
	}

	for i, s := range products {
		fmt.Fprintf(&b, "\n[Product %d] %s\n", i+1, s.Text)
		if sku := s.SKU(); sku != "" {
			fmt.Fprintf(&b, "SKU: %s\n", sku)
		}
		if price := s.PriceLabel(); price != "" {
			fmt.Fprintf(&b, "Price: $%s\n", price)
		}
		if cat := s.Category(); cat != "" {
			fmt.Fprintf(&b, "Category: %s\n", cat)
		}
		if avail := s.Availability(); avail != "" {
			fmt.Fprintf(&b, "Availability: %s\n", avail)
		}
	}

	b.WriteString("\nRECOMMENDATION INSTRUCTIONS:\n")
	b.WriteString("- Compare features and benefits of each product\n")
	b.WriteString("- Highlight what makes each product unique\n")
	b.WriteString("- Consider price-to-value ratio\n")
	switch mode {
	case RecommendCrossSell:
		b.WriteString("- Explain how accessories or bundles enhance the main product\n")
		b.WriteString("- Suggest complete solutions rather than individual items\n")
	case RecommendUpsell:
		b.WriteString("- Clearly explain additional features in premium options\n")
		b.WriteString("- Justify the price difference with concrete benefits\n")
	default:
		b.WriteString("- Provide a clear recommendation based on customer needs\n")
		b.WriteString("- Include price comparison and availability information\n")
	}

	return b.String()
}

// BuildUpsellPrompt renders premium-option guidance, but only when at least
// one qualifying product meets the upsell price threshold.
func BuildUpsellPrompt(cfg RulesConfig, sources []*Source) string {
	products := productSources(sources)
	if len(products) == 0 {
		return ""
	}

	eligible := false
	hasElectronics := false
	for _, s := range products {
		if price, ok := s.Price(); ok && price >= cfg.UpsellThreshold {
			eligible = true
		}
		if strings.Contains(strings.ToLower(s.Category()), "electronics") {
			hasElectronics = true
		}
	}
	if !eligible {
		return ""
	}

	var b strings.Builder
	b.WriteString("PREMIUM OPTIONS:\n")
	b.WriteString("When appropriate, consider upgrading suggestions:\n\n")
	if hasElectronics {
		b.WriteString("- Extended warranty or protection plans\n")
		b.WriteString("- Premium accessories or cases\n")
		b.WriteString("- Higher storage or memory options\n")
	}
	b.WriteString("- Professional installation or setup services\n")
	b.WriteString("- Bundle deals with complementary products\n")
	b.WriteString("- Express shipping for faster delivery\n")
	b.WriteString("\nUPSELL GUIDELINES:\n")
	b.WriteString("- Only suggest upgrades that add genuine value\n")
	b.WriteString("- Explain the additional features or benefits clearly\n")
	b.WriteString("- Respect the customer's budget constraints\n")
	b.WriteString("- Present options without being pushy\n")

	return b.String()
}

// FormatPolicyInformation renders policy_doc sources as a labeled block, or a
// contact-service notice when none are present.
func FormatPolicyInformation(cfg RulesConfig, sources []*Source, scenario ScenarioType) string {
	var policies []*Source
	for _, s := range validSources(sources) {
		if s.SourceType() == "policy_doc" {
			policies = append(policies, s)
		}
	}

	if len(policies) == 0 {
		return fmt.Sprintf("POLICY INFORMATION:\nFor specific policy questions, please contact customer service at %s or %s.",
			cfg.SupportEmail, cfg.SupportPhone)
	}

	var b strings.Builder
	switch scenario {
	case ScenarioReturnRefund:
		b.WriteString("RETURN POLICY:\n")
	case ScenarioOrderInquiry:
		b.WriteString("SHIPPING INFORMATION:\n")
	case ScenarioPricingAvailability:
		b.WriteString("PRICING POLICY:\n")
	default:
		b.WriteString("POLICY INFORMATION:\n")
	}

	for i, s := range policies {
		fmt.Fprintf(&b, "\n[Policy %d] %s\n", i+1, s.Text)
		if updated, ok := s.LastUpdatedAt(); ok {
			fmt.Fprintf(&b, "Last Updated: %s\n", updated.Format("2006-01-02"))
		}
	}

	b.WriteString("\nPOLICY INSTRUCTIONS:\n")
	b.WriteString("- Apply policy conditions accurately and completely\n")
	b.WriteString("- Explain any exceptions or special circumstances\n")
	b.WriteString("- Provide clear next steps for the customer\n")
	b.WriteString("- Offer escalation for complex policy questions\n")

	return b.String()
}

func productSources(sources []*Source) []*Source {
	var out []*Source
	for _, s := range validSources(sources) {
		if s.SourceType() == "product_catalog" {
			out = append(out, s)
		}
	}
	return out
}
