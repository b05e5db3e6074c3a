// internal/common/config/enhancement.go
package config

import "enhancement-workers/internal/enhancement"

// EngineConfig maps the enhancement and business config sections onto the
// engine's per-component configuration. Unset values keep the engine
// defaults, so a partial YAML section is always safe.
func (c *Config) EngineConfig() enhancement.Config {
	out := enhancement.DefaultConfig()

	e := c.Enhancement
	if e.ContextDetectionThreshold > 0 {
		out.Classifier.ContextDetectionThreshold = e.ContextDetectionThreshold
	}
	if e.HighConfidenceThreshold > 0 {
		out.Confidence.HighThreshold = e.HighConfidenceThreshold
		out.Composer.HighConfidenceThreshold = e.HighConfidenceThreshold
	}
	if e.MediumConfidenceThreshold > 0 {
		out.Confidence.MediumThreshold = e.MediumConfidenceThreshold
	}
	if e.EscalationThreshold > 0 {
		out.Confidence.LowThreshold = e.EscalationThreshold
		out.Escalation.ConfidenceThreshold = e.EscalationThreshold
	}
	if len(e.EscalationTriggerPhrases) > 0 {
		out.Escalation.TriggerPhrases = e.EscalationTriggerPhrases
	}
	if e.MaxSourcesPerPrompt > 0 {
		out.Composer.MaxSourcesPerPrompt = e.MaxSourcesPerPrompt
	}
	if e.MaxTokensPerSource > 0 {
		out.Composer.MaxTokensPerSource = e.MaxTokensPerSource
	}
	if e.MaxCitations > 0 {
		out.Confidence.MaxCitations = e.MaxCitations
	}
	if e.EnableAttribution != nil {
		out.Composer.EnableAttribution = *e.EnableAttribution
	}
	if e.EnableBusinessContext != nil {
		out.Composer.EnableBusinessContext = *e.EnableBusinessContext
	}

	b := c.Business
	if b.ReturnPeriodDays > 0 {
		out.Rules.ReturnPeriodDays = b.ReturnPeriodDays
	}
	if b.FreeShippingThreshold > 0 {
		out.Rules.FreeShippingThreshold = b.FreeShippingThreshold
	}
	if b.WarrantyPeriodDays > 0 {
		out.Rules.WarrantyPeriodDays = b.WarrantyPeriodDays
	}
	if b.UpsellThreshold > 0 {
		out.Rules.UpsellThreshold = b.UpsellThreshold
	}
	if b.MaxRecommendations > 0 {
		out.Rules.MaxRecommendations = b.MaxRecommendations
	}
	if b.SupportHours != "" {
		out.Rules.SupportHours = b.SupportHours
		out.Escalation.SupportHours = b.SupportHours
	}
	if b.SupportEmail != "" {
		out.Rules.SupportEmail = b.SupportEmail
		out.Escalation.SupportEmail = b.SupportEmail
	}
	if b.SupportPhone != "" {
		out.Rules.SupportPhone = b.SupportPhone
		out.Escalation.SupportPhone = b.SupportPhone
	}

	return out
}
