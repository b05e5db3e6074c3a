// internal/enhancement/confidence_test.go
package enhancement

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sourceWithConfidence(confidence float64) *Source {
	return &Source{
		Text:     "some content",
		Metadata: map[string]interface{}{"confidence": confidence},
	}
}

func TestAggregateConfidence_EmptyInput(t *testing.T) {
	cfg := DefaultConfidenceConfig()

	tests := []struct {
		name    string
		sources []*Source
	}{
		{"nil slice", nil},
		{"empty slice", []*Source{}},
		{"all nil entries", []*Source{nil, nil}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateConfidence(cfg, tt.sources)
			assert.Equal(t, 0.5, got.OverallConfidence)
			assert.Equal(t, ConfidenceMedium, got.Level)
		})
	}
}

func TestAggregateConfidence_PlainAverage(t *testing.T) {
	// Identical default weights: the weighted mean reduces to the plain mean.
	sources := []*Source{
		sourceWithConfidence(0.9),
		sourceWithConfidence(0.8),
		sourceWithConfidence(0.7),
	}

	got := AggregateConfidence(DefaultConfidenceConfig(), sources)
	assert.InDelta(t, 0.8, got.OverallConfidence, 0.02)
	assert.Equal(t, ConfidenceMedium, got.Level)
}

func TestAggregateConfidence_MissingConfidenceDefaults(t *testing.T) {
	sources := []*Source{
		{Text: "no metadata at all"},
		{Text: "metadata without confidence", Metadata: map[string]interface{}{"sourceType": "faq"}},
		{Text: "non-numeric confidence", Metadata: map[string]interface{}{"confidence": "not a number"}},
	}

	got := AggregateConfidence(DefaultConfidenceConfig(), sources)
	assert.InDelta(t, 0.7, got.OverallConfidence, 0.03)
}

func TestAggregateConfidence_ReliabilityWeighting(t *testing.T) {
	// A high-confidence catalog entry outweighs a low-confidence web scrape,
	// pulling the aggregate above the plain mean.
	sources := []*Source{
		{Metadata: map[string]interface{}{"sourceType": "product_catalog", "confidence": 0.9}},
		{Metadata: map[string]interface{}{"sourceType": "web_scrape", "confidence": 0.5}},
	}

	got := AggregateConfidence(DefaultConfidenceConfig(), sources)
	plainMean := 0.7
	assert.Greater(t, got.OverallConfidence, plainMean)
}

func TestAggregateConfidence_RecencyAdjustment(t *testing.T) {
	fresh := time.Now().Add(-7 * 24 * time.Hour).Format(time.RFC3339)
	stale := time.Now().Add(-2 * 365 * 24 * time.Hour).Format(time.RFC3339)

	sources := []*Source{
		{Metadata: map[string]interface{}{"confidence": 0.9, "lastUpdatedAt": fresh}},
		{Metadata: map[string]interface{}{"confidence": 0.5, "lastUpdatedAt": stale}},
	}

	got := AggregateConfidence(DefaultConfidenceConfig(), sources)
	// Fresh source weight 0.8*1.1, stale 0.8*0.9: the mean leans fresh.
	assert.Greater(t, got.OverallConfidence, 0.7)
}

func TestAggregateConfidence_DiversityBonus(t *testing.T) {
	uniform := []*Source{
		{Metadata: map[string]interface{}{"sourceType": "faq", "confidence": 0.7}},
		{Metadata: map[string]interface{}{"sourceType": "faq", "confidence": 0.7}},
		{Metadata: map[string]interface{}{"sourceType": "faq", "confidence": 0.7}},
	}
	diverse := []*Source{
		{Metadata: map[string]interface{}{"sourceType": "faq", "confidence": 0.7}},
		{Metadata: map[string]interface{}{"sourceType": "policy_doc", "confidence": 0.7}},
		{Metadata: map[string]interface{}{"sourceType": "user_manual", "confidence": 0.7}},
	}

	cfg := DefaultConfidenceConfig()
	base := AggregateConfidence(cfg, uniform)
	boosted := AggregateConfidence(cfg, diverse)

	assert.InDelta(t, base.OverallConfidence+0.05, boosted.OverallConfidence, 0.001)
}

func TestAggregateConfidence_ClampedRange(t *testing.T) {
	sources := []*Source{
		{Metadata: map[string]interface{}{"confidence": 42.0}},
		{Metadata: map[string]interface{}{"confidence": -3.0}},
	}

	got := AggregateConfidence(DefaultConfidenceConfig(), sources)
	assert.GreaterOrEqual(t, got.OverallConfidence, 0.1)
	assert.LessOrEqual(t, got.OverallConfidence, 1.0)
}

func TestCategorize_BandBoundaries(t *testing.T) {
	cfg := DefaultConfidenceConfig()

	tests := []struct {
		confidence float64
		expected   ConfidenceLevel
	}{
		{0.9, ConfidenceHigh},
		{0.85, ConfidenceHigh}, // inclusive boundary
		{0.7, ConfidenceMedium},
		{0.6, ConfidenceMedium}, // inclusive boundary
		{0.4, ConfidenceLow},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Categorize(cfg, tt.confidence), "confidence %.2f", tt.confidence)
	}
}

func TestGenerateCitations(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, GenerateCitations(DefaultConfidenceConfig(), nil))
	})

	t.Run("numbered entries with metadata", func(t *testing.T) {
		sources := []*Source{
			{Metadata: map[string]interface{}{"docTitle": "Return Policy", "sourceType": "policy_doc", "confidence": 0.9}},
			nil,
			{Metadata: map[string]interface{}{"filename": "faq.md", "sourceType": "faq"}},
		}

		got := GenerateCitations(DefaultConfidenceConfig(), sources)
		assert.Contains(t, got, "SOURCES:")
		assert.Contains(t, got, "[1] Return Policy (policy_doc, confidence: 90%)")
		assert.Contains(t, got, "[2] faq.md (faq)")
	})

	t.Run("caps at max citations", func(t *testing.T) {
		cfg := DefaultConfidenceConfig()
		var sources []*Source
		for i := 0; i < 12; i++ {
			sources = append(sources, &Source{Metadata: map[string]interface{}{"docTitle": "Doc"}})
		}

		got := GenerateCitations(cfg, sources)
		assert.Equal(t, cfg.MaxCitations, strings.Count(got, "["))
		assert.NotContains(t, got, "[9]")
	})
}

func TestBuildUncertaintyLanguage(t *testing.T) {
	sources := []*Source{
		{Metadata: map[string]interface{}{"sourceType": "faq"}},
		{Metadata: map[string]interface{}{"sourceType": "policy_doc"}},
	}

	high := BuildUncertaintyLanguage(ConfidenceHigh, sources)
	assert.Contains(t, high, "High confidence response")
	assert.Contains(t, high, "2 different source types")

	low := BuildUncertaintyLanguage(ConfidenceLow, nil)
	assert.Contains(t, low, "Low confidence response")

	unknown := BuildUncertaintyLanguage(ConfidenceLevel("bogus"), nil)
	assert.Contains(t, unknown, "Moderate confidence response")
}

func TestBuildFallbackPrompt(t *testing.T) {
	cfg := DefaultConfidenceConfig()

	t.Run("no sources", func(t *testing.T) {
		got := BuildFallbackPrompt(cfg, nil, ScenarioGeneral)
		assert.Contains(t, got, "INSUFFICIENT INFORMATION")
	})

	t.Run("weak sources", func(t *testing.T) {
		got := BuildFallbackPrompt(cfg, []*Source{sourceWithConfidence(0.2)}, ScenarioGeneral)
		assert.Contains(t, got, "LIMITED CONFIDENCE")
	})

	t.Run("solid sources", func(t *testing.T) {
		got := BuildFallbackPrompt(cfg, []*Source{sourceWithConfidence(0.9)}, ScenarioGeneral)
		assert.Contains(t, got, "STANDARD FALLBACK")
	})
}
