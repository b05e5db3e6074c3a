// internal/enhancement/scenario_test.go
package enhancement

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func productSource(title string, confidence float64) *Source {
	return &Source{
		Text: title + " product details",
		Metadata: map[string]interface{}{
			"sourceType": "product_catalog",
			"docTitle":   title,
			"confidence": confidence,
		},
	}
}

func TestClassify_EmptyQuery(t *testing.T) {
	cfg := DefaultClassifierConfig()

	tests := []struct {
		name  string
		query string
	}{
		{"empty string", ""},
		{"whitespace only", "   \t\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := Classify(cfg, tt.query, nil)
			assert.Equal(t, ScenarioGeneral, scenario.Type)
			assert.Equal(t, 0.5, scenario.Confidence)
		})
	}
}

func TestClassify_Scenarios(t *testing.T) {
	cfg := DefaultClassifierConfig()

	tests := []struct {
		name     string
		query    string
		sources  []*Source
		expected ScenarioType
	}{
		{
			name:     "product recommendation",
			query:    "Can you recommend a good laptop for video editing?",
			expected: ScenarioProductRecommendation,
		},
		{
			name:     "order inquiry with order number",
			query:    "Where is my order #12345? It should have shipped already",
			expected: ScenarioOrderInquiry,
		},
		{
			name:     "return refund",
			query:    "I want to return this defective item and get a refund",
			expected: ScenarioReturnRefund,
		},
		{
			name:     "pricing availability",
			query:    "How much does this cost and is it in stock?",
			expected: ScenarioPricingAvailability,
		},
		{
			name:     "no signal falls back to general",
			query:    "hello there",
			expected: ScenarioGeneral,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scenario := Classify(cfg, tt.query, tt.sources)
			assert.Equal(t, tt.expected, scenario.Type)
			if tt.expected == ScenarioGeneral {
				assert.Equal(t, 0.5, scenario.Confidence)
			} else {
				assert.Greater(t, scenario.Confidence, cfg.ContextDetectionThreshold)
				assert.LessOrEqual(t, scenario.Confidence, 1.0)
			}
		})
	}
}

func TestClassify_SourceTypeBoost(t *testing.T) {
	cfg := DefaultClassifierConfig()

	// "need" matches a product keyword either way; the catalog source adds
	// the contextual boost on top.
	query := "need a new gadget"
	without := Classify(cfg, query, nil)
	with := Classify(cfg, query, []*Source{productSource("Widget", 0.9)})

	assert.Greater(t, with.Confidence, without.Confidence)
	assert.Equal(t, ScenarioProductRecommendation, with.Type)
}

func TestClassify_AlternativeScoresCarried(t *testing.T) {
	scenario := Classify(DefaultClassifierConfig(), "recommend the best phone for me", nil)

	assert.Len(t, scenario.AlternativeScores, 4)
	assert.Contains(t, scenario.AlternativeScores, ScenarioProductRecommendation)
	assert.Contains(t, scenario.AlternativeScores, ScenarioPricingAvailability)
}

func TestClassify_NilSourceEntries(t *testing.T) {
	sources := []*Source{nil, productSource("Widget", 0.8), {Metadata: nil}}

	assert.NotPanics(t, func() {
		scenario := Classify(DefaultClassifierConfig(), "recommend something for me", sources)
		assert.Equal(t, ScenarioProductRecommendation, scenario.Type)
	})
}

func TestClassify_Deterministic(t *testing.T) {
	cfg := DefaultClassifierConfig()
	sources := []*Source{productSource("Widget", 0.8)}

	first := Classify(cfg, "recommend a phone for photography", sources)
	second := Classify(cfg, "recommend a phone for photography", sources)

	assert.Equal(t, first, second)
}
