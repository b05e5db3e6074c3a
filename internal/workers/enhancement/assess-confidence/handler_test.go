package assessconfidence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"enhancement-workers/internal/common/logger"
	"enhancement-workers/internal/enhancement"
	"enhancement-workers/internal/models"
)

func createTestConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
		Engine:  enhancement.DefaultConfig(),
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func catalogSource(title string, confidence float64) models.KnowledgeSource {
	return models.KnowledgeSource{
		Text: title + " product details",
		Metadata: map[string]interface{}{
			"sourceType": "product_catalog",
			"docTitle":   title,
			"confidence": confidence,
		},
	}
}

func TestExecute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	_, err := handler.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrAssessmentFailed)
}

func TestExecute_HighConfidenceSources(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Sources: []models.KnowledgeSource{
			catalogSource("iPhone 15 Pro", 0.9),
			catalogSource("iPhone 15", 0.85),
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.875, output.OverallConfidence, 0.001)
	assert.Equal(t, enhancement.ConfidenceHigh, output.ConfidenceLevel)
	assert.Contains(t, output.Citations, "[1] iPhone 15 Pro")
	assert.Contains(t, output.UncertaintyLanguage, "High confidence response")
	assert.Contains(t, output.FallbackPrompt, "STANDARD FALLBACK")
}

func TestExecute_EmptySourcesNeutralPrior(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Scenario: enhancement.ScenarioOrderInquiry,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, output.OverallConfidence, 0.001)
	assert.Equal(t, enhancement.ConfidenceMedium, output.ConfidenceLevel)
	assert.Equal(t, enhancement.DiversityNone, output.Diversity.Level)
	assert.Empty(t, output.Citations)
	assert.Contains(t, output.FallbackPrompt, "INSUFFICIENT INFORMATION")
	assert.Contains(t, output.FallbackPrompt, "order_inquiry")
}

func TestExecute_DiversityReporting(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Sources: []models.KnowledgeSource{
			{Text: "product", Metadata: map[string]interface{}{"sourceType": "product_catalog", "confidence": 0.8}},
			{Text: "policy", Metadata: map[string]interface{}{"sourceType": "policy_doc", "confidence": 0.8}},
			{Text: "faq", Metadata: map[string]interface{}{"sourceType": "faq", "confidence": 0.8}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, output.Diversity.UniqueTypes)
	assert.Equal(t, enhancement.DiversityHigh, output.Diversity.Level)
	// High diversity adds its bonus on top of the weighted mean.
	assert.InDelta(t, 0.85, output.OverallConfidence, 0.001)
}

func TestExecute_LowConfidenceFallback(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Sources: []models.KnowledgeSource{
			{Text: "scraped page", Metadata: map[string]interface{}{"sourceType": "web_scrape", "confidence": 0.3}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enhancement.ConfidenceLow, output.ConfidenceLevel)
	assert.Contains(t, output.FallbackPrompt, "LIMITED CONFIDENCE")
	assert.Contains(t, output.UncertaintyLanguage, "Low confidence response")
}
