package enhanceprompt

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

type stubExpander struct {
	calls  int
	suffix string
}

func (s *stubExpander) Expand(_ context.Context, text, _ string) (string, error) {
	s.calls++
	return text + s.suffix, nil
}

func createTestConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
		Engine:  enhancement.DefaultConfig(),
	}
}

func createTestLogger(t *testing.T) logger.Logger {
	return logger.NewZapAdapter(zaptest.NewLogger(t))
}

func headphoneSources() []models.KnowledgeSource {
	return []models.KnowledgeSource{
		{
			Text: "Premium wireless headphones with active noise cancellation and 30-hour battery.",
			Metadata: map[string]interface{}{
				"sourceType": "product_catalog",
				"docTitle":   "Wireless Headphones",
				"confidence": 0.9,
				"sku":        "WH-1000",
				"price":      249.99,
			},
		},
		{
			Text: "Compact earbuds with water resistance and wireless charging case.",
			Metadata: map[string]interface{}{
				"sourceType": "product_catalog",
				"docTitle":   "True Wireless Earbuds",
				"confidence": 0.85,
				"sku":        "EB-200",
				"price":      129.99,
			},
		},
	}
}

func TestExecute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	_, err := handler.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEnhancementFailed)
}

func TestExecute_FullPipeline(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		BasePrompt: "You are a helpful shopping assistant.",
		Query:      "Can you recommend good headphones for travel?",
		Sources:    headphoneSources(),
	})
	require.NoError(t, err)

	assert.Equal(t, enhancement.ScenarioProductRecommendation, output.Scenario)
	assert.Equal(t, enhancement.ConfidenceHigh, output.ConfidenceLevel)
	assert.InDelta(t, 0.875, output.OverallConfidence, 0.001)
	assert.False(t, output.EscalationRequired)
	assert.Empty(t, output.Error)

	assert.Contains(t, output.EnhancedPrompt, "You are a helpful shopping assistant.")
	assert.Contains(t, output.EnhancedPrompt, "Wireless Headphones")
	assert.Contains(t, output.Citations, "[1] Wireless Headphones")
	assert.Contains(t, output.Recommendations, "[Product 1]")
	assert.NotEmpty(t, output.BusinessRules)
	assert.NotEmpty(t, output.FallbackPrompt)
}

func TestExecute_BusinessContextRendered(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		BasePrompt: "You are a helpful shopping assistant.",
		Query:      "What is your return policy?",
		Sources:    headphoneSources(),
		BusinessContext: &enhancement.BusinessContext{
			CompanyName:  "Acme Outfitters",
			ReturnPolicy: "60-day hassle-free returns",
		},
	})
	require.NoError(t, err)

	assert.Contains(t, output.EnhancedPrompt, "Acme Outfitters")
	assert.Contains(t, output.EnhancedPrompt, "60-day hassle-free returns")
}

func TestExecute_ExpanderApplied(t *testing.T) {
	exp := &stubExpander{suffix: "\n[store footer]"}
	handler := NewHandler(createTestConfig(), exp, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		BasePrompt: "Base prompt.",
		Query:      "Can you recommend good headphones?",
		Sources:    headphoneSources(),
		UserID:     "user-7",
	})
	require.NoError(t, err)

	assert.Equal(t, 1, exp.calls)
	assert.Contains(t, output.EnhancedPrompt, "[store footer]")
}

func TestExecute_ExpanderSkippedWithoutUser(t *testing.T) {
	exp := &stubExpander{suffix: "\n[store footer]"}
	handler := NewHandler(createTestConfig(), exp, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		BasePrompt: "Base prompt.",
		Query:      "Can you recommend good headphones?",
		Sources:    headphoneSources(),
	})
	require.NoError(t, err)

	assert.Equal(t, 0, exp.calls)
	assert.NotContains(t, output.EnhancedPrompt, "[store footer]")
}

func TestExecute_EmptyEverythingStillSucceeds(t *testing.T) {
	handler := NewHandler(createTestConfig(), nil, createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{})
	require.NoError(t, err)

	assert.Equal(t, enhancement.ScenarioGeneral, output.Scenario)
	assert.True(t, output.EscalationSuggested)
	assert.Contains(t, output.EnhancedPrompt, "No specific sources available")
	assert.Empty(t, output.Error)
}
