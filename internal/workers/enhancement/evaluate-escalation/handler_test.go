package evaluateescalation

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

func confidentCatalogSources() []models.KnowledgeSource {
	return []models.KnowledgeSource{
		{
			Text: "Wireless headphones with noise cancellation",
			Metadata: map[string]interface{}{
				"sourceType": "product_catalog",
				"confidence": 0.9,
			},
		},
	}
}

func TestExecute_NilInput(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	_, err := handler.Execute(context.Background(), nil)
	assert.ErrorIs(t, err, ErrEvaluationFailed)
}

func TestExecute_FrustrationForcesEscalation(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Query:    "This is completely unacceptable, I want to speak to a manager",
		Sources:  confidentCatalogSources(),
		Scenario: enhancement.ScenarioGeneral,
	})
	require.NoError(t, err)

	assert.True(t, output.EscalationRequired)
	assert.Equal(t, enhancement.UrgencyHigh, output.Urgency)
	assert.Contains(t, output.Reason, "frustration")
	assert.Contains(t, output.EscalationPrompt, "support@company.com")
}

func TestExecute_ConfidentQueryNoEscalation(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Query:    "What colors do these headphones come in?",
		Sources:  confidentCatalogSources(),
		Scenario: enhancement.ScenarioProductRecommendation,
	})
	require.NoError(t, err)

	assert.False(t, output.EscalationRequired)
	assert.False(t, output.EscalationSuggested)
	assert.Equal(t, enhancement.UrgencyLow, output.Urgency)
	assert.Contains(t, output.EscalationPrompt, "no escalation needed")
}

func TestExecute_LowConfidenceSuggestsEscalation(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Query: "What colors do these headphones come in?",
		Sources: []models.KnowledgeSource{
			{Text: "scraped page", Metadata: map[string]interface{}{"sourceType": "web_scrape", "confidence": 0.3}},
		},
		Scenario: enhancement.ScenarioProductRecommendation,
	})
	require.NoError(t, err)

	assert.False(t, output.EscalationRequired)
	assert.True(t, output.EscalationSuggested)
	assert.Equal(t, enhancement.UrgencyMedium, output.Urgency)
}

func TestExecute_OrderInquiryWithoutOrderData(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Query:    "What is the delivery window for standard shipping?",
		Sources:  confidentCatalogSources(),
		Scenario: enhancement.ScenarioOrderInquiry,
	})
	require.NoError(t, err)

	assert.True(t, output.EscalationSuggested)
	assert.Contains(t, output.Reason, "order management system")
}

func TestExecute_FlaggedSourceSuggestsEscalation(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Query: "Tell me about this product",
		Sources: []models.KnowledgeSource{
			{
				Text: "High-end camera body",
				Metadata: map[string]interface{}{
					"sourceType":         "product_catalog",
					"confidence":         0.9,
					"escalationRequired": true,
				},
			},
		},
		Scenario: enhancement.ScenarioProductRecommendation,
	})
	require.NoError(t, err)

	assert.True(t, output.EscalationSuggested)
	assert.Contains(t, output.Reason, "specialist")
}

func TestExecute_MissingScenarioDefaultsToGeneral(t *testing.T) {
	handler := NewHandler(createTestConfig(), createTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{
		Query:   "hello",
		Sources: confidentCatalogSources(),
	})
	require.NoError(t, err)
	assert.False(t, output.EscalationRequired)
}
