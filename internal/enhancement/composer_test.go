// internal/enhancement/composer_test.go
package enhancement

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpander struct {
	calls  int
	fail   bool
	suffix string
}

func (f *fakeExpander) Expand(_ context.Context, text, userID string) (string, error) {
	f.calls++
	if f.fail {
		return "", errors.New("expansion backend unavailable")
	}
	return text + f.suffix, nil
}

func composeDefault(sources []*Source, scenario ScenarioType) string {
	return Compose(context.Background(), DefaultComposerConfig(), nil,
		"You are a helpful assistant.", "test query", sources,
		Scenario{Type: scenario, Confidence: 0.8}, BusinessContext{}, UserContext{})
}

func TestCompose_SectionOrder(t *testing.T) {
	sources := []*Source{
		catalogSource("iPhone 15 Pro", "IP15P", "999.00", "Electronics", "In Stock"),
	}
	bc := BusinessContext{CompanyName: "Acme Retail", SupportEmail: "help@acme.test"}

	got := Compose(context.Background(), DefaultComposerConfig(), nil,
		"You are a helpful assistant.", "recommend a phone", sources,
		Scenario{Type: ScenarioProductRecommendation, Confidence: 0.9}, bc, UserContext{})

	markers := []string{
		"You are a helpful assistant.",
		"e-commerce product specialist",
		"BUSINESS CONTEXT:",
		"PRODUCT INFORMATION:",
		"SOURCES:",
		"CONFIDENCE:",
		"INSTRUCTIONS:",
	}
	last := -1
	for _, m := range markers {
		idx := strings.Index(got, m)
		require.GreaterOrEqual(t, idx, 0, "missing section %q", m)
		assert.Greater(t, idx, last, "section %q out of order", m)
		last = idx
	}
	assert.Contains(t, got, "Company: Acme Retail")
	assert.Contains(t, got, "1. Provide accurate product details")
}

func TestCompose_NoSourcesNotice(t *testing.T) {
	got := composeDefault(nil, ScenarioGeneral)
	assert.Contains(t, got, "No specific sources available for this query.")
	assert.NotContains(t, got, "SOURCES:")
	assert.Contains(t, got, "MODERATE CONFIDENCE: Limited information available")
}

func TestCompose_FormatGroups(t *testing.T) {
	source := &Source{
		Text:     "Orders ship within two business days.",
		Metadata: map[string]interface{}{"sourceType": "policy_doc", "docTitle": "Shipping Policy"},
	}

	t.Run("support scenarios use support labels", func(t *testing.T) {
		got := composeDefault([]*Source{source}, ScenarioReturnRefund)
		assert.Contains(t, got, "SUPPORT CONTEXT:")
		assert.Contains(t, got, "[Support 1] Shipping Policy")
	})

	t.Run("general scenarios use reference labels", func(t *testing.T) {
		got := composeDefault([]*Source{source}, ScenarioGeneral)
		assert.Contains(t, got, "COMPANY INFORMATION:")
		assert.Contains(t, got, "[Reference 1] Shipping Policy (policy_doc)")
	})

	t.Run("pricing scenarios use product labels", func(t *testing.T) {
		got := composeDefault([]*Source{catalogSource("Monitor", "MN-1", "299.00", "", "")},
			ScenarioPricingAvailability)
		assert.Contains(t, got, "[Product 1] SKU: MN-1")
		assert.Contains(t, got, "Price: $299.00")
	})
}

func TestCompose_TruncatesSourceTextAtWordBoundary(t *testing.T) {
	cfg := DefaultComposerConfig()
	cfg.MaxTokensPerSource = 40

	long := strings.Repeat("extended ", 20)
	got := Compose(context.Background(), cfg, nil, "base", "query",
		[]*Source{{Text: long}}, Scenario{Type: ScenarioGeneral}, BusinessContext{}, UserContext{})

	assert.Contains(t, got, "...")
	assert.NotContains(t, got, strings.TrimSpace(long))
	// the cut never lands mid-word
	assert.NotContains(t, got, "exten...")
}

func TestCompose_SourceCap(t *testing.T) {
	cfg := DefaultComposerConfig()
	cfg.MaxSourcesPerPrompt = 2

	sources := []*Source{
		{Text: "first"}, {Text: "second"}, {Text: "third"},
	}
	got := Compose(context.Background(), cfg, nil, "base", "query",
		sources, Scenario{Type: ScenarioGeneral}, BusinessContext{}, UserContext{})

	assert.Contains(t, got, "[Reference 2]")
	assert.NotContains(t, got, "[Reference 3]")
	assert.NotContains(t, got, "[3]")
}

func TestCompose_AttributionToggle(t *testing.T) {
	cfg := DefaultComposerConfig()
	cfg.EnableAttribution = false

	got := Compose(context.Background(), cfg, nil, "base", "query",
		[]*Source{typedSource("faq")}, Scenario{Type: ScenarioGeneral}, BusinessContext{}, UserContext{})
	assert.NotContains(t, got, "SOURCES:")
}

func TestCompose_ConfidenceGuidance(t *testing.T) {
	mk := func(conf float64) *Source {
		return &Source{Text: "doc", Metadata: map[string]interface{}{"confidence": conf}}
	}

	tests := []struct {
		name    string
		sources []*Source
		expect  string
	}{
		{"high average", []*Source{mk(0.9), mk(0.95)}, "HIGH CONFIDENCE:"},
		{"moderate average", []*Source{mk(0.7), mk(0.75)}, "MODERATE CONFIDENCE:"},
		{"low average", []*Source{mk(0.3)}, "LOW CONFIDENCE:"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := composeDefault(tt.sources, ScenarioGeneral)
			assert.Contains(t, got, tt.expect)
		})
	}
}

func TestCompose_Expansion(t *testing.T) {
	sources := []*Source{typedSource("faq")}
	scenario := Scenario{Type: ScenarioGeneral, Confidence: 0.5}

	t.Run("applied when user is known", func(t *testing.T) {
		exp := &fakeExpander{suffix: "\n[expanded]"}
		got := Compose(context.Background(), DefaultComposerConfig(), exp,
			"base", "query", sources, scenario, BusinessContext{}, UserContext{UserID: "user-1"})
		assert.Equal(t, 1, exp.calls)
		assert.True(t, strings.HasSuffix(got, "[expanded]"))
	})

	t.Run("skipped without a user id", func(t *testing.T) {
		exp := &fakeExpander{suffix: "\n[expanded]"}
		got := Compose(context.Background(), DefaultComposerConfig(), exp,
			"base", "query", sources, scenario, BusinessContext{}, UserContext{})
		assert.Zero(t, exp.calls)
		assert.NotContains(t, got, "[expanded]")
	})

	t.Run("failure keeps the unexpanded prompt", func(t *testing.T) {
		exp := &fakeExpander{fail: true}
		got := Compose(context.Background(), DefaultComposerConfig(), exp,
			"base", "query", sources, scenario, BusinessContext{}, UserContext{UserID: "user-1"})
		assert.Equal(t, 1, exp.calls)
		assert.Contains(t, got, "INSTRUCTIONS:")
		assert.True(t, strings.HasPrefix(got, "base"))
	})
}

func TestRenderBusinessContext_SortsExtraKeys(t *testing.T) {
	bc := BusinessContext{
		CompanyName: "Acme",
		Extra:       map[string]string{"Zone": "EU", "Brand": "Acme Plus"},
	}
	got := renderBusinessContext(bc)
	assert.Less(t, strings.Index(got, "Brand: Acme Plus"), strings.Index(got, "Zone: EU"))
}
