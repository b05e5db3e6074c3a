// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Database      DatabaseConfig          `mapstructure:"database"`
	Knowledge     KnowledgeConfig         `mapstructure:"knowledge"`
	Enhancement   EnhancementConfig       `mapstructure:"enhancement"`
	Business      BusinessConfig          `mapstructure:"business"`
	Template      TemplateConfig          `mapstructure:"template"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Integrations  IntegrationConfig       `mapstructure:"integrations"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
	Registry      RegistryConfig          `mapstructure:"registry"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	SSLEnabled bool     `mapstructure:"ssl_enabled"`
	URL        string   `mapstructure:"url"` // Single URL for backwards compatibility
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`       // milliseconds
	PollInterval  int  `mapstructure:"poll_interval"` // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"`   // For error handling
}

// --- Specific Configuration Sections ---

// KnowledgeConfig holds settings for the knowledge base retrieval worker.
type KnowledgeConfig struct {
	Index          string  `mapstructure:"index"`
	MaxResults     int     `mapstructure:"max_results"`
	MinScore       float64 `mapstructure:"min_score"`
	TimeoutMs      int     `mapstructure:"timeout_ms"`
	HighlightField string  `mapstructure:"highlight_field"`
}

// EnhancementConfig holds the tunable thresholds of the enhancement engine.
// Zero values fall back to the engine defaults so a partial config section
// never produces a broken pipeline.
type EnhancementConfig struct {
	ContextDetectionThreshold float64  `mapstructure:"context_detection_threshold"`
	HighConfidenceThreshold   float64  `mapstructure:"high_confidence_threshold"`
	MediumConfidenceThreshold float64  `mapstructure:"medium_confidence_threshold"`
	EscalationThreshold       float64  `mapstructure:"escalation_threshold"`
	EscalationTriggerPhrases  []string `mapstructure:"escalation_trigger_phrases"`
	MaxSourcesPerPrompt       int      `mapstructure:"max_sources_per_prompt"`
	MaxTokensPerSource        int      `mapstructure:"max_tokens_per_source"`
	MaxCitations              int      `mapstructure:"max_citations"`
	EnableAttribution         *bool    `mapstructure:"enable_attribution"`
	EnableBusinessContext     *bool    `mapstructure:"enable_business_context"`
}

// BusinessConfig holds merchant policy values rendered into prompt text.
type BusinessConfig struct {
	ReturnPeriodDays      int     `mapstructure:"return_period_days"`
	FreeShippingThreshold float64 `mapstructure:"free_shipping_threshold"`
	WarrantyPeriodDays    int     `mapstructure:"warranty_period_days"`
	UpsellThreshold       float64 `mapstructure:"upsell_threshold"`
	MaxRecommendations    int     `mapstructure:"max_recommendations"`
	SupportHours          string  `mapstructure:"support_hours"`
	SupportEmail          string  `mapstructure:"support_email"`
	SupportPhone          string  `mapstructure:"support_phone"`
}

// TemplateConfig holds settings for the user-variable expansion service.
type TemplateConfig struct {
	BaseURL  string `mapstructure:"base_url"`
	APIKey   string `mapstructure:"api_key"`
	Timeout  int    `mapstructure:"timeout"`   // milliseconds
	CacheTTL int    `mapstructure:"cache_ttl"` // seconds
}

// IntegrationConfig holds settings for AWS and other external services.
type IntegrationConfig struct {
	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			TopicARN           string `mapstructure:"topic_arn"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// NotificationConfig holds settings for the notify-escalation worker.
type NotificationConfig struct {
	Email struct {
		Enabled    bool     `mapstructure:"enabled"`
		FromEmail  string   `mapstructure:"from_email"`
		Recipients []string `mapstructure:"recipients"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled          bool     `mapstructure:"enabled"`
		UrgencyThreshold string   `mapstructure:"urgency_threshold"`
		PhoneNumbers     []string `mapstructure:"phone_numbers"`
	} `mapstructure:"sms"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// RegistryConfig points at the activity registry consumed by tooling.
type RegistryConfig struct {
	Path string `mapstructure:"path"`
}
