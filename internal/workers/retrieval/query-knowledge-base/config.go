// internal/workers/retrieval/query-knowledge-base/config.go
package queryknowledgebase

import (
	"time"

	appconfig "enhancement-workers/internal/common/config"
)

type Config struct {
	Timeout    time.Duration
	Index      string
	MaxResults int
	MinScore   float64
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		Index:      "knowledge_base",
		MaxResults: 10,
		MinScore:   0.1,
	}
}

// FromAppConfig derives the worker config from the loaded application
// configuration, falling back to LoadConfig defaults for unset values.
func FromAppConfig(cfg *appconfig.Config) *Config {
	out := LoadConfig()
	if cfg == nil {
		return out
	}
	if cfg.Knowledge.Index != "" {
		out.Index = cfg.Knowledge.Index
	}
	if cfg.Knowledge.MaxResults > 0 {
		out.MaxResults = cfg.Knowledge.MaxResults
	}
	if cfg.Knowledge.MinScore > 0 {
		out.MinScore = cfg.Knowledge.MinScore
	}
	if cfg.Knowledge.TimeoutMs > 0 {
		out.Timeout = time.Duration(cfg.Knowledge.TimeoutMs) * time.Millisecond
	}
	return out
}
