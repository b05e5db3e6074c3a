// internal/workers/enhancement/enhance-prompt/config.go
package enhanceprompt

import (
	"time"

	appconfig "enhancement-workers/internal/common/config"
	"enhancement-workers/internal/enhancement"
)

type Config struct {
	Timeout time.Duration
	Engine  enhancement.Config
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 15 * time.Second,
		Engine:  enhancement.DefaultConfig(),
	}
}

func FromAppConfig(cfg *appconfig.Config) *Config {
	out := LoadConfig()
	if cfg == nil {
		return out
	}
	out.Engine = cfg.EngineConfig()
	if wc := appconfig.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		out.Timeout = time.Duration(wc.Timeout) * time.Millisecond
	}
	return out
}
