// internal/workers/communication/notify-escalation/config.go
package notifyescalation

import (
	"time"

	appconfig "enhancement-workers/internal/common/config"
)

type Config struct {
	Timeout         time.Duration
	EmailEnabled    bool
	FromEmail       string
	Recipients      []string
	SMSEnabled      bool
	TopicARN        string
	OnCallNumbers   []string
	SMSSenderID     string
	SMSUrgencyFloor string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:         10 * time.Second,
		EmailEnabled:    true,
		FromEmail:       "assistant@company.com",
		SMSEnabled:      false,
		SMSUrgencyFloor: "high",
	}
}

func FromAppConfig(cfg *appconfig.Config) *Config {
	out := LoadConfig()
	if cfg == nil {
		return out
	}
	out.EmailEnabled = cfg.Notifications.Email.Enabled
	if cfg.Notifications.Email.FromEmail != "" {
		out.FromEmail = cfg.Notifications.Email.FromEmail
	}
	out.Recipients = cfg.Notifications.Email.Recipients
	out.SMSEnabled = cfg.Notifications.SMS.Enabled
	if cfg.Notifications.SMS.UrgencyThreshold != "" {
		out.SMSUrgencyFloor = cfg.Notifications.SMS.UrgencyThreshold
	}
	out.OnCallNumbers = cfg.Notifications.SMS.PhoneNumbers
	out.TopicARN = cfg.Integrations.AWS.SNS.TopicARN
	out.SMSSenderID = cfg.Integrations.AWS.SNS.DefaultSMSSenderID
	if wc := appconfig.GetWorkerConfig(cfg, TaskType); wc.Timeout > 0 {
		out.Timeout = time.Duration(wc.Timeout) * time.Millisecond
	}
	return out
}
