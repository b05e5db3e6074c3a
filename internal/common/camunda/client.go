// internal/common/camunda/client.go
package camunda

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"enhancement-workers/internal/common/errors"
	"enhancement-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Client wraps the Zeebe gateway connection the enhancement workers poll
// jobs from. Creation checks the broker topology so a dead gateway fails
// at startup instead of on the first job.
type Client struct {
	client zbc.Client
	config *ClientConfig
}

type ClientConfig struct {
	GatewayAddress         string
	UsePlaintextConnection bool
	ConnectionTimeout      time.Duration
	RequestTimeout         time.Duration
	RetryConfig            *RetryConfig
}

// RetryConfig bounds the startup connect loop. The enhancement pipeline
// cannot run without a broker, so Dial keeps probing until the budget is
// spent.
type RetryConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

var DefaultRetryConfig = &RetryConfig{
	MaxRetries: 10,
	BaseDelay:  2 * time.Second,
	MaxDelay:   30 * time.Second,
}

// NewClientWithConfig connects to the gateway and verifies it answers a
// topology request within ConnectionTimeout.
func NewClientWithConfig(config *ClientConfig) (*Client, error) {
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultRetryConfig
	}

	zeebeClient, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         config.GatewayAddress,
		UsePlaintextConnection: config.UsePlaintextConnection,
	})
	if err != nil {
		return nil, fmt.Errorf("create zeebe client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), config.ConnectionTimeout)
	defer cancel()

	if _, err := zeebeClient.NewTopologyCommand().Send(ctx); err != nil {
		zeebeClient.Close()
		return nil, mapBrokerError(err, "connect", config.GatewayAddress)
	}

	return &Client{
		client: zeebeClient,
		config: config,
	}, nil
}

// Dial connects with exponential backoff, logging each failed attempt. It
// returns the first non-retryable error immediately; transient gateway
// errors consume the retry budget.
func Dial(config *ClientConfig, log logger.Logger) (*Client, error) {
	if config.RetryConfig == nil {
		config.RetryConfig = DefaultRetryConfig
	}
	retry := config.RetryConfig

	var lastErr error
	for attempt := 0; attempt <= retry.MaxRetries; attempt++ {
		client, err := NewClientWithConfig(config)
		if err == nil {
			if attempt > 0 {
				log.Info("workflow engine connected after retries", map[string]interface{}{
					"gateway":  config.GatewayAddress,
					"attempts": attempt + 1,
				})
			}
			return client, nil
		}

		lastErr = err
		if !isRetryableBrokerError(err) || attempt == retry.MaxRetries {
			break
		}

		delay := retry.BaseDelay * time.Duration(1<<attempt)
		if delay > retry.MaxDelay {
			delay = retry.MaxDelay
		}
		log.Warn("workflow engine unreachable, retrying", map[string]interface{}{
			"gateway": config.GatewayAddress,
			"attempt": attempt + 1,
			"delay":   delay.String(),
			"error":   err.Error(),
		})
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("workflow engine at %s unreachable: %w", config.GatewayAddress, lastErr)
}

// GetClient returns the raw Zeebe client for job polling.
func (c *Client) GetClient() zbc.Client {
	return c.client
}

func (c *Client) Close() error {
	return c.client.Close()
}

// HealthCheck issues a topology request. The worker manager's readiness
// endpoint reports 503 while this fails.
func (c *Client) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.config.ConnectionTimeout)
	defer cancel()

	if _, err := c.client.NewTopologyCommand().Send(ctx); err != nil {
		return mapBrokerError(err, "health check", c.config.GatewayAddress)
	}
	return nil
}

var retryableBrokerPhrases = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"deadline exceeded",
	"unavailable",
	"unreachable",
	"broken pipe",
}

func isRetryableBrokerError(err error) bool {
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr.Retryable
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range retryableBrokerPhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}

// mapBrokerError folds gateway failures into the worker error taxonomy so
// broker outages surface with the same codes the job handlers use.
func mapBrokerError(err error, operation, gateway string) error {
	msg := fmt.Sprintf("zeebe %s against %s: %s", operation, gateway, err.Error())
	lower := strings.ToLower(err.Error())

	switch {
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline exceeded"):
		return errors.NewTimeoutError("zeebe", fmt.Errorf("%s", msg))
	case strings.Contains(lower, "not found"):
		return errors.NewResourceNotFoundError("zeebe", msg)
	case strings.Contains(lower, "permission denied") || strings.Contains(lower, "unauthorized"):
		return errors.NewAuthenticationError(msg)
	default:
		return errors.NewExternalServiceError("zeebe", fmt.Errorf("%s", msg))
	}
}
