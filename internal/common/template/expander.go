// internal/common/template/expander.go
package template

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"enhancement-workers/internal/common/config"
	"enhancement-workers/internal/common/logger"
	"enhancement-workers/internal/common/metrics"

	commonhttp "enhancement-workers/internal/common/http"
)

var (
	ErrServiceUnavailable = errors.New("TEMPLATE_EXPANSION_FAILED")
	ErrServiceTimeout     = errors.New("TEMPLATE_SERVICE_TIMEOUT")
)

// Cache is the subset of the redis client the expander needs. Results are
// keyed by a hash of the unexpanded text plus the user ID.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Expander resolves user-scoped template variables through the template
// service, with a Redis cache in front of it. It implements the prompt
// engine's Expander interface.
type Expander struct {
	config config.TemplateConfig
	client *commonhttp.Client
	cache  Cache
	log    logger.Logger
}

func NewExpander(cfg config.TemplateConfig, cache Cache, log logger.Logger) *Expander {
	return &Expander{
		config: cfg,
		client: commonhttp.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		cache:  cache,
		log:    log.WithFields(map[string]interface{}{"component": "template-expander"}),
	}
}

type expandRequest struct {
	Text   string `json:"text"`
	UserID string `json:"userId"`
}

type expandResponse struct {
	Text string `json:"text"`
}

// Expand substitutes template variables in text for the given user. Cache
// hits skip the service call entirely; cache failures fall through to the
// service rather than failing the expansion.
func (e *Expander) Expand(ctx context.Context, text, userID string) (string, error) {
	if text == "" || userID == "" {
		return text, nil
	}

	key := e.cacheKey(text, userID)
	if e.cache != nil {
		if cached, err := e.cache.Get(ctx, key); err == nil && cached != "" {
			metrics.TemplateCacheHits.WithLabelValues("hit").Inc()
			return cached, nil
		}
		metrics.TemplateCacheHits.WithLabelValues("miss").Inc()
	}

	expanded, err := e.callService(ctx, text, userID)
	if err != nil {
		return "", err
	}

	if e.cache != nil {
		ttl := time.Duration(e.config.CacheTTL) * time.Second
		if cacheErr := e.cache.Set(ctx, key, expanded, ttl); cacheErr != nil {
			e.log.WithError(cacheErr).Warn("Failed to cache expanded template", nil)
		}
	}

	return expanded, nil
}

func (e *Expander) callService(ctx context.Context, text, userID string) (string, error) {
	url := e.config.BaseURL + "/api/system/expand-variables"
	body, err := e.client.PostJSON(ctx, url, expandRequest{Text: text, UserID: userID}, e.config.APIKey)
	if err != nil {
		var statusErr *commonhttp.StatusError
		switch {
		case errors.As(err, &statusErr):
			return "", fmt.Errorf("%w: service returned status %d", ErrServiceUnavailable, statusErr.Code)
		case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
			return "", fmt.Errorf("%w: %v", ErrServiceTimeout, err)
		default:
			return "", fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
		}
	}

	var decoded expandResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrServiceUnavailable, err)
	}
	if decoded.Text == "" {
		return "", fmt.Errorf("%w: empty expansion result", ErrServiceUnavailable)
	}

	return decoded.Text, nil
}

func (e *Expander) cacheKey(text, userID string) string {
	sum := sha256.Sum256([]byte(userID + "\x00" + text))
	return "tmpl:" + hex.EncodeToString(sum[:16])
}

func isTimeout(err error) bool {
	type timeout interface{ Timeout() bool }
	var t timeout
	return errors.As(err, &t) && t.Timeout()
}
