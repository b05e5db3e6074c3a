package template

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"enhancement-workers/internal/common/config"
	"enhancement-workers/internal/common/logger"
)

type redisCache struct {
	client *redis.Client
}

func (c *redisCache) Get(ctx context.Context, key string) (string, error) {
	return c.client.Get(ctx, key).Result()
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

func newTestCache(t *testing.T) (*redisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return &redisCache{client: client}, mr
}

func newTestExpander(t *testing.T, serviceURL string, cache Cache) *Expander {
	t.Helper()
	cfg := config.TemplateConfig{
		BaseURL:  serviceURL,
		APIKey:   "test-key",
		Timeout:  2000,
		CacheTTL: 60,
	}
	log := logger.NewZapAdapter(zaptest.NewLogger(t))
	return NewExpander(cfg, cache, log)
}

func TestExpand_CallsServiceAndCaches(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/system/expand-variables", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req expandRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "user-42", req.UserID)

		json.NewEncoder(w).Encode(expandResponse{Text: "Hello Alice"})
	}))
	defer server.Close()

	cache, mr := newTestCache(t)
	exp := newTestExpander(t, server.URL, cache)

	result, err := exp.Expand(context.Background(), "Hello {{firstName}}", "user-42")
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice", result)
	assert.Equal(t, 1, calls)

	// Second call is served from cache.
	result, err = exp.Expand(context.Background(), "Hello {{firstName}}", "user-42")
	require.NoError(t, err)
	assert.Equal(t, "Hello Alice", result)
	assert.Equal(t, 1, calls)

	assert.Len(t, mr.Keys(), 1)
}

func TestExpand_EmptyInputsPassThrough(t *testing.T) {
	exp := newTestExpander(t, "http://localhost:1", nil)

	result, err := exp.Expand(context.Background(), "", "user-42")
	require.NoError(t, err)
	assert.Equal(t, "", result)

	result, err = exp.Expand(context.Background(), "no user scope", "")
	require.NoError(t, err)
	assert.Equal(t, "no user scope", result)
}

func TestExpand_ServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	exp := newTestExpander(t, server.URL, nil)

	_, err := exp.Expand(context.Background(), "Hello {{firstName}}", "user-42")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
}

func TestExpand_CacheKeyIsScopedPerUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req expandRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(expandResponse{Text: "for " + req.UserID})
	}))
	defer server.Close()

	cache, _ := newTestCache(t)
	exp := newTestExpander(t, server.URL, cache)

	first, err := exp.Expand(context.Background(), "greeting", "user-1")
	require.NoError(t, err)
	second, err := exp.Expand(context.Background(), "greeting", "user-2")
	require.NoError(t, err)

	assert.Equal(t, "for user-1", first)
	assert.Equal(t, "for user-2", second)
}

func TestExpand_CacheFailureFallsThroughToService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(expandResponse{Text: "expanded"})
	}))
	defer server.Close()

	cache, mr := newTestCache(t)
	exp := newTestExpander(t, server.URL, cache)
	mr.Close()

	result, err := exp.Expand(context.Background(), "Hello {{firstName}}", "user-42")
	require.NoError(t, err)
	assert.Equal(t, "expanded", result)
}
