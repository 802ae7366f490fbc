package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-session-booking/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Custom": {"a", "b"}}
	body := []byte(`{"items":[]}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsTruncated(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{0, 0, 0})
	assert.False(t, ok)

	// header length pointing past the end of the buffer
	_, _, _, ok = decodePayload([]byte{0, 0, 0, 200, 0, 0, 0, 99, 'x'})
	assert.False(t, ok)
}

func testContext(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/sessions/:id")
	return c
}

func TestCacheKeyFrom(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1?x=1"))
	b := cacheKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1?x=1"))
	c := cacheKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1?x=2"))

	assert.Equal(t, a, b, "same route and query must share a key")
	assert.NotEqual(t, a, c, "different query must produce a different key")
	assert.Contains(t, a, "cache:")
}

func TestCacheKeyRouteStrategyIgnoresQuery(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}

	a := cacheKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1?x=1"))
	b := cacheKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1?x=2"))
	assert.Equal(t, a, b)
}

func TestRateKeyFrom(t *testing.T) {
	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "route"}
	key := rateKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1"))
	assert.Equal(t, "rl:route:GET /v1/sessions/:id", key)

	cfg.KeyStrategy = "ip_route"
	key = rateKeyFrom(cfg, testContext(http.MethodGet, "/v1/sessions/s1"))
	assert.Contains(t, key, "rl:ip:")
	assert.Contains(t, key, ":route:GET /v1/sessions/:id")
}

func TestDisabledMiddlewarePassesThrough(t *testing.T) {
	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }

	for _, mw := range []echo.MiddlewareFunc{
		NewTokenBucket(config.RateLimitConfig{Enabled: false}, nil),
		NewRedisCache(config.CacheConfig{Enabled: false}, nil),
	} {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		require.NoError(t, mw(next)(c))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ok", rec.Body.String())
	}
}
