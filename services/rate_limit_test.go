package services

import (
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

func newTestRateLimiter() *RateLimitService {
	return &RateLimitService{entries: map[string]*rateLimitEntry{}}
}

func TestCheckLimitAdmitsUpToMax(t *testing.T) {
	svc := newTestRateLimiter()

	for i := 0; i < 5; i++ {
		result := svc.CheckLimit("203.0.113.7", 5, time.Minute)
		require.True(t, result.Allowed, "request %d should be admitted", i+1)
		assert.Equal(t, 4-i, result.Remaining)
	}
}

func TestCheckLimitRejectsBeyondMax(t *testing.T) {
	svc := newTestRateLimiter()

	for i := 0; i < 3; i++ {
		svc.CheckLimit("203.0.113.7", 3, time.Minute)
	}

	result := svc.CheckLimit("203.0.113.7", 3, time.Minute)
	assert.False(t, result.Allowed)
	assert.Equal(t, 0, result.Remaining)
	assert.True(t, result.ResetTime.After(time.Now()))
}

func TestCheckLimitWindowExpiryReadmits(t *testing.T) {
	svc := newTestRateLimiter()

	svc.CheckLimit("203.0.113.7", 1, 20*time.Millisecond)
	result := svc.CheckLimit("203.0.113.7", 1, 20*time.Millisecond)
	require.False(t, result.Allowed)

	time.Sleep(30 * time.Millisecond)

	result = svc.CheckLimit("203.0.113.7", 1, 20*time.Millisecond)
	assert.True(t, result.Allowed, "a fresh window should admit again")
}

func TestCheckLimitIdentifiersAreIndependent(t *testing.T) {
	svc := newTestRateLimiter()

	for i := 0; i < 2; i++ {
		svc.CheckLimit("203.0.113.7", 2, time.Minute)
	}
	require.False(t, svc.CheckLimit("203.0.113.7", 2, time.Minute).Allowed)

	result := svc.CheckLimit("198.51.100.9", 2, time.Minute)
	assert.True(t, result.Allowed, "another identifier must not share the window")
	assert.Equal(t, 1, result.Remaining)
}

func TestResetReadmitsIdentifier(t *testing.T) {
	svc := newTestRateLimiter()

	svc.CheckLimit("user:abc", 1, time.Hour)
	require.False(t, svc.CheckLimit("user:abc", 1, time.Hour).Allowed)

	svc.Reset("user:abc")

	assert.True(t, svc.CheckLimit("user:abc", 1, time.Hour).Allowed)
}

func TestCheckLimitConcurrentNeverOverAdmits(t *testing.T) {
	svc := newTestRateLimiter()

	const goroutines = 100
	const maxRequests = 10

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.CheckLimit("203.0.113.7", maxRequests, time.Minute).Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, maxRequests, allowed)
}

func TestStatsReportsTrackedIdentifiers(t *testing.T) {
	svc := newTestRateLimiter()

	for i := 0; i < 4; i++ {
		svc.CheckLimit(fmt.Sprintf("203.0.113.%d", i), 10, time.Minute)
	}

	stats := svc.Stats()
	assert.Equal(t, 4, stats.TrackedIdentifiers)
	assert.Contains(t, stats.Configs, "auth")
	assert.Contains(t, stats.Configs, "api")
}

func TestCheckLimitSweepsExpiredEntries(t *testing.T) {
	svc := newTestRateLimiter()

	svc.CheckLimit("stale", 5, 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	svc.CheckLimit("fresh", 5, time.Minute)

	stats := svc.Stats()
	assert.Equal(t, 1, stats.TrackedIdentifiers, "expired windows should be swept inline")
}

func TestAuthLimitMiddlewareRejectsSixthAttempt(t *testing.T) {
	svc := &RateLimitService{
		entries:     map[string]*rateLimitEntry{},
		securitySvc: newTestSecurityLog(100),
	}

	app := fiber.New()
	app.Post("/login", svc.Limit(AuthRateLimit), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i := 0; i < 5; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode, "attempt %d should pass", i+1)
		assert.Equal(t, "5", resp.Header.Get("X-RateLimit-Limit"))
		assert.Equal(t, strconv.Itoa(4-i), resp.Header.Get("X-RateLimit-Remaining"))
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	reset, err := time.Parse(time.RFC3339, resp.Header.Get("X-RateLimit-Reset"))
	require.NoError(t, err)
	assert.True(t, reset.After(time.Now()))

	// A 15 minute window means a retry hint just under 900 seconds.
	retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After"))
	require.NoError(t, err)
	assert.Greater(t, retryAfter, 890)
	assert.LessOrEqual(t, retryAfter, 900)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body dto.RateLimitExceededResponse
	require.NoError(t, sonic.Unmarshal(raw, &body))
	assert.Equal(t, "Too many requests", body.Error)
	assert.NotEmpty(t, body.Message)
	assert.Equal(t, retryAfter, body.RetryAfter)

	events := svc.securitySvc.EventsByType(shared.EventRateLimitExceeded)
	require.Len(t, events, 1)
	assert.Equal(t, "/login", events[0].Endpoint)
}

func TestLimitMiddlewareSetsHeadersOnSuccess(t *testing.T) {
	svc := &RateLimitService{
		entries:     map[string]*rateLimitEntry{},
		securitySvc: newTestSecurityLog(100),
	}

	app := fiber.New()
	app.Get("/menu", svc.Limit(APIRateLimit), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/menu", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.Equal(t, "100", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "99", resp.Header.Get("X-RateLimit-Remaining"))
	_, err = time.Parse(time.RFC3339, resp.Header.Get("X-RateLimit-Reset"))
	assert.NoError(t, err)

	assert.Empty(t, svc.securitySvc.EventsByType(shared.EventRateLimitExceeded))
}
