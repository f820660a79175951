package services

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
	"github.com/gofiber/fiber/v2"
)

// RateLimitService bounds the request rate per identifier with an in-process
// fixed-window counter. State lives for the process lifetime only; a
// multi-instance deployment would move the window state to redis.
type RateLimitService struct {
	context.DefaultService

	mu      sync.Mutex
	entries map[string]*rateLimitEntry

	securitySvc *SecurityLogService
}

type rateLimitEntry struct {
	count     int
	resetTime time.Time
}

// RateLimitConfig is a caller-supplied window policy; the limiter itself has
// no hardcoded limits.
type RateLimitConfig struct {
	Name        string
	MaxRequests int
	Window      time.Duration
}

var (
	AuthRateLimit   = RateLimitConfig{Name: "auth", MaxRequests: 5, Window: 15 * time.Minute}
	APIRateLimit    = RateLimitConfig{Name: "api", MaxRequests: 100, Window: time.Minute}
	CreateRateLimit = RateLimitConfig{Name: "create", MaxRequests: 20, Window: time.Minute}
	SearchRateLimit = RateLimitConfig{Name: "search", MaxRequests: 50, Window: time.Minute}
	UploadRateLimit = RateLimitConfig{Name: "upload", MaxRequests: 10, Window: time.Minute}
)

const RATE_LIMIT_SVC = "rate_limit_svc"

func (svc RateLimitService) Id() string {
	return RATE_LIMIT_SVC
}

func (svc *RateLimitService) Configure(ctx *context.Context) error {
	svc.entries = make(map[string]*rateLimitEntry)
	return svc.DefaultService.Configure(ctx)
}

func (svc *RateLimitService) Start() error {
	svc.securitySvc = svc.Service(SECURITY_LOG_SVC).(*SecurityLogService)
	return nil
}

// ==================== CORE RATE LIMITING LOGIC ====================

// CheckLimit runs one atomic check-and-increment for the identifier. Expired
// entries encountered along the way are swept inline; there is no background
// cleanup goroutine.
func (svc *RateLimitService) CheckLimit(identifier string, maxRequests int, window time.Duration) dto.RateLimitResult {
	now := time.Now()

	svc.mu.Lock()
	defer svc.mu.Unlock()

	if svc.entries == nil {
		svc.entries = make(map[string]*rateLimitEntry)
	}

	for key, entry := range svc.entries {
		if key != identifier && now.After(entry.resetTime) {
			delete(svc.entries, key)
		}
	}

	entry, exists := svc.entries[identifier]

	if !exists || now.After(entry.resetTime) {
		resetTime := now.Add(window)
		svc.entries[identifier] = &rateLimitEntry{count: 1, resetTime: resetTime}

		return dto.RateLimitResult{
			Allowed:   true,
			Remaining: maxRequests - 1,
			ResetTime: resetTime,
		}
	}

	if entry.count >= maxRequests {
		return dto.RateLimitResult{
			Allowed:   false,
			Remaining: 0,
			ResetTime: entry.resetTime,
		}
	}

	entry.count++
	return dto.RateLimitResult{
		Allowed:   true,
		Remaining: maxRequests - entry.count,
		ResetTime: entry.resetTime,
	}
}

// Reset removes the window for an identifier (admin override).
func (svc *RateLimitService) Reset(identifier string) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	delete(svc.entries, identifier)
}

func (svc *RateLimitService) Stats() dto.RateLimitStats {
	svc.mu.Lock()
	tracked := len(svc.entries)
	svc.mu.Unlock()

	configs := map[string]interface{}{}
	for _, cfg := range []RateLimitConfig{AuthRateLimit, APIRateLimit, CreateRateLimit, SearchRateLimit, UploadRateLimit} {
		configs[cfg.Name] = map[string]interface{}{
			"max_requests": cfg.MaxRequests,
			"window":       cfg.Window.String(),
		}
	}

	return dto.RateLimitStats{
		TrackedIdentifiers: tracked,
		Configs:            configs,
		Timestamp:          time.Now(),
	}
}

// ==================== MIDDLEWARE ====================

// Limit applies a window policy keyed by client IP.
func (svc *RateLimitService) Limit(cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := getClientIP(c)
		return svc.enforce(c, identifier, cfg)
	}
}

// UserLimit keys the window by the authenticated user, falling back to the
// client IP for anonymous callers.
func (svc *RateLimitService) UserLimit(cfg RateLimitConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identifier := getClientIP(c)
		if userID, ok := c.Locals(shared.UserID).(string); ok && userID != "" {
			identifier = userID
		}
		return svc.enforce(c, identifier, cfg)
	}
}

func (svc *RateLimitService) enforce(c *fiber.Ctx, identifier string, cfg RateLimitConfig) error {
	result := svc.CheckLimit(identifier, cfg.MaxRequests, cfg.Window)

	c.Set("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
	c.Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Set("X-RateLimit-Reset", result.ResetTime.UTC().Format(time.RFC3339))

	if !result.Allowed {
		rateLimitRejectionsTotal.WithLabelValues(cfg.Name).Inc()
		if svc.securitySvc != nil {
			svc.securitySvc.LogRateLimitExceeded(identifier, c.Path())
		}
		return svc.rejectRateLimited(c, result)
	}

	return c.Next()
}

func (svc *RateLimitService) rejectRateLimited(c *fiber.Ctx, result dto.RateLimitResult) error {
	retryAfter := int(math.Ceil(time.Until(result.ResetTime).Seconds()))
	if retryAfter < 0 {
		retryAfter = 0
	}

	c.Set("Retry-After", strconv.Itoa(retryAfter))
	c.Set("X-RateLimit-Reset", result.ResetTime.UTC().Format(time.RFC3339))

	return c.Status(http.StatusTooManyRequests).JSON(dto.RateLimitExceededResponse{
		Error:      "Too many requests",
		Message:    "Request limit exceeded. Please try again later.",
		RetryAfter: retryAfter,
	})
}

// ==================== UTILITY ====================

func getClientIP(c *fiber.Ctx) string {
	forwarded := c.Get("X-Forwarded-For")
	if forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			if ip := strings.TrimSpace(ips[0]); ip != "" {
				return ip
			}
		}
	}

	if realIP := c.Get("X-Real-IP"); realIP != "" {
		return realIP
	}

	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return cfIP
	}

	ip, _, err := net.SplitHostPort(c.Context().RemoteAddr().String())
	if err != nil {
		return c.Context().RemoteAddr().String()
	}

	return ip
}
