package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
)

func newTestSecurityLog(capacity int) *SecurityLogService {
	return &SecurityLogService{
		capacity: capacity,
		entries:  make([]dto.SecurityEvent, capacity),
	}
}

func TestLogKeepsInsertionOrder(t *testing.T) {
	svc := newTestSecurityLog(10)

	svc.LogLoginFailed("juan@email.com", "203.0.113.7", "wrong password")
	svc.LogLoginSuccess("user-1", "juan@email.com", "203.0.113.7")
	svc.LogUnauthorizedAccess("user-2", "/api/v1/admin/users", "203.0.113.8")

	events := svc.RecentEvents(10)
	require.Len(t, events, 3)
	assert.Equal(t, shared.EventLoginFailed, events[0].EventType)
	assert.Equal(t, shared.EventLoginSuccess, events[1].EventType)
	assert.Equal(t, shared.EventUnauthorizedAccess, events[2].EventType)
}

func TestLogEvictsOldestAtCapacity(t *testing.T) {
	svc := newTestSecurityLog(3)

	for i := 0; i < 5; i++ {
		svc.Log(shared.EventAPIError, shared.LevelError, fmt.Sprintf("event %d", i), nil)
	}

	events := svc.RecentEvents(10)
	require.Len(t, events, 3)
	assert.Equal(t, "event 2", events[0].Message)
	assert.Equal(t, "event 4", events[2].Message)
}

func TestRecentEventsReturnsNewestTail(t *testing.T) {
	svc := newTestSecurityLog(10)

	for i := 0; i < 6; i++ {
		svc.Log(shared.EventAPIError, shared.LevelError, fmt.Sprintf("event %d", i), nil)
	}

	events := svc.RecentEvents(2)
	require.Len(t, events, 2)
	assert.Equal(t, "event 4", events[0].Message)
	assert.Equal(t, "event 5", events[1].Message)
}

func TestEventsByUser(t *testing.T) {
	svc := newTestSecurityLog(10)

	svc.LogUnauthorizedAccess("user-1", "/a", "203.0.113.7")
	svc.LogUnauthorizedAccess("user-2", "/b", "203.0.113.8")
	svc.LogUnauthorizedAccess("user-1", "/c", "203.0.113.7")

	events := svc.EventsByUser("user-1")
	require.Len(t, events, 2)
	assert.Equal(t, "/a", events[0].Endpoint)
	assert.Equal(t, "/c", events[1].Endpoint)
}

func TestEventsByType(t *testing.T) {
	svc := newTestSecurityLog(10)

	svc.LogLoginSuccess("user-1", "juan@email.com", "203.0.113.7")
	svc.LogRateLimitExceeded("203.0.113.7", "/api/v1/orders")
	svc.LogLoginSuccess("user-2", "maria@email.com", "203.0.113.9")

	events := svc.EventsByType(shared.EventLoginSuccess)
	require.Len(t, events, 2)
	for _, e := range events {
		assert.Equal(t, shared.EventLoginSuccess, e.EventType)
	}
}

func TestCriticalEvents(t *testing.T) {
	svc := newTestSecurityLog(10)

	svc.Log(shared.EventAPIError, shared.LevelError, "plain error", nil)
	svc.Log(shared.EventUnauthorizedAccess, shared.LevelCritical, "break-in attempt", nil)

	events := svc.CriticalEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "break-in attempt", events[0].Message)
}

func TestClearEmptiesBuffer(t *testing.T) {
	svc := newTestSecurityLog(10)

	svc.LogLoginSuccess("user-1", "juan@email.com", "203.0.113.7")
	require.NotEmpty(t, svc.RecentEvents(10))

	svc.Clear()
	assert.Empty(t, svc.RecentEvents(10))

	svc.LogLoginSuccess("user-1", "juan@email.com", "203.0.113.7")
	assert.Len(t, svc.RecentEvents(10), 1)
}

func TestLogMaliciousInputTruncatesPayload(t *testing.T) {
	svc := newTestSecurityLog(10)

	long := make([]byte, 150)
	for i := range long {
		long[i] = 'a'
	}
	svc.LogMaliciousInput("user-1", string(long), []string{"possible SQL injection"}, "/api/v1/products", "203.0.113.7")

	events := svc.EventsByType(shared.EventMaliciousInput)
	require.Len(t, events, 1)
	input, ok := events[0].Metadata["input"].(string)
	require.True(t, ok)
	assert.Len(t, input, 100)
}

func TestLogAttachesMeta(t *testing.T) {
	svc := newTestSecurityLog(10)

	svc.Log(shared.EventAPIError, shared.LevelError, "boom", &dto.SecurityEventMeta{
		UserID:    "user-1",
		IPAddress: "203.0.113.7",
		Endpoint:  "/api/v1/orders",
		Method:    "POST",
	})

	events := svc.RecentEvents(1)
	require.Len(t, events, 1)
	assert.Equal(t, "user-1", events[0].UserID)
	assert.Equal(t, "203.0.113.7", events[0].IPAddress)
	assert.Equal(t, "/api/v1/orders", events[0].Endpoint)
	assert.Equal(t, "POST", events[0].Method)
	assert.False(t, events[0].Timestamp.IsZero())
}
