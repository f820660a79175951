package services

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/fastbite-labs/fastbite-api/dto"
	"github.com/fastbite-labs/fastbite-api/shared"
	log "github.com/sirupsen/logrus"
)

// SecurityLogService keeps a bounded in-memory trail of security-relevant
// events and mirrors each one to the console logger. Entries do not survive a
// restart; a production deployment forwards them to durable storage out of
// band.
type SecurityLogService struct {
	context.DefaultService

	mu       sync.Mutex
	capacity int
	entries  []dto.SecurityEvent
	start    int
	count    int
}

const SECURITY_LOG_SVC = "security_log_svc"

const defaultSecurityLogCapacity = 1000

func (svc SecurityLogService) Id() string {
	return SECURITY_LOG_SVC
}

func (svc *SecurityLogService) Configure(ctx *context.Context) error {
	svc.capacity = defaultSecurityLogCapacity
	if capStr := os.Getenv("SECURITY_LOG_CAPACITY"); capStr != "" {
		if c, err := strconv.Atoi(capStr); err == nil && c > 0 {
			svc.capacity = c
		}
	}
	svc.entries = make([]dto.SecurityEvent, svc.capacity)

	return svc.DefaultService.Configure(ctx)
}

func (svc *SecurityLogService) Start() error {
	return nil
}

// Log appends an immutable entry. Oldest entries are dropped silently once
// the buffer is full; logging never blocks or fails.
func (svc *SecurityLogService) Log(eventType, level, message string, meta *dto.SecurityEventMeta) {
	entry := dto.SecurityEvent{
		Timestamp: time.Now(),
		EventType: eventType,
		Level:     level,
		Message:   message,
	}
	if meta != nil {
		entry.UserID = meta.UserID
		entry.UserEmail = meta.UserEmail
		entry.IPAddress = meta.IPAddress
		entry.UserAgent = meta.UserAgent
		entry.Endpoint = meta.Endpoint
		entry.Method = meta.Method
		entry.Metadata = meta.Extra
	}

	svc.mu.Lock()
	if svc.entries == nil {
		svc.capacity = defaultSecurityLogCapacity
		svc.entries = make([]dto.SecurityEvent, svc.capacity)
	}
	idx := (svc.start + svc.count) % svc.capacity
	svc.entries[idx] = entry
	if svc.count < svc.capacity {
		svc.count++
	} else {
		svc.start = (svc.start + 1) % svc.capacity
	}
	svc.mu.Unlock()

	securityEventsTotal.WithLabelValues(level).Inc()
	svc.mirror(entry)

	if level == shared.LevelCritical {
		svc.alertCritical(entry)
	}
}

func (svc *SecurityLogService) mirror(entry dto.SecurityEvent) {
	fields := log.Fields{
		"event_type": entry.EventType,
		"level":      entry.Level,
	}
	if entry.UserID != "" {
		fields["user_id"] = entry.UserID
	}
	if entry.IPAddress != "" {
		fields["ip"] = entry.IPAddress
	}
	if entry.Endpoint != "" {
		fields["endpoint"] = entry.Endpoint
	}

	logEntry := log.WithFields(fields)

	switch entry.Level {
	case shared.LevelCritical, shared.LevelError:
		logEntry.Error(entry.Message)
	case shared.LevelWarning:
		logEntry.Warn(entry.Message)
	default:
		logEntry.Info(entry.Message)
	}
}

// alertCritical is the escalation hook for operator paging. Console-only for
// now; a real deployment plugs an alerting integration in here.
func (svc *SecurityLogService) alertCritical(entry dto.SecurityEvent) {
	log.WithFields(log.Fields{
		"event_type": entry.EventType,
		"user_id":    entry.UserID,
		"ip":         entry.IPAddress,
	}).Error("CRITICAL SECURITY EVENT: " + entry.Message)
}

// snapshot returns the buffered entries in insertion order.
func (svc *SecurityLogService) snapshot() []dto.SecurityEvent {
	svc.mu.Lock()
	defer svc.mu.Unlock()

	out := make([]dto.SecurityEvent, 0, svc.count)
	for i := 0; i < svc.count; i++ {
		out = append(out, svc.entries[(svc.start+i)%svc.capacity])
	}
	return out
}

func (svc *SecurityLogService) RecentEvents(limit int) []dto.SecurityEvent {
	all := svc.snapshot()
	if limit <= 0 || limit >= len(all) {
		return all
	}
	return all[len(all)-limit:]
}

func (svc *SecurityLogService) EventsByType(eventType string) []dto.SecurityEvent {
	var out []dto.SecurityEvent
	for _, e := range svc.snapshot() {
		if e.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (svc *SecurityLogService) EventsByUser(userID string) []dto.SecurityEvent {
	var out []dto.SecurityEvent
	for _, e := range svc.snapshot() {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

func (svc *SecurityLogService) CriticalEvents() []dto.SecurityEvent {
	var out []dto.SecurityEvent
	for _, e := range svc.snapshot() {
		if e.Level == shared.LevelCritical {
			out = append(out, e)
		}
	}
	return out
}

func (svc *SecurityLogService) Clear() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.start = 0
	svc.count = 0
}

// ==================== SEMANTIC HELPERS ====================

func (svc *SecurityLogService) LogLoginSuccess(userID, userEmail, ipAddress string) {
	svc.Log(shared.EventLoginSuccess, shared.LevelInfo,
		fmt.Sprintf("User authenticated successfully: %s", userEmail),
		&dto.SecurityEventMeta{UserID: userID, UserEmail: userEmail, IPAddress: ipAddress})
}

func (svc *SecurityLogService) LogLoginFailed(email, ipAddress, reason string) {
	svc.Log(shared.EventLoginFailed, shared.LevelWarning,
		fmt.Sprintf("Failed login attempt for %s: %s", email, reason),
		&dto.SecurityEventMeta{UserEmail: email, IPAddress: ipAddress,
			Extra: map[string]interface{}{"reason": reason}})
}

func (svc *SecurityLogService) LogPasswordResetRequested(email, ipAddress string) {
	svc.Log(shared.EventPasswordResetRequested, shared.LevelInfo,
		fmt.Sprintf("Password reset requested for %s", email),
		&dto.SecurityEventMeta{UserEmail: email, IPAddress: ipAddress})
}

func (svc *SecurityLogService) LogUnauthorizedAccess(userID, endpoint, ipAddress string) {
	svc.Log(shared.EventUnauthorizedAccess, shared.LevelWarning,
		fmt.Sprintf("Unauthorized access attempt on %s", endpoint),
		&dto.SecurityEventMeta{UserID: userID, Endpoint: endpoint, IPAddress: ipAddress})
}

func (svc *SecurityLogService) LogRateLimitExceeded(identifier, endpoint string) {
	svc.Log(shared.EventRateLimitExceeded, shared.LevelWarning,
		fmt.Sprintf("Rate limit exceeded for %s on %s", identifier, endpoint),
		&dto.SecurityEventMeta{Endpoint: endpoint,
			Extra: map[string]interface{}{"identifier": identifier}})
}

func (svc *SecurityLogService) LogMaliciousInput(userID, input string, reasons []string, endpoint, ipAddress string) {
	if len(input) > 100 {
		input = input[:100]
	}
	svc.Log(shared.EventMaliciousInput, shared.LevelError,
		fmt.Sprintf("Malicious input detected: %s", strings.Join(reasons, ", ")),
		&dto.SecurityEventMeta{UserID: userID, Endpoint: endpoint, IPAddress: ipAddress,
			Extra: map[string]interface{}{"input": input, "reasons": reasons}})
}

func (svc *SecurityLogService) LogUserCreated(createdUserID, createdByUserID, userEmail, role string) {
	svc.Log(shared.EventUserCreated, shared.LevelInfo,
		fmt.Sprintf("User created: %s with role %s", userEmail, role),
		&dto.SecurityEventMeta{UserID: createdUserID, UserEmail: userEmail,
			Extra: map[string]interface{}{"created_by": createdByUserID, "role": role}})
}

func (svc *SecurityLogService) LogUserDeleted(deletedUserID, deletedByUserID, userEmail string) {
	svc.Log(shared.EventUserDeleted, shared.LevelWarning,
		fmt.Sprintf("User deleted: %s", userEmail),
		&dto.SecurityEventMeta{UserID: deletedUserID, UserEmail: userEmail,
			Extra: map[string]interface{}{"deleted_by": deletedByUserID}})
}

func (svc *SecurityLogService) LogUserRoleChanged(userID, changedByUserID, oldRole, newRole string) {
	svc.Log(shared.EventUserRoleChanged, shared.LevelWarning,
		fmt.Sprintf("User role changed from %s to %s", oldRole, newRole),
		&dto.SecurityEventMeta{UserID: userID,
			Extra: map[string]interface{}{"changed_by": changedByUserID, "old_role": oldRole, "new_role": newRole}})
}
