package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
)

// AuditEventType represents the type of audit event
type AuditEventType string

const (
	// Authentication events
	AuditEventSignup       AuditEventType = "SIGNUP"
	AuditEventLogin        AuditEventType = "LOGIN"
	AuditEventLoginFailed  AuditEventType = "LOGIN_FAILED"
	AuditEventGoogleSignIn AuditEventType = "GOOGLE_SIGNIN"

	// Admin events
	AuditEventRoleChanged  AuditEventType = "ROLE_CHANGED"
	AuditEventUserDeleted  AuditEventType = "USER_DELETED"
	AuditEventPlanCreated  AuditEventType = "PLAN_CREATED"
	AuditEventPlanUpdated  AuditEventType = "PLAN_UPDATED"
	AuditEventPlanDeleted  AuditEventType = "PLAN_DELETED"
	AuditEventRoomAssigned AuditEventType = "ROOM_ASSIGNED"
)

// AuditService writes security and administration events to the log
type AuditService struct {
	logger *logging.Logger
}

// NewAuditService creates a new audit service; a nil logger uses the global one
func NewAuditService(logger *logging.Logger) *AuditService {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &AuditService{logger: logger}
}

// LogAuthEvent logs a successful authentication event for user
func (s *AuditService) LogAuthEvent(eventType AuditEventType, user *models.User, ip string) {
	s.logger.Info("[AUDIT] %s | User: %s (%s) | Role: %s | IP: %s",
		eventType, user.ID, user.Email, user.Role, ip)
}

// LogFailedAuthAttempt logs a rejected sign-in
func (s *AuditService) LogFailedAuthAttempt(email, ip, reason string) {
	s.logger.Warn("[AUDIT] %s | Email: %s | IP: %s | Reason: %s",
		AuditEventLoginFailed, email, ip, reason)
}

// LogAdminAction logs a change made by an admin. target names the affected entity.
func (s *AuditService) LogAdminAction(eventType AuditEventType, actor Actor, target string, details map[string]string) {
	s.logger.Info("[AUDIT] %s | Actor: %s | Target: %s | Details: %s",
		eventType, actor.UserID, target, formatDetails(details))
}

func formatDetails(details map[string]string) string {
	if len(details) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%s", k, details[k])
	}
	return strings.Join(parts, " ")
}
