package service

import (
	"bytes"
	"testing"

	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAuditService(t *testing.T) {
	var buf bytes.Buffer
	audit := NewAuditService(logging.NewWriterLogger(&buf, logging.LevelInfo))

	audit.LogAuthEvent(AuditEventLogin, &models.User{ID: "u1", Email: "asha@example.com", Role: models.RoleStudent}, "10.0.0.1")
	assert.Contains(t, buf.String(), "[AUDIT] LOGIN | User: u1 (asha@example.com) | Role: student | IP: 10.0.0.1")

	buf.Reset()
	audit.LogFailedAuthAttempt("asha@example.com", "10.0.0.1", "invalid credentials")
	assert.Contains(t, buf.String(), "[AUDIT] LOGIN_FAILED | Email: asha@example.com")

	buf.Reset()
	audit.LogAdminAction(AuditEventPlanUpdated, Actor{UserID: "admin1", Role: models.RoleAdmin}, "plan p1",
		map[string]string{"price": "3200.00", "name": "Veg"})
	assert.Contains(t, buf.String(), "Actor: admin1 | Target: plan p1 | Details: name=Veg price=3200.00")

	buf.Reset()
	audit.LogAdminAction(AuditEventPlanDeleted, Actor{UserID: "admin1"}, "plan p1", nil)
	assert.Contains(t, buf.String(), "Details: -")
}
