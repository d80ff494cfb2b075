package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveRequest("GET", "/x", 200, time.Millisecond)
		m.MembershipWritten(true)
		m.SetSummary(billing.Summary{})
	})
}

func TestSetSummary(t *testing.T) {
	m := New()
	m.SetSummary(billing.Summary{
		Lines: []billing.Line{
			{PlanName: "Veg", Subtotal: decimal.NewFromInt(6000)},
			{PlanName: "Snacks", Subtotal: decimal.NewFromInt(500)},
		},
		Total: decimal.NewFromInt(6500),
	})
	m.SetSummary(billing.Summary{
		Lines: []billing.Line{{PlanName: "Veg", Subtotal: decimal.NewFromInt(3000)}},
		Total: decimal.NewFromInt(3000),
	})

	assert.Equal(t, 3000.0, testutil.ToFloat64(m.periodTotal))
	assert.Equal(t, 3000.0, testutil.ToFloat64(m.planSubtotal.WithLabelValues("Veg")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.planSubtotal))
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New()
	m.MembershipWritten(true)
	m.ObserveRequest("PUT", "/api/v1/membership/me", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `hostel_membership_writes_total{opted_in="true"} 1`)
	assert.Contains(t, rec.Body.String(), "hostel_http_requests_total")
}
