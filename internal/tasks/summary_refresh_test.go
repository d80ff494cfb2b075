package tasks

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/metrics"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSummarizer struct {
	mu      sync.Mutex
	periods []billing.Period
	summary billing.Summary
	err     error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, period billing.Period) (billing.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.periods = append(f.periods, period)
	return f.summary, f.err
}

func (f *fakeSummarizer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.periods)
}

func TestRefreshPublishesCurrentPeriod(t *testing.T) {
	clock := billing.FixedClock(time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC))
	fake := &fakeSummarizer{summary: billing.Summary{
		Period: "October 2025",
		Lines:  []billing.Line{{PlanID: "p1", PlanName: "Veg", Subscribers: 2, Subtotal: decimal.NewFromInt(6000)}},
		Total:  decimal.NewFromInt(6000),
	}}
	m := metrics.New()

	NewSummaryRefresher(fake, m, clock, time.Minute).Refresh(context.Background())

	require.Equal(t, []billing.Period{"October 2025"}, fake.periods)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `hostel_mess_plan_subtotal{plan="Veg"} 6000`)
	assert.Contains(t, rec.Body.String(), "hostel_mess_period_total 6000")
}

func TestRefreshToleratesErrors(t *testing.T) {
	clock := billing.FixedClock(time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC))
	fake := &fakeSummarizer{err: errors.New("db down")}

	assert.NotPanics(t, func() {
		NewSummaryRefresher(fake, nil, clock, time.Minute).Refresh(context.Background())
	})
	assert.Equal(t, 1, fake.calls())
}

func TestStartStopsWithContext(t *testing.T) {
	clock := billing.FixedClock(time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC))
	fake := &fakeSummarizer{}
	ctx, cancel := context.WithCancel(context.Background())

	NewSummaryRefresher(fake, nil, clock, 10*time.Millisecond).Start(ctx)

	require.Eventually(t, func() bool { return fake.calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(30 * time.Millisecond)
	stopped := fake.calls()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, fake.calls())
}
