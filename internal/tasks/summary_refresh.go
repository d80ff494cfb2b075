package tasks

import (
	"context"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/metrics"
)

// Summarizer computes the mess summary of a period
type Summarizer interface {
	Summarize(ctx context.Context, period billing.Period) (billing.Summary, error)
}

// SummaryRefresher periodically publishes the current period's mess totals
// as metrics gauges
type SummaryRefresher struct {
	summarizer Summarizer
	metrics    *metrics.Metrics
	clock      billing.Clock
	interval   time.Duration
	logger     *logging.Logger
}

// NewSummaryRefresher creates a new summary refresh task
func NewSummaryRefresher(s Summarizer, m *metrics.Metrics, clock billing.Clock, interval time.Duration) *SummaryRefresher {
	return &SummaryRefresher{
		summarizer: s,
		metrics:    m,
		clock:      clock,
		interval:   interval,
		logger:     logging.GetLogger(),
	}
}

// Start begins the refresh task in the background; it stops when ctx is done
func (r *SummaryRefresher) Start(ctx context.Context) {
	go r.runPeriodically(ctx)
}

func (r *SummaryRefresher) runPeriodically(ctx context.Context) {
	// Run immediately on startup
	r.Refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Refresh(ctx)
		}
	}
}

// Refresh recomputes the summary for the clock's current period
func (r *SummaryRefresher) Refresh(ctx context.Context) {
	_, period := r.clock.Current()

	summary, err := r.summarizer.Summarize(ctx, period)
	if err != nil {
		r.logger.Warn("Failed to refresh mess summary for %s: %v", period, err)
		return
	}

	r.metrics.SetSummary(summary)
	r.logger.Debug("Mess summary for %s: %d plans, total %s", period, len(summary.Lines), summary.Total.StringFixed(2))
}
