package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/metrics"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
	"github.com/osa911/hostelhub/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const period billing.Period = "October 2025"

var now = time.Date(2025, time.October, 10, 9, 30, 0, 0, time.UTC)

type membershipFixture struct {
	repos *repository.Set
	plans *PlanService
	svc   *MembershipService
}

func newMembershipFixture(t *testing.T) *membershipFixture {
	t.Helper()
	repos := memory.NewSet()
	return &membershipFixture{
		repos: repos,
		plans: NewPlanService(repos.Plans),
		svc:   NewMembershipService(repos, metrics.New()),
	}
}

func (f *membershipFixture) plan(t *testing.T, name string, price int64) *models.Plan {
	t.Helper()
	p, err := f.plans.Create(context.Background(), PlanInput{Name: name, Price: decimal.NewFromInt(price)})
	require.NoError(t, err)
	return p
}

func (f *membershipFixture) optIn(t *testing.T, userID string, plan *models.Plan) *models.Membership {
	t.Helper()
	rec, err := f.svc.SetMembership(context.Background(), userID, period, true, &plan.ID, now)
	require.NoError(t, err)
	return rec
}

func TestGetReturnsVirtualDefault(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()

	rec, err := f.svc.Get(ctx, "user-a", period)
	require.NoError(t, err)
	assert.False(t, rec.OptedIn)
	assert.Nil(t, rec.PlanID)
	assert.False(t, rec.Persisted())

	// reading never creates a row
	all, err := f.repos.Memberships.ListByPeriod(ctx, string(period))
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOptOutClearsPlan(t *testing.T) {
	f := newMembershipFixture(t)
	veg := f.plan(t, "Veg", 3000)
	f.optIn(t, "user-a", veg)

	rec, err := f.svc.SetMembership(context.Background(), "user-a", period, false, &veg.ID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, rec.OptedIn)
	assert.Nil(t, rec.PlanID)
	assert.True(t, rec.Amount.IsZero())
	assert.Equal(t, now.Add(time.Hour), rec.LastUpdated)
}

func TestOptInSnapshotsPrice(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	veg := f.plan(t, "Veg", 3000)
	f.optIn(t, "user-a", veg)

	newPrice := decimal.NewFromInt(3200)
	_, err := f.plans.Update(ctx, veg.ID, PlanUpdate{Price: &newPrice})
	require.NoError(t, err)

	rec, err := f.svc.Get(ctx, "user-a", period)
	require.NoError(t, err)
	assert.Equal(t, "3000", rec.Amount.String())

	// re-saving picks up the current price
	again := f.optIn(t, "user-a", veg)
	assert.Equal(t, "3200", again.Amount.String())
}

func TestRepeatedOptInIsIdempotent(t *testing.T) {
	f := newMembershipFixture(t)
	veg := f.plan(t, "Veg", 3000)

	first := f.optIn(t, "user-a", veg)
	second := f.optIn(t, "user-a", veg)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, *first.PlanID, *second.PlanID)
	assert.True(t, first.Amount.Equal(second.Amount))

	all, err := f.repos.Memberships.ListByPeriod(context.Background(), string(period))
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOptInRejections(t *testing.T) {
	missing := "nonexistent-id"
	blank := "  "

	tests := []struct {
		name    string
		planRef *string
		kind    error
		message string
	}{
		{"nil plan", nil, ErrValidation, "plan required"},
		{"blank plan", &blank, ErrValidation, "plan required"},
		{"unknown plan", &missing, ErrNotFound, "plan not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMembershipFixture(t)
			ctx := context.Background()

			_, err := f.svc.SetMembership(ctx, "user-a", period, true, tt.planRef, now)
			require.ErrorIs(t, err, tt.kind)
			assert.Equal(t, tt.message, Message(err, ""))

			_, findErr := f.repos.Memberships.Find(ctx, "user-a", string(period))
			assert.ErrorIs(t, findErr, repository.ErrNotFound, "no record may be written")
		})
	}
}

func TestRejectionLeavesExistingRecord(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	veg := f.plan(t, "Veg", 3000)
	before := f.optIn(t, "user-a", veg)

	missing := "nonexistent-id"
	_, err := f.svc.SetMembership(ctx, "user-a", period, true, &missing, now.Add(time.Hour))
	require.ErrorIs(t, err, ErrNotFound)

	after, err := f.svc.Get(ctx, "user-a", period)
	require.NoError(t, err)
	assert.Equal(t, before.LastUpdated, after.LastUpdated)
	assert.Equal(t, *before.PlanID, *after.PlanID)
}

func TestSummarizeScenario(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	veg := f.plan(t, "Veg", 3000)
	nonVeg := f.plan(t, "NonVeg", 3500)

	f.optIn(t, "A", veg)
	f.optIn(t, "B", veg)
	f.optIn(t, "C", nonVeg)
	_, err := f.svc.SetMembership(ctx, "D", period, false, nil, now)
	require.NoError(t, err)

	s, err := f.svc.Summarize(ctx, period)
	require.NoError(t, err)

	perPlan := s.PerPlan()
	assert.Len(t, perPlan, 2)
	assert.Equal(t, "6000", perPlan["Veg"].String())
	assert.Equal(t, "3500", perPlan["NonVeg"].String())
	assert.Equal(t, "9500", s.Total.String())
}

func TestSummarizeCompleteness(t *testing.T) {
	f := newMembershipFixture(t)
	f.plan(t, "Veg", 3000)
	f.plan(t, "Jain", 2800)

	s, err := f.svc.Summarize(context.Background(), period)
	require.NoError(t, err)
	assert.Contains(t, s.PerPlan(), "Veg")
	assert.Contains(t, s.PerPlan(), "Jain")
	assert.True(t, s.Total.IsZero())
}

func TestSummarizeAfterPlanDeleted(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	veg := f.plan(t, "Veg", 3000)
	snacks := f.plan(t, "Snacks", 500)

	f.optIn(t, "A", veg)
	f.optIn(t, "E", snacks)
	require.NoError(t, f.plans.Delete(ctx, snacks.ID))

	s, err := f.svc.Summarize(ctx, period)
	require.NoError(t, err)
	assert.NotContains(t, s.PerPlan(), "Snacks")
	assert.Equal(t, "3000", s.Total.String())

	// the stale record is still listed, without a plan name
	rows, err := f.svc.ListPeriod(ctx, period)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	names := map[string]string{}
	for _, r := range rows {
		names[r.Record.UserID] = r.PlanName
	}
	assert.Equal(t, "Veg", names["A"])
	assert.Equal(t, "", names["E"])
}

func TestPeriodsAreIndependent(t *testing.T) {
	f := newMembershipFixture(t)
	ctx := context.Background()
	veg := f.plan(t, "Veg", 3000)
	f.optIn(t, "A", veg)

	next, err := f.svc.Get(ctx, "A", "November 2025")
	require.NoError(t, err)
	assert.False(t, next.OptedIn)

	s, err := f.svc.Summarize(ctx, "November 2025")
	require.NoError(t, err)
	assert.True(t, s.Total.IsZero())
}

func TestExportSummary(t *testing.T) {
	f := newMembershipFixture(t)
	veg := f.plan(t, "Veg", 3000)
	f.optIn(t, "A", veg)

	data, err := f.svc.ExportSummary(context.Background(), period)
	require.NoError(t, err)
	// xlsx files are zip archives
	assert.Equal(t, []byte("PK"), data[:2])
}

// Mock MembershipRepository
type mockMembershipRepository struct {
	repository.MembershipRepository
	upsertFunc func(ctx context.Context, rec *models.Membership) (*models.Membership, error)
}

func (m *mockMembershipRepository) Upsert(ctx context.Context, rec *models.Membership) (*models.Membership, error) {
	if m.upsertFunc != nil {
		return m.upsertFunc(ctx, rec)
	}
	return rec, nil
}

func TestSetMembershipStoreFailure(t *testing.T) {
	repos := memory.NewSet()
	plans := NewPlanService(repos.Plans)
	veg, err := plans.Create(context.Background(), PlanInput{Name: "Veg", Price: decimal.NewFromInt(3000)})
	require.NoError(t, err)

	var written *models.Membership
	repos.Memberships = &mockMembershipRepository{
		upsertFunc: func(ctx context.Context, rec *models.Membership) (*models.Membership, error) {
			written = rec
			return nil, errors.New("connection reset")
		},
	}
	svc := NewMembershipService(repos, nil)

	_, err = svc.SetMembership(context.Background(), "A", period, true, &veg.ID, now)
	require.ErrorIs(t, err, ErrStore)
	assert.Equal(t, "Internal storage error", Message(err, ""))

	// the single write carried the fully computed record
	require.NotNil(t, written)
	assert.True(t, written.OptedIn)
	assert.Equal(t, veg.ID, *written.PlanID)
	assert.Equal(t, "3000", written.Amount.String())
	assert.Equal(t, now, written.LastUpdated)
}
