package billing

import (
	"testing"

	"github.com/osa911/hostelhub/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const october Period = "October 2025"

func optedIn(user, planID string, amount int64) models.Membership {
	return models.Membership{
		UserID:  user,
		Period:  string(october),
		OptedIn: true,
		PlanID:  &planID,
		Amount:  decimal.NewFromInt(amount),
	}
}

func TestSummarizeScenario(t *testing.T) {
	plans := []models.Plan{
		{ID: "veg", Name: "Veg", Price: decimal.NewFromInt(3000)},
		{ID: "nonveg", Name: "NonVeg", Price: decimal.NewFromInt(3500)},
	}
	records := []models.Membership{
		optedIn("A", "veg", 3000),
		optedIn("B", "veg", 3000),
		optedIn("C", "nonveg", 3500),
		NewRecord("D", october),
	}

	s := Summarize(october, plans, records)

	assert.Equal(t, october, s.Period)
	assert.Equal(t, "9500", s.Total.String())
	perPlan := s.PerPlan()
	require.Len(t, perPlan, 2)
	assert.Equal(t, "6000", perPlan["Veg"].String())
	assert.Equal(t, "3500", perPlan["NonVeg"].String())

	require.Len(t, s.Lines, 2)
	assert.Equal(t, "Veg", s.Lines[0].PlanName)
	assert.Equal(t, 2, s.Lines[0].Subscribers)
	assert.Equal(t, "NonVeg", s.Lines[1].PlanName)
	assert.Equal(t, 1, s.Lines[1].Subscribers)
}

func TestSummarizeIncludesUnusedPlans(t *testing.T) {
	plans := []models.Plan{
		{ID: "veg", Name: "Veg", Price: decimal.NewFromInt(3000)},
		{ID: "jain", Name: "Jain", Price: decimal.NewFromInt(2800)},
	}

	s := Summarize(october, plans, nil)

	perPlan := s.PerPlan()
	require.Contains(t, perPlan, "Veg")
	require.Contains(t, perPlan, "Jain")
	assert.True(t, perPlan["Jain"].IsZero())
	assert.True(t, s.Total.IsZero())
	assert.Equal(t, 0, s.Lines[1].Subscribers)
}

func TestSummarizeSkipsDeletedPlan(t *testing.T) {
	// Snacks was deleted after E opted in
	plans := []models.Plan{{ID: "veg", Name: "Veg", Price: decimal.NewFromInt(3000)}}
	records := []models.Membership{
		optedIn("A", "veg", 3000),
		optedIn("E", "snacks", 500),
	}

	s := Summarize(october, plans, records)

	assert.NotContains(t, s.PerPlan(), "Snacks")
	assert.Equal(t, "3000", s.Total.String())
}

func TestSummarizeUsesFrozenAmountAndCurrentName(t *testing.T) {
	// Plan renamed and repriced after opt-in
	plans := []models.Plan{{ID: "veg", Name: "Veg Deluxe", Price: decimal.NewFromInt(4000)}}
	records := []models.Membership{optedIn("A", "veg", 3000)}

	s := Summarize(october, plans, records)

	perPlan := s.PerPlan()
	assert.NotContains(t, perPlan, "Veg")
	assert.Equal(t, "3000", perPlan["Veg Deluxe"].String())
	assert.Equal(t, "3000", s.Total.String())
}

func TestSummarizeIgnoresOtherPeriods(t *testing.T) {
	plans := []models.Plan{{ID: "veg", Name: "Veg", Price: decimal.NewFromInt(3000)}}
	other := optedIn("A", "veg", 3000)
	other.Period = "September 2025"

	s := Summarize(october, plans, []models.Membership{other})
	assert.True(t, s.Total.IsZero())
}

func TestSummarizeRoundsToCents(t *testing.T) {
	plans := []models.Plan{{ID: "p", Name: "P", Price: decimal.RequireFromString("0.1")}}
	records := []models.Membership{
		optedIn("A", "p", 0),
		optedIn("B", "p", 0),
		optedIn("C", "p", 0),
	}
	for i := range records {
		records[i].Amount = decimal.RequireFromString("33.335")
	}

	s := Summarize(october, plans, records)
	assert.Equal(t, "100.01", s.Total.StringFixed(2))
	assert.Equal(t, "100.01", s.Lines[0].Subtotal.StringFixed(2))
}
