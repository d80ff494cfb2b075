package billing

import (
	"github.com/osa911/hostelhub/internal/models"
	"github.com/shopspring/decimal"
)

// Line is one plan's share of a period summary.
type Line struct {
	PlanID      string
	PlanName    string
	Subscribers int
	Subtotal    decimal.Decimal
}

// Summary aggregates opted-in amounts of a period by plan.
type Summary struct {
	Period Period
	Lines  []Line
	Total  decimal.Decimal
}

// PerPlan returns subtotals keyed by plan name.
func (s Summary) PerPlan() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(s.Lines))
	for _, l := range s.Lines {
		out[l.PlanName] = out[l.PlanName].Add(l.Subtotal)
	}
	return out
}

// Summarize folds the records of a period into per-plan subtotals.
//
// Every plan gets a line, in the order given, even with no subscribers.
// Opted-in records are bucketed under their plan's current name with the amount
// frozen at write time. Records pointing at a plan that no longer exists, and
// records of other periods, contribute nothing.
func Summarize(period Period, plans []models.Plan, records []models.Membership) Summary {
	lines := make([]Line, len(plans))
	index := make(map[string]int, len(plans))
	for i, p := range plans {
		lines[i] = Line{PlanID: p.ID, PlanName: p.Name, Subtotal: decimal.Zero}
		index[p.ID] = i
	}

	total := decimal.Zero
	for _, rec := range records {
		if !rec.OptedIn || rec.PlanID == nil || rec.Period != string(period) {
			continue
		}
		i, ok := index[*rec.PlanID]
		if !ok {
			continue
		}
		lines[i].Subscribers++
		lines[i].Subtotal = lines[i].Subtotal.Add(rec.Amount)
		total = total.Add(rec.Amount)
	}

	for i := range lines {
		lines[i].Subtotal = lines[i].Subtotal.Round(2)
	}
	return Summary{Period: period, Lines: lines, Total: total.Round(2)}
}
