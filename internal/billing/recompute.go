package billing

import (
	"errors"
	"fmt"
	"time"

	"github.com/osa911/hostelhub/internal/models"
	"github.com/shopspring/decimal"
)

var (
	// ErrPlanRequired is returned when opting in without a plan.
	ErrPlanRequired = errors.New("plan required")
	// ErrInvalidRecord is returned when a record breaks the opt-in invariant.
	ErrInvalidRecord = errors.New("invalid membership record")
)

// NewRecord returns the default state of a user's record for a period:
// opted out, no plan, zero amount. It is not persisted.
func NewRecord(userID string, period Period) models.Membership {
	return models.Membership{
		UserID:  userID,
		Period:  string(period),
		OptedIn: false,
		Amount:  decimal.Zero,
	}
}

// Apply recomputes rec for the desired opt-in state. When opting in, plan is the
// resolved catalog entry and its price is snapshotted into the amount. On error
// rec is left untouched.
func Apply(rec *models.Membership, optedIn bool, plan *models.Plan, now time.Time) error {
	if !optedIn {
		rec.OptedIn = false
		rec.PlanID = nil
		rec.Amount = decimal.Zero
		rec.LastUpdated = now
		return nil
	}
	if plan == nil {
		return ErrPlanRequired
	}
	if plan.Price.IsNegative() {
		return fmt.Errorf("%w: plan %q has negative price", ErrInvalidRecord, plan.Name)
	}

	planID := plan.ID
	rec.OptedIn = true
	rec.PlanID = &planID
	rec.Amount = plan.Price
	rec.LastUpdated = now
	return nil
}

// Validate checks the opt-in invariant:
// opted out means no plan and zero amount, opted in means a plan is set.
func Validate(rec models.Membership) error {
	if rec.OptedIn {
		if rec.PlanID == nil || *rec.PlanID == "" {
			return fmt.Errorf("%w: opted in without a plan", ErrInvalidRecord)
		}
		if rec.Amount.IsNegative() {
			return fmt.Errorf("%w: negative amount", ErrInvalidRecord)
		}
		return nil
	}
	if rec.PlanID != nil || !rec.Amount.IsZero() {
		return fmt.Errorf("%w: opted out with a plan or amount", ErrInvalidRecord)
	}
	return nil
}
