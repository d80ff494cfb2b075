package membership

import (
	"time"

	"github.com/shopspring/decimal"
)

// SetMembershipRequest is the desired opt-in state for the current period.
// PlanRef is required when OptedIn is true and ignored otherwise.
type SetMembershipRequest struct {
	OptedIn *bool   `json:"optedIn" binding:"required"`
	PlanRef *string `json:"planRef"`
}

// MembershipResponse is a user's record for one period. ID and LastUpdated are
// null for the unsaved default.
type MembershipResponse struct {
	ID          *string         `json:"id"`
	UserID      string          `json:"userId"`
	Period      string          `json:"period"`
	OptedIn     bool            `json:"optedIn"`
	PlanRef     *string         `json:"planRef"`
	Amount      decimal.Decimal `json:"amount"`
	LastUpdated *time.Time      `json:"lastUpdated"`
}

type SummaryLine struct {
	PlanID      string          `json:"planId"`
	PlanName    string          `json:"planName"`
	Subscribers int             `json:"subscribers"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SummaryResponse aggregates the opted-in amounts of a period
type SummaryResponse struct {
	Period  string                     `json:"period"`
	PerPlan map[string]decimal.Decimal `json:"perPlan"`
	Lines   []SummaryLine              `json:"lines"`
	Total   decimal.Decimal            `json:"total"`
}

// MemberResponse is one row of the admin period listing
type MemberResponse struct {
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	OptedIn     bool            `json:"optedIn"`
	PlanRef     *string         `json:"planRef"`
	PlanName    string          `json:"planName"`
	Amount      decimal.Decimal `json:"amount"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

type PeriodQuery struct {
	Period string `form:"period" binding:"omitempty,period"`
}
