package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/metrics"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/reports"
	"github.com/osa911/hostelhub/internal/repository"
)

// MemberRow is a period record joined with its user and current plan name.
// PlanName is empty when the plan has since been deleted.
type MemberRow struct {
	Record    models.Membership
	UserName  string
	UserEmail string
	PlanName  string
}

// MembershipService runs the mess billing rules against the stores.
// The period is always supplied by the caller, computed once per request.
type MembershipService struct {
	plans       repository.PlanRepository
	memberships repository.MembershipRepository
	users       repository.UserRepository
	metrics     *metrics.Metrics
	logger      *logging.Logger
}

func NewMembershipService(repos *repository.Set, m *metrics.Metrics) *MembershipService {
	return &MembershipService{
		plans:       repos.Plans,
		memberships: repos.Memberships,
		users:       repos.Users,
		metrics:     m,
		logger:      logging.GetLogger(),
	}
}

// Get returns the user's record for period, or the unsaved opted-out default.
func (s *MembershipService) Get(ctx context.Context, userID string, period billing.Period) (*models.Membership, error) {
	rec, err := s.memberships.Find(ctx, userID, string(period))
	if errors.Is(err, repository.ErrNotFound) {
		def := billing.NewRecord(userID, period)
		return &def, nil
	}
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return rec, nil
}

// SetMembership applies the desired opt-in state for (userID, period) and
// persists the fully computed record in one write. Opting in requires planRef to
// name an existing plan, whose current price becomes the billed amount. On any
// error nothing is written.
func (s *MembershipService) SetMembership(ctx context.Context, userID string, period billing.Period, optedIn bool, planRef *string, now time.Time) (*models.Membership, error) {
	var plan *models.Plan
	if optedIn {
		if planRef == nil || strings.TrimSpace(*planRef) == "" {
			return nil, newError(ErrValidation, "plan required")
		}
		p, err := s.plans.Get(ctx, strings.TrimSpace(*planRef))
		if err != nil {
			return nil, storeError(err, "plan not found", "")
		}
		plan = p
	}

	// Every field of the record is recomputed here, so an existing row is
	// overwritten wholesale by the upsert rather than read first.
	rec := billing.NewRecord(userID, period)
	if err := billing.Apply(&rec, optedIn, plan, now); err != nil {
		if errors.Is(err, billing.ErrPlanRequired) {
			return nil, newError(ErrValidation, "plan required")
		}
		return nil, &Error{Kind: ErrValidation, Message: "Invalid membership", Err: err}
	}

	saved, err := s.memberships.Upsert(ctx, &rec)
	if err != nil {
		s.logger.Error("Failed to save membership for user %s in %s: %v", userID, period, err)
		return nil, storeError(err, "", "")
	}

	s.metrics.MembershipWritten(saved.OptedIn)
	s.logger.Debug("Membership %s for user %s in %s: opted_in=%t amount=%s",
		saved.ID, userID, period, saved.OptedIn, saved.Amount.StringFixed(2))
	return saved, nil
}

// Summarize aggregates the opted-in records of period by current plan name.
// It is recomputed from the stores on every call.
func (s *MembershipService) Summarize(ctx context.Context, period billing.Period) (billing.Summary, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return billing.Summary{}, storeError(err, "", "")
	}
	records, err := s.memberships.ListOptedIn(ctx, string(period))
	if err != nil {
		return billing.Summary{}, storeError(err, "", "")
	}
	return billing.Summarize(period, plans, records), nil
}

// ListPeriod returns every record of period with user and plan details.
func (s *MembershipService) ListPeriod(ctx context.Context, period billing.Period) ([]MemberRow, error) {
	records, err := s.memberships.ListByPeriod(ctx, string(period))
	if err != nil {
		return nil, storeError(err, "", "")
	}
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}

	planNames := make(map[string]string, len(plans))
	for _, p := range plans {
		planNames[p.ID] = p.Name
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	rows := make([]MemberRow, 0, len(records))
	for _, rec := range records {
		row := MemberRow{Record: rec}
		if u, ok := byID[rec.UserID]; ok {
			row.UserName, row.UserEmail = u.Name, u.Email
		}
		if rec.PlanID != nil {
			row.PlanName = planNames[*rec.PlanID]
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ExportSummary renders the period's summary and member list as an xlsx workbook.
func (s *MembershipService) ExportSummary(ctx context.Context, period billing.Period) ([]byte, error) {
	summary, err := s.Summarize(ctx, period)
	if err != nil {
		return nil, err
	}
	rows, err := s.ListPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	members := make([]reports.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, reports.Member{
			Name:        r.UserName,
			Email:       r.UserEmail,
			OptedIn:     r.Record.OptedIn,
			Plan:        r.PlanName,
			Amount:      r.Record.Amount,
			LastUpdated: r.Record.LastUpdated,
		})
	}

	data, err := reports.ExportSummary(summary, members)
	if err != nil {
		return nil, &Error{Kind: ErrStore, Message: "Failed to render summary", Err: err}
	}
	return data, nil
}
