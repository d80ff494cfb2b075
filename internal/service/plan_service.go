package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
	"github.com/shopspring/decimal"
)

// PlanInput is a create request for a catalog entry.
type PlanInput struct {
	Name        string
	Price       decimal.Decimal
	Description string
}

// PlanUpdate is a partial update; nil fields are left unchanged.
type PlanUpdate struct {
	Name        *string
	Price       *decimal.Decimal
	Description *string
}

type PlanService struct {
	plans  repository.PlanRepository
	logger *logging.Logger
}

func NewPlanService(plans repository.PlanRepository) *PlanService {
	return &PlanService{plans: plans, logger: logging.GetLogger()}
}

// Bounds of the plans table: name VARCHAR(100), price NUMERIC(12,2).
const maxPlanNameLength = 100

var maxPlanPrice = decimal.New(1, 10)

func validatePlan(name string, price decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return newError(ErrValidation, "Plan name is required")
	}
	if utf8.RuneCountInString(name) > maxPlanNameLength {
		return newError(ErrValidation, "Plan name must be at most 100 characters")
	}
	if price.IsNegative() {
		return newError(ErrValidation, "Price must not be negative")
	}
	if price.GreaterThanOrEqual(maxPlanPrice) {
		return newError(ErrValidation, "Price must be less than 10000000000")
	}
	return nil
}

// List returns the whole catalog.
func (s *PlanService) List(ctx context.Context) ([]models.Plan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return plans, nil
}

func (s *PlanService) Get(ctx context.Context, id string) (*models.Plan, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "Plan not found", "")
	}
	return plan, nil
}

// Create adds a plan. Names are unique and case-sensitive.
func (s *PlanService) Create(ctx context.Context, in PlanInput) (*models.Plan, error) {
	name := strings.TrimSpace(in.Name)
	price := in.Price.Round(2)
	if err := validatePlan(name, price); err != nil {
		return nil, err
	}

	plan := &models.Plan{Name: name, Price: price, Description: in.Description}
	if err := s.plans.Create(ctx, plan); err != nil {
		return nil, storeError(err, "", "Meal plan with this name already exists")
	}
	s.logger.Info("Created meal plan %s (%s) at %s", plan.Name, plan.ID, plan.Price.StringFixed(2))
	return plan, nil
}

// Update applies a partial update. Existing memberships keep the amount they were
// billed; only later opt-ins see a new price.
func (s *PlanService) Update(ctx context.Context, id string, in PlanUpdate) (*models.Plan, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return nil, storeError(err, "Plan not found", "")
	}

	if in.Name != nil {
		plan.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		plan.Price = in.Price.Round(2)
	}
	if in.Description != nil {
		plan.Description = *in.Description
	}
	if err := validatePlan(plan.Name, plan.Price); err != nil {
		return nil, err
	}

	if err := s.plans.Update(ctx, plan); err != nil {
		return nil, storeError(err, "Plan not found", "Meal plan with this name already exists")
	}
	return plan, nil
}

// Delete removes a plan unconditionally. Memberships that reference it are left
// in place and drop out of period summaries.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return storeError(err, "Plan not found", "")
	}
	s.logger.Info("Deleted meal plan %s", id)
	return nil
}

// SeedDefaultPlans inserts default plans if the catalog is empty.
func (s *PlanService) SeedDefaultPlans(ctx context.Context) (int, error) {
	n, err := s.plans.Count(ctx)
	if err != nil {
		return 0, storeError(err, "", "")
	}
	if n > 0 {
		s.logger.Info("Catalog already has %d plans, skipping seed", n)
		return 0, nil
	}

	defaults := []PlanInput{
		{Name: "Veg", Price: decimal.NewFromInt(3000), Description: "Vegetarian meals, three times a day"},
		{Name: "Non-Veg", Price: decimal.NewFromInt(3500), Description: "Includes non-vegetarian dishes on alternate days"},
	}

	seeded := 0
	for _, p := range defaults {
		if _, err := s.Create(ctx, p); err != nil {
			s.logger.Warn("Failed seeding plan %s: %v", p.Name, err)
			return seeded, err
		}
		seeded++
		s.logger.Info("Seeded plan: %s", p.Name)
	}
	return seeded, nil
}
