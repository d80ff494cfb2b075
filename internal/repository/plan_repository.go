package repository

import (
	"context"

	"github.com/osa911/hostelhub/internal/models"
	"gorm.io/gorm"
)

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new PlanRepository instance
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) List(ctx context.Context) ([]models.Plan, error) {
	var plans []models.Plan
	err := r.db.WithContext(ctx).Order("created_at, name").Find(&plans).Error
	return plans, translateError("list plans", err)
}

func (r *planRepository) Get(ctx context.Context, id string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		return nil, translateError("get plan", err)
	}
	return &plan, nil
}

func (r *planRepository) GetByName(ctx context.Context, name string) (*models.Plan, error) {
	var plan models.Plan
	if err := r.db.WithContext(ctx).First(&plan, "name = ?", name).Error; err != nil {
		return nil, translateError("get plan by name", err)
	}
	return &plan, nil
}

func (r *planRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Plan{}).Count(&n).Error
	return n, translateError("count plans", err)
}

func (r *planRepository) Create(ctx context.Context, plan *models.Plan) error {
	return translateError("create plan", r.db.WithContext(ctx).Create(plan).Error)
}

func (r *planRepository) Update(ctx context.Context, plan *models.Plan) error {
	res := r.db.WithContext(ctx).Model(plan).
		Select("name", "price", "description", "updated_at").
		Updates(plan)
	if res.Error != nil {
		return translateError("update plan", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Plan{}, "id = ?", id)
	if res.Error != nil {
		return translateError("delete plan", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
