package repository

import (
	"context"

	"github.com/osa911/hostelhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new ComplaintRepository instance
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

func (r *complaintRepository) Create(ctx context.Context, c *models.Complaint) error {
	return translateError("create complaint", r.db.WithContext(ctx).Create(c).Error)
}

func (r *complaintRepository) Get(ctx context.Context, id string) (*models.Complaint, error) {
	var c models.Complaint
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, translateError("get complaint", err)
	}
	return &c, nil
}

func (r *complaintRepository) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	var c models.Complaint
	res := r.db.WithContext(ctx).Model(&c).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, translateError("update complaint", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *complaintRepository) ListByUser(ctx context.Context, userID string) ([]models.Complaint, error) {
	var out []models.Complaint
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error
	return out, translateError("list complaints", err)
}

func (r *complaintRepository) List(ctx context.Context) ([]models.Complaint, error) {
	var out []models.Complaint
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, translateError("list complaints", err)
}
