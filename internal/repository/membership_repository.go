package repository

import (
	"context"

	"github.com/osa911/hostelhub/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type membershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new MembershipRepository instance
func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) Find(ctx context.Context, userID, period string) (*models.Membership, error) {
	var rec models.Membership
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		First(&rec).Error
	if err != nil {
		return nil, translateError("find membership", err)
	}
	return &rec, nil
}

// Upsert writes the whole record with a single INSERT ... ON CONFLICT statement,
// so concurrent writers for the same key never interleave a read and a write.
func (r *membershipRepository) Upsert(ctx context.Context, rec *models.Membership) (*models.Membership, error) {
	out := *rec
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "period"}},
				DoUpdates: clause.AssignmentColumns([]string{"opted_in", "plan_id", "amount", "last_updated"}),
			},
			clause.Returning{},
		).
		Create(&out).Error
	if err != nil {
		return nil, translateError("upsert membership", err)
	}
	return &out, nil
}

func (r *membershipRepository) ListOptedIn(ctx context.Context, period string) ([]models.Membership, error) {
	var recs []models.Membership
	err := r.db.WithContext(ctx).
		Where("period = ? AND opted_in", period).
		Order("last_updated").
		Find(&recs).Error
	return recs, translateError("list opted-in memberships", err)
}

func (r *membershipRepository) ListByPeriod(ctx context.Context, period string) ([]models.Membership, error) {
	var recs []models.Membership
	err := r.db.WithContext(ctx).
		Where("period = ?", period).
		Order("last_updated").
		Find(&recs).Error
	return recs, translateError("list memberships", err)
}
