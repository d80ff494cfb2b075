package repository

import (
	"context"
	"time"

	"github.com/osa911/hostelhub/internal/models"
	"gorm.io/gorm"
)

type attendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new AttendanceRepository instance
func NewAttendanceRepository(db *gorm.DB) AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, a *models.Attendance) error {
	return translateError("mark attendance", r.db.WithContext(ctx).Create(a).Error)
}

func (r *attendanceRepository) ListByUser(ctx context.Context, userID string) ([]models.Attendance, error) {
	var out []models.Attendance
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("day DESC").Find(&out).Error
	return out, translateError("list attendance", err)
}

func (r *attendanceRepository) List(ctx context.Context, from, to time.Time) ([]models.Attendance, error) {
	q := r.db.WithContext(ctx).Model(&models.Attendance{})
	if !from.IsZero() {
		q = q.Where("day >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("day <= ?", to)
	}
	var out []models.Attendance
	err := q.Order("day DESC, user_id").Find(&out).Error
	return out, translateError("list attendance", err)
}
