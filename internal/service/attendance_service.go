package service

import (
	"context"
	"time"

	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
)

const DayLayout = "2006-01-02"

type AttendanceService struct {
	attendance repository.AttendanceRepository
}

func NewAttendanceService(attendance repository.AttendanceRepository) *AttendanceService {
	return &AttendanceService{attendance: attendance}
}

// Mark records the user present for the calendar day of now, taken in now's
// location. A second mark on the same day is a conflict.
func (s *AttendanceService) Mark(ctx context.Context, userID string, now time.Time) (*models.Attendance, error) {
	a := &models.Attendance{
		UserID:   userID,
		Day:      models.DayOf(now),
		Status:   models.AttendancePresent,
		MarkedAt: now,
	}
	if err := s.attendance.Create(ctx, a); err != nil {
		return nil, storeError(err, "", "Attendance already marked")
	}
	return a, nil
}

func (s *AttendanceService) ListMine(ctx context.Context, userID string) ([]models.Attendance, error) {
	out, err := s.attendance.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return out, nil
}

// List returns marks between the optional YYYY-MM-DD bounds, inclusive.
func (s *AttendanceService) List(ctx context.Context, from, to string) ([]models.Attendance, error) {
	var fromDay, toDay time.Time
	var err error
	if from != "" {
		if fromDay, err = time.Parse(DayLayout, from); err != nil {
			return nil, newError(ErrValidation, "from must be a date like 2025-10-01")
		}
	}
	if to != "" {
		if toDay, err = time.Parse(DayLayout, to); err != nil {
			return nil, newError(ErrValidation, "to must be a date like 2025-10-31")
		}
	}
	if !fromDay.IsZero() && !toDay.IsZero() && toDay.Before(fromDay) {
		return nil, newError(ErrValidation, "to must not be before from")
	}

	out, err := s.attendance.List(ctx, fromDay, toDay)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return out, nil
}
