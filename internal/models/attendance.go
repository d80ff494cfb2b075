package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceAbsent  AttendanceStatus = "Absent"
)

// Attendance is a single day's mark for a user. Day holds the calendar
// date at midnight UTC; (UserID, Day) is unique.
type Attendance struct {
	ID       string           `gorm:"primaryKey;type:uuid"`
	UserID   string           `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_day"`
	Day      time.Time        `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_day"`
	Status   AttendanceStatus `gorm:"type:varchar(10);not null;default:'Present'"`
	MarkedAt time.Time        `gorm:"not null"`
}

func (a *Attendance) TableName() string {
	return "attendance"
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// DayOf truncates t to its calendar date in t's own location.
func DayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
