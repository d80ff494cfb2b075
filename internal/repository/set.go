package repository

import "gorm.io/gorm"

// NewGormSet wires every repository against one gorm handle.
func NewGormSet(db *gorm.DB) *Set {
	return &Set{
		Plans:       NewPlanRepository(db),
		Memberships: NewMembershipRepository(db),
		Users:       NewUserRepository(db),
		Rooms:       NewRoomRepository(db),
		Complaints:  NewComplaintRepository(db),
		Attendance:  NewAttendanceRepository(db),
	}
}
