package repository

import (
	"context"
	"time"

	"github.com/osa911/hostelhub/internal/models"
)

// PlanRepository defines the interface for meal-plan catalog operations
type PlanRepository interface {
	// List returns all plans ordered by creation time
	List(ctx context.Context) ([]models.Plan, error)
	// Get returns a plan by ID
	Get(ctx context.Context, id string) (*models.Plan, error)
	// GetByName returns a plan by its exact name
	GetByName(ctx context.Context, name string) (*models.Plan, error)
	// Count returns the number of plans in the catalog
	Count(ctx context.Context) (int64, error)
	// Create inserts a new plan
	Create(ctx context.Context, plan *models.Plan) error
	// Update saves every field of an existing plan
	Update(ctx context.Context, plan *models.Plan) error
	// Delete removes a plan regardless of memberships referencing it
	Delete(ctx context.Context, id string) error
}

// MembershipRepository defines the interface for per-period membership records
type MembershipRepository interface {
	// Find returns the record for a user and period
	Find(ctx context.Context, userID, period string) (*models.Membership, error)
	// Upsert inserts or replaces the record keyed by (user, period) in one atomic write
	Upsert(ctx context.Context, rec *models.Membership) (*models.Membership, error)
	// ListOptedIn returns the opted-in records of a period
	ListOptedIn(ctx context.Context, period string) ([]models.Membership, error)
	// ListByPeriod returns every record of a period
	ListByPeriod(ctx context.Context, period string) ([]models.Membership, error)
}

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Get(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
	// CountByRole returns the number of users holding role
	CountByRole(ctx context.Context, role models.UserRole) (int64, error)
}

// AssignCheck decides whether student may move into room given its current occupancy.
type AssignCheck func(room *models.Room, occupants int, student *models.User) error

// RoomRepository defines the interface for room operations
type RoomRepository interface {
	Create(ctx context.Context, room *models.Room) error
	Get(ctx context.Context, id string) (*models.Room, error)
	List(ctx context.Context) ([]models.Room, error)
	// Assign sets the student's room after check passes, holding a lock on the room
	Assign(ctx context.Context, roomID, userID string, check AssignCheck) error
}

// ComplaintRepository defines the interface for complaint operations
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) error
	Get(ctx context.Context, id string) (*models.Complaint, error)
	UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error)
	ListByUser(ctx context.Context, userID string) ([]models.Complaint, error)
	List(ctx context.Context) ([]models.Complaint, error)
}

// AttendanceRepository defines the interface for attendance operations
type AttendanceRepository interface {
	// Create inserts a mark, returning ErrDuplicate if the user already has one for that day
	Create(ctx context.Context, a *models.Attendance) error
	ListByUser(ctx context.Context, userID string) ([]models.Attendance, error)
	// List returns marks with Day in [from, to]; zero bounds are open
	List(ctx context.Context, from, to time.Time) ([]models.Attendance, error)
}

// Set bundles every repository the services need.
type Set struct {
	Plans       PlanRepository
	Memberships MembershipRepository
	Users       UserRepository
	Rooms       RoomRepository
	Complaints  ComplaintRepository
	Attendance  AttendanceRepository
}
