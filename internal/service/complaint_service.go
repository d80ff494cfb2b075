package service

import (
	"context"
	"strings"

	"github.com/osa911/hostelhub/internal/logging"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/repository"
)

// ComplaintNotifier is told about every newly filed complaint.
type ComplaintNotifier interface {
	ComplaintFiled(ctx context.Context, user *models.User, c *models.Complaint) error
}

type ComplaintService struct {
	complaints repository.ComplaintRepository
	notifier   ComplaintNotifier
	logger     *logging.Logger
}

// NewComplaintService creates the complaint service. notifier may be nil.
func NewComplaintService(complaints repository.ComplaintRepository, notifier ComplaintNotifier) *ComplaintService {
	return &ComplaintService{complaints: complaints, notifier: notifier, logger: logging.GetLogger()}
}

// Create files a complaint against the user's own room.
func (s *ComplaintService) Create(ctx context.Context, user *models.User, issue string) (*models.Complaint, error) {
	if user.RoomID == nil {
		return nil, newError(ErrValidation, "You must be assigned to a room to create a complaint.")
	}
	issue = strings.TrimSpace(issue)
	if issue == "" {
		return nil, newError(ErrValidation, "Issue is required")
	}

	c := &models.Complaint{
		UserID: user.ID,
		RoomID: *user.RoomID,
		Issue:  issue,
		Status: models.ComplaintPending,
	}
	if err := s.complaints.Create(ctx, c); err != nil {
		return nil, storeError(err, "", "")
	}

	// The complaint is already filed; a failed notification is only logged.
	if s.notifier != nil {
		if err := s.notifier.ComplaintFiled(ctx, user, c); err != nil {
			s.logger.Warn("Failed to send notification for complaint %s: %v", c.ID, err)
		}
	}
	return c, nil
}

func (s *ComplaintService) ListMine(ctx context.Context, userID string) ([]models.Complaint, error) {
	out, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return out, nil
}

func (s *ComplaintService) List(ctx context.Context) ([]models.Complaint, error) {
	out, err := s.complaints.List(ctx)
	if err != nil {
		return nil, storeError(err, "", "")
	}
	return out, nil
}

func (s *ComplaintService) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (*models.Complaint, error) {
	if !status.Valid() {
		return nil, newError(ErrValidation, "Status must be Pending, In Progress or Resolved")
	}
	c, err := s.complaints.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, storeError(err, "Complaint not found", "")
	}
	return c, nil
}
