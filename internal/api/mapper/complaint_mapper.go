package mapper

import (
	"github.com/osa911/hostelhub/internal/api/dto/v1/attendance"
	"github.com/osa911/hostelhub/internal/api/dto/v1/complaint"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
)

func ComplaintToResponse(c *models.Complaint) complaint.ComplaintResponse {
	return complaint.ComplaintResponse{
		ID:        c.ID,
		UserID:    c.UserID,
		RoomID:    c.RoomID,
		Issue:     c.Issue,
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt,
	}
}

func ComplaintsToResponses(cs []models.Complaint) []complaint.ComplaintResponse {
	result := make([]complaint.ComplaintResponse, len(cs))
	for i := range cs {
		result[i] = ComplaintToResponse(&cs[i])
	}
	return result
}

func AttendanceToResponse(a *models.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:       a.ID,
		UserID:   a.UserID,
		Date:     a.Day.Format(service.DayLayout),
		Status:   string(a.Status),
		MarkedAt: a.MarkedAt,
	}
}

func AttendanceToResponses(as []models.Attendance) []attendance.AttendanceResponse {
	result := make([]attendance.AttendanceResponse, len(as))
	for i := range as {
		result[i] = AttendanceToResponse(&as[i])
	}
	return result
}
