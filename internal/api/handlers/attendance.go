package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/attendance"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceService: attendanceService}
}

// Mark records the caller as present for today in the hostel's timezone.
func (h *AttendanceHandler) Mark(c *gin.Context) {
	now, _ := middleware.RequestTime(c)

	a, err := h.attendanceService.Mark(c.Request.Context(), middleware.CurrentUser(c).ID, now)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, mapper.AttendanceToResponse(a))
}

func (h *AttendanceHandler) ListMine(c *gin.Context) {
	as, err := h.attendanceService.ListMine(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.AttendanceToResponses(as))
}

func (h *AttendanceHandler) List(c *gin.Context) {
	var q attendance.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err, "Invalid date range")
		return
	}

	as, err := h.attendanceService.List(c.Request.Context(), q.From, q.To)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.AttendanceToResponses(as))
}
