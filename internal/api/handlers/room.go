package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/room"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

type RoomHandler struct {
	roomService  *service.RoomService
	auditService *service.AuditService
}

func NewRoomHandler(roomService *service.RoomService, auditService *service.AuditService) *RoomHandler {
	return &RoomHandler{roomService: roomService, auditService: auditService}
}

func (h *RoomHandler) Create(c *gin.Context) {
	var req room.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	r, err := h.roomService.Create(c.Request.Context(), req.RoomNumber, models.RoomType(req.RoomType))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, mapper.RoomViewToResponse(service.RoomView{
		Room:          *r,
		AvailableBeds: r.RoomType.Capacity(),
	}))
}

func (h *RoomHandler) List(c *gin.Context) {
	views, err := h.roomService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.RoomViewsToResponses(views))
}

func (h *RoomHandler) Assign(c *gin.Context) {
	var req room.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	view, err := h.roomService.Assign(c.Request.Context(), c.Param("id"), req.StudentID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAdminAction(service.AuditEventRoomAssigned, middleware.CurrentActor(c), "user "+req.StudentID,
		map[string]string{"room": view.Room.RoomNumber})

	resp := room.AssignResponse{
		Message: "Student assigned to room",
		Room:    mapper.RoomViewToResponse(*view),
	}
	for i := range view.Members {
		if view.Members[i].ID == req.StudentID {
			resp.Student = mapper.UserToUserResponse(&view.Members[i])
		}
	}
	utils.HandleSuccess(c, resp)
}
