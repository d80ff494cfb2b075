package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/complaint"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

type ComplaintHandler struct {
	complaintService *service.ComplaintService
}

func NewComplaintHandler(complaintService *service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintService: complaintService}
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	var req complaint.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	cm, err := h.complaintService.Create(c.Request.Context(), middleware.CurrentUser(c), req.Issue)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleCreated(c, mapper.ComplaintToResponse(cm))
}

func (h *ComplaintHandler) ListMine(c *gin.Context) {
	cs, err := h.complaintService.ListMine(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ComplaintsToResponses(cs))
}

func (h *ComplaintHandler) List(c *gin.Context) {
	cs, err := h.complaintService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ComplaintsToResponses(cs))
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	var req complaint.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	cm, err := h.complaintService.UpdateStatus(c.Request.Context(), c.Param("id"), models.ComplaintStatus(req.Status))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.ComplaintToResponse(cm))
}
