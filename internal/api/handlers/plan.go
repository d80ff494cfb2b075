package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/plan"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

type PlanHandler struct {
	planService  *service.PlanService
	auditService *service.AuditService
}

func NewPlanHandler(planService *service.PlanService, auditService *service.AuditService) *PlanHandler {
	return &PlanHandler{planService: planService, auditService: auditService}
}

func (h *PlanHandler) List(c *gin.Context) {
	plans, err := h.planService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.PlansToResponses(plans))
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req plan.CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	p, err := h.planService.Create(c.Request.Context(), mapper.CreatePlanRequestToInput(&req))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAdminAction(service.AuditEventPlanCreated, middleware.CurrentActor(c), "plan "+p.ID, planDetails(p))
	utils.HandleCreated(c, mapper.PlanToResponse(p))
}

func (h *PlanHandler) Update(c *gin.Context) {
	var req plan.UpdatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	p, err := h.planService.Update(c.Request.Context(), c.Param("id"), mapper.UpdatePlanRequestToUpdate(&req))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAdminAction(service.AuditEventPlanUpdated, middleware.CurrentActor(c), "plan "+p.ID, planDetails(p))
	utils.HandleSuccess(c, mapper.PlanToResponse(p))
}

// Delete removes a plan. Records that chose it keep their frozen amount but
// drop out of the summary.
func (h *PlanHandler) Delete(c *gin.Context) {
	if err := h.planService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAdminAction(service.AuditEventPlanDeleted, middleware.CurrentActor(c), "plan "+c.Param("id"), nil)
	utils.HandleMessage(c, "Plan deleted")
}

func planDetails(p *models.Plan) map[string]string {
	return map[string]string{"name": p.Name, "price": p.Price.StringFixed(2)}
}
