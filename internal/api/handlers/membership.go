package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/membership"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/billing"
	"github.com/osa911/hostelhub/internal/reports"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

// MembershipHandler serves the mess membership of the caller and the admin
// billing views. The period always comes from the request clock unless an
// admin view names one explicitly.
type MembershipHandler struct {
	membershipService *service.MembershipService
}

func NewMembershipHandler(membershipService *service.MembershipService) *MembershipHandler {
	return &MembershipHandler{membershipService: membershipService}
}

func (h *MembershipHandler) GetMine(c *gin.Context) {
	_, period := middleware.RequestTime(c)

	rec, err := h.membershipService.Get(c.Request.Context(), middleware.CurrentUser(c).ID, period)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.MembershipToResponse(rec))
}

func (h *MembershipHandler) SetMine(c *gin.Context) {
	var req membership.SetMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	now, period := middleware.RequestTime(c)
	rec, err := h.membershipService.SetMembership(c.Request.Context(),
		middleware.CurrentUser(c).ID, period, *req.OptedIn, req.PlanRef, now)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.MembershipToResponse(rec))
}

func (h *MembershipHandler) Summary(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	summary, err := h.membershipService.Summarize(c.Request.Context(), period)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.SummaryToResponse(summary))
}

func (h *MembershipHandler) ListPeriod(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	rows, err := h.membershipService.ListPeriod(c.Request.Context(), period)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.MemberRowsToResponses(rows))
}

// ExportSummary sends the period's summary as an xlsx download.
func (h *MembershipHandler) ExportSummary(c *gin.Context) {
	period, ok := queryPeriod(c)
	if !ok {
		return
	}

	data, err := h.membershipService.ExportSummary(c.Request.Context(), period)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.HandleAttachment(c, reports.FileName(period), reports.ContentType, data)
}

// queryPeriod reads ?period=, defaulting to the request's current period.
func queryPeriod(c *gin.Context) (billing.Period, bool) {
	var q membership.PeriodQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		abortBind(c, err, "Invalid period")
		return "", false
	}
	if q.Period == "" {
		_, period := middleware.RequestTime(c)
		return period, true
	}

	period, err := billing.ParsePeriod(q.Period)
	if err != nil {
		abortBind(c, err, "Period must look like \"October 2025\"")
		return "", false
	}
	return period, true
}
