package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/osa911/hostelhub/internal/api/dto/v1/user"
	"github.com/osa911/hostelhub/internal/api/mapper"
	"github.com/osa911/hostelhub/internal/api/middleware"
	"github.com/osa911/hostelhub/internal/models"
	"github.com/osa911/hostelhub/internal/service"
	"github.com/osa911/hostelhub/internal/utils"
)

type UserHandler struct {
	userService  *service.UserService
	auditService *service.AuditService
}

func NewUserHandler(userService *service.UserService, auditService *service.AuditService) *UserHandler {
	return &UserHandler{userService: userService, auditService: auditService}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.UsersToUserResponses(users))
}

func (h *UserHandler) Me(c *gin.Context) {
	utils.HandleSuccess(c, mapper.UserToUserResponse(middleware.CurrentUser(c)))
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.userService.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.UserToUserResponse(u))
}

func (h *UserHandler) Update(c *gin.Context) {
	var req user.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	u, err := h.userService.Update(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"),
		service.UserUpdate{Name: req.Name, Email: req.Email})
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.HandleSuccess(c, mapper.UserToUserResponse(u))
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAdminAction(service.AuditEventUserDeleted, middleware.CurrentActor(c), "user "+c.Param("id"), nil)
	utils.HandleMessage(c, "User removed")
}

func (h *UserHandler) SetRole(c *gin.Context) {
	var req user.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBind(c, err, "Invalid request body")
		return
	}

	u, err := h.userService.SetRole(c.Request.Context(), c.Param("id"), models.UserRole(req.Role))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	h.auditService.LogAdminAction(service.AuditEventRoleChanged, middleware.CurrentActor(c), "user "+u.ID,
		map[string]string{"role": string(u.Role)})
	utils.HandleSuccess(c, mapper.UserToUserResponse(u))
}
