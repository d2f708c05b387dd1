package leavebalance

import (
	"net/http"

	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leavebalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetBalances(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := c.GetString("user_id_validated")

	resp, err := h.service.GetBalances(c.Request.Context(), companyID, membershipID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetHistory(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := c.GetString("user_id_validated")

	resp, err := h.service.GetHistory(c.Request.Context(), companyID, membershipID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateLeaveBalances(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := c.GetString("user_id_validated")
	h.logger.Debug("http update leave balance",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
		zap.String("actor_id", actorID),
	)

	var req UpdateBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateLeaveBalances(c.Request.Context(), companyID, membershipID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) AllocateAnnualLeave(c *gin.Context) {
	companyID := c.Param("companyId")
	actorID := c.GetString("user_id_validated")

	var req AllocateAnnualLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.AllocateAnnualLeave(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
