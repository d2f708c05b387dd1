package leave

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("leave request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Warn("leave request failed", fields...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetLeaves(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := c.GetString("user_id_validated")

	resp, err := h.service.GetLeavesForMembership(c.Request.Context(), companyID, membershipID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetLeave(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	leaveID := c.Param("leaveId")
	actorID := c.GetString("user_id_validated")

	resp, err := h.service.GetLeave(c.Request.Context(), companyID, membershipID, leaveID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) CreateLeave(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := c.GetString("user_id_validated")
	h.logger.Debug("http create leave",
		zap.String("company_id", companyID),
		zap.String("membership_id", membershipID),
		zap.String("actor_id", actorID),
	)

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.CreateLeave(c.Request.Context(), companyID, membershipID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) UpdateLeave(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	leaveID := c.Param("leaveId")
	actorID := c.GetString("user_id_validated")

	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateLeave(c.Request.Context(), companyID, membershipID, leaveID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DeleteLeave(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	leaveID := c.Param("leaveId")
	actorID := c.GetString("user_id_validated")

	if err := h.service.DeleteLeave(c.Request.Context(), companyID, membershipID, leaveID, actorID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}

func (h *Handler) ReviewLeave(c *gin.Context) {
	companyID := c.Param("companyId")
	leaveID := c.Param("leaveId")
	actorID := c.GetString("user_id_validated")
	h.logger.Debug("http review leave",
		zap.String("company_id", companyID),
		zap.String("leave_id", leaveID),
		zap.String("actor_id", actorID),
	)

	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.ReviewLeave(c.Request.Context(), companyID, leaveID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetCompanyLeaves(c *gin.Context) {
	companyID := c.Param("companyId")
	actorID := c.GetString("user_id_validated")

	var filter CompanyLeavesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GetCompanyLeaves(c.Request.Context(), companyID, actorID, filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.ParsePage(c, 50, 200)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}
