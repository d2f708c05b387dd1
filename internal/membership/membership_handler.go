package membership

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
	l := zap.L().Named("membership.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("membership.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	return c.GetString("user_id_validated")
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("membership request failed", append(fields, zap.Error(err))...)
	} else {
		h.logger.Warn("membership request failed", append(fields, zap.String("message", httpErr.Message))...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetMe(c *gin.Context) {
	companyID := c.Param("companyId")
	actorID := getActorID(c)

	resp, err := h.service.GetMe(c.Request.Context(), companyID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) List(c *gin.Context) {
	companyID := c.Param("companyId")
	actorID := getActorID(c)
	h.logger.Debug("http list memberships", zap.String("company_id", companyID), zap.String("actor_id", actorID))

	resp, err := h.service.List(c.Request.Context(), companyID, actorID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := getActorID(c)

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.UpdateRole(c.Request.Context(), companyID, membershipID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Remove(c *gin.Context) {
	companyID := c.Param("companyId")
	membershipID := c.Param("membershipId")
	actorID := getActorID(c)

	if err := h.service.Remove(c.Request.Context(), companyID, membershipID, actorID); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.NoContent(c)
}
