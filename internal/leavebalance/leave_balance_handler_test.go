package leavebalance_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leavebalance"
	leavebalanceerrors "go-leave/internal/leavebalance/errors"
	leavebalanceMock "go-leave/internal/leavebalance/mock"
	membershiperrors "go-leave/internal/membership/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func setupHandlerTest(t *testing.T) (*gin.Engine, *leavebalanceMock.MockService, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	svc := leavebalanceMock.NewMockService(ctrl)
	h := leavebalance.NewHandler(svc)
	actorID := uuid.New().String()

	r := gin.New()
	company := r.Group("/companies/:companyId", func(c *gin.Context) {
		c.Set("user_id_validated", actorID)
		c.Next()
	})
	company.GET("/memberships/:membershipId/leave-balances", h.GetBalances)
	company.GET("/memberships/:membershipId/leave-balance-history", h.GetHistory)
	company.PUT("/memberships/:membershipId/leave-balances", h.UpdateLeaveBalances)
	company.POST("/leave-balances/annual-allocation", h.AllocateAnnualLeave)

	return r, svc, actorID
}

func perform(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env apiEnvelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestLeaveBalanceHandler_GetBalances(t *testing.T) {
	companyID := uuid.New().String()
	membershipID := uuid.New().String()
	path := "/companies/" + companyID + "/memberships/" + membershipID + "/leave-balances"

	t.Run("success", func(t *testing.T) {
		r, svc, actorID := setupHandlerTest(t)
		svc.EXPECT().
			GetBalances(gomock.Any(), companyID, membershipID, actorID).
			Return([]leavebalance.BalanceResponse{{LeaveType: leavebalance.TypePaid, Balance: 25, Used: 3, Remaining: 22, Year: 2024}}, nil)

		w, env := perform(r, http.MethodGet, path, "")

		assert.Equal(t, http.StatusOK, w.Code)
		var got []leavebalance.BalanceResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, float64(22), got[0].Remaining)
	})

	t.Run("forbidden", func(t *testing.T) {
		r, svc, _ := setupHandlerTest(t)
		svc.EXPECT().GetBalances(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, membershiperrors.ErrInsufficientRole)

		w, env := perform(r, http.MethodGet, path, "")

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})
}

func TestLeaveBalanceHandler_GetHistory(t *testing.T) {
	companyID := uuid.New().String()
	membershipID := uuid.New().String()
	path := "/companies/" + companyID + "/memberships/" + membershipID + "/leave-balance-history"

	r, svc, actorID := setupHandlerTest(t)
	svc.EXPECT().
		GetHistory(gomock.Any(), companyID, membershipID, actorID).
		Return([]leavebalance.HistoryResponse{{Reason: "Annual adjustment", ChangeAmount: 5}}, nil)

	w, env := perform(r, http.MethodGet, path, "")

	assert.Equal(t, http.StatusOK, w.Code)
	var got []leavebalance.HistoryResponse
	assert.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Annual adjustment", got[0].Reason)
}

func TestLeaveBalanceHandler_UpdateLeaveBalances(t *testing.T) {
	companyID := uuid.New().String()
	membershipID := uuid.New().String()
	path := "/companies/" + companyID + "/memberships/" + membershipID + "/leave-balances"

	t.Run("success", func(t *testing.T) {
		r, svc, actorID := setupHandlerTest(t)
		svc.EXPECT().
			UpdateLeaveBalances(gomock.Any(), companyID, membershipID, actorID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _, _ string, req leavebalance.UpdateBalanceRequest) (leavebalance.BalanceResponse, error) {
				assert.Equal(t, leavebalance.TypePaid, req.Type)
				assert.True(t, decimal.NewFromInt(5).Equal(req.Change))
				return leavebalance.BalanceResponse{LeaveType: req.Type, Remaining: 5, Balance: 5}, nil
			})

		w, env := perform(r, http.MethodPut, path, `{"type":"PAID","change":5,"reason":"Annual adjustment"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, env.Ok)
	})

	t.Run("missing reason", func(t *testing.T) {
		r, _, _ := setupHandlerTest(t)

		w, env := perform(r, http.MethodPut, path, `{"type":"PAID","change":5}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})

	t.Run("invalid step", func(t *testing.T) {
		r, svc, _ := setupHandlerTest(t)
		svc.EXPECT().
			UpdateLeaveBalances(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leavebalance.BalanceResponse{}, leavebalanceerrors.ErrInvalidChangeStep)

		w, env := perform(r, http.MethodPut, path, `{"type":"PAID","change":1.3,"reason":"x"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "change must be a multiple of 0.5", env.Error.Message)
	})
}

func TestLeaveBalanceHandler_AllocateAnnualLeave(t *testing.T) {
	companyID := uuid.New().String()
	path := "/companies/" + companyID + "/leave-balances/annual-allocation"

	t.Run("success", func(t *testing.T) {
		r, svc, actorID := setupHandlerTest(t)
		svc.EXPECT().
			AllocateAnnualLeave(gomock.Any(), companyID, actorID, leavebalance.AllocateAnnualLeaveRequest{Year: 2024}).
			Return(leavebalance.AllocationResponse{Year: 2024, LeaveType: leavebalance.TypePaid, DaysPerMember: 25, Memberships: 4}, nil)

		w, env := perform(r, http.MethodPost, path, `{"year":2024}`)

		assert.Equal(t, http.StatusOK, w.Code)
		var got leavebalance.AllocationResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, 4, got.Memberships)
	})

	t.Run("year out of range", func(t *testing.T) {
		r, _, _ := setupHandlerTest(t)

		w, _ := perform(r, http.MethodPost, path, `{"year":1999}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		r, svc, _ := setupHandlerTest(t)
		svc.EXPECT().
			AllocateAnnualLeave(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(leavebalance.AllocationResponse{}, errors.New("db down"))

		w, env := perform(r, http.MethodPost, path, `{"year":2024}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
	})
}
