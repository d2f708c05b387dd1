package company_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/company"
	companyerrors "go-leave/internal/company/errors"
	companyMock "go-leave/internal/company/mock"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)
	actorID := uuid.New().String()

	newRouter := func(w *httptest.ResponseRecorder) *gin.Engine {
		_, r := gin.CreateTestContext(w)
		r.Use(func(c *gin.Context) {
			c.Set("user_id_validated", actorID)
			c.Next()
		})
		r.GET("/companies/:companyId", handler.GetByID)
		return r
	}

	t.Run("Success", func(t *testing.T) {
		compID := uuid.New().String()
		mockService.EXPECT().GetByID(gomock.Any(), compID, actorID).Return(&company.CompanyResponse{ID: compID, Name: "Acme"}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/companies/"+compID, nil)
		newRouter(w).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var res map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, true, res["ok"])
	})

	t.Run("Not Found", func(t *testing.T) {
		compID := uuid.New().String()
		mockService.EXPECT().GetByID(gomock.Any(), compID, actorID).Return(nil, companyerrors.ErrCompanyNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/companies/"+compID, nil)
		newRouter(w).ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := companyMock.NewMockService(ctrl)
	handler := company.NewHandler(mockService)

	t.Run("Success", func(t *testing.T) {
		compID := uuid.New().String()
		days := 28
		reqBody := company.UpdateCompanyRequest{AnnualLeaveDays: &days}

		mockService.EXPECT().Update(gomock.Any(), compID, gomock.Any(), reqBody).
			Return(&company.CompanyResponse{ID: compID, AnnualLeaveDays: 28}, nil)

		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.PATCH("/companies/:companyId", handler.Update)

		jsonReq, _ := json.Marshal(reqBody)
		req, _ := http.NewRequest(http.MethodPatch, "/companies/"+compID, bytes.NewBuffer(jsonReq))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Invalid Allotment", func(t *testing.T) {
		w := httptest.NewRecorder()
		_, r := gin.CreateTestContext(w)
		r.PATCH("/companies/:companyId", handler.Update)

		req, _ := http.NewRequest(http.MethodPatch, "/companies/"+uuid.New().String(), bytes.NewBufferString(`{"annualLeaveDays":400}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
