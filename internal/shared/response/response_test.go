package response_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParsePage(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
	}{
		{"defaults", "", 1, 50},
		{"explicit", "?page=3&pageSize=10", 3, 10},
		{"negative page", "?page=-2", 1, 50},
		{"size above max", "?pageSize=500", 1, 50},
		{"garbage", "?page=x&pageSize=y", 1, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/leaves"+tt.query, nil)

			page, pageSize := response.ParsePage(c, 50, 200)

			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	got, meta := response.Paginate(items, 2, 2)
	assert.Equal(t, []int{3, 4}, got)
	assert.Equal(t, response.PaginationMeta{Total: 5, TotalPages: 3, Page: 2, PageSize: 2}, meta)

	got, _ = response.Paginate(items, 3, 2)
	assert.Equal(t, []int{5}, got)

	got, meta = response.Paginate(items, 9, 2)
	assert.Empty(t, got)
	assert.Equal(t, int64(5), meta.Total)
}
