package query

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestPaging(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		url        string
		wantLimit  int
		wantOffset int
	}{
		{url: "/x", wantLimit: 20, wantOffset: 0},
		{url: "/x?limit=5&offset=10", wantLimit: 5, wantOffset: 10},
		{url: "/x?limit=500", wantLimit: 50, wantOffset: 0},
		{url: "/x?limit=-1&offset=-3", wantLimit: 20, wantOffset: 0},
		{url: "/x?limit=abc&offset=xyz", wantLimit: 20, wantOffset: 0},
	}
	for _, tt := range tests {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", tt.url, nil)
		limit, offset := Paging(c)
		if limit != tt.wantLimit || offset != tt.wantOffset {
			t.Fatalf("%s: got (%d, %d), want (%d, %d)", tt.url, limit, offset, tt.wantLimit, tt.wantOffset)
		}
	}
}
