package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"docbuilder-backend/internal/invoices"
	"docbuilder-backend/internal/resumes"
	"docbuilder-backend/resume/model"
)

func seed(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()
	resumeRepo := resumes.NewMemoryRepo()
	invoiceRepo := invoices.NewMemoryRepo()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		rec := resumes.Record{
			ID:         fmt.Sprintf("r%d", i),
			UserID:     "user-1",
			Title:      fmt.Sprintf("Resume %d", i),
			TemplateID: "modern",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
			Resume:     model.Resume{PersonalInfo: model.PersonalInfo{FullName: "Ana"}},
		}
		if err := resumeRepo.Create(ctx, rec); err != nil {
			t.Fatalf("seed resume: %v", err)
		}
	}
	for i := 0; i < 3; i++ {
		inv := invoices.Invoice{
			ID:         fmt.Sprintf("i%d", i),
			UserID:     "user-1",
			ClientName: "Acme",
			CreatedAt:  base.Add(time.Duration(i) * time.Hour),
		}
		if _, err := invoiceRepo.Create(ctx, inv); err != nil {
			t.Fatalf("seed invoice: %v", err)
		}
	}
	if _, err := invoiceRepo.Create(ctx, invoices.Invoice{ID: "other", UserID: "user-2", ClientName: "X"}); err != nil {
		t.Fatalf("seed invoice: %v", err)
	}
	return &Service{Resumes: resumeRepo, Invoices: invoiceRepo}
}

func TestLoadCountsAndRecent(t *testing.T) {
	svc := seed(t)
	got, err := svc.Load(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.TotalResumes != 7 || got.TotalInvoices != 3 {
		t.Fatalf("unexpected totals %+v", got)
	}
	if len(got.RecentResumes) != RecentLimit || got.RecentResumes[0].ID != "r6" {
		t.Fatalf("unexpected recent resumes %+v", got.RecentResumes)
	}
	if len(got.RecentInvoices) != 3 || got.RecentInvoices[0].ID != "i2" {
		t.Fatalf("unexpected recent invoices %+v", got.RecentInvoices)
	}
}

func TestDashboardHandlerEmptyUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", "nobody")
		c.Next()
	})
	NewHandler(seed(t)).RegisterRoutes(router.Group("/api/v1"))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if items, ok := body["recentResumes"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty recentResumes array, got %v", body["recentResumes"])
	}
	if items, ok := body["recentInvoices"].([]any); !ok || len(items) != 0 {
		t.Fatalf("expected empty recentInvoices array, got %v", body["recentInvoices"])
	}
}
