package invoices

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T, svc *Service, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(router.Group("/api/v1"))
	return router
}

func doJSON(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestInvoiceCRUDAndExport(t *testing.T) {
	svc := newService(t)
	router := newRouter(t, svc, "user-1")

	resp := doJSON(router, http.MethodPost, "/api/v1/invoices", sampleInput(2))
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", resp.Code, resp.Body.String())
	}
	var created Invoice
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.InvoiceNumber != 1 || created.TotalAmount != 220 {
		t.Fatalf("unexpected invoice %s", resp.Body.String())
	}

	resp = doJSON(router, http.MethodGet, "/api/v1/invoices", nil)
	var list listResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &list)
	if resp.Code != http.StatusOK || len(list.Items) != 1 || list.Limit != 20 {
		t.Fatalf("list status %d: %s", resp.Code, resp.Body.String())
	}

	in := sampleInput(1)
	in.Status = "sent"
	resp = doJSON(router, http.MethodPut, "/api/v1/invoices/"+created.ID, in)
	if resp.Code != http.StatusOK {
		t.Fatalf("update status %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, http.MethodGet, "/api/v1/invoices/"+created.ID+"/export", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := resp.Header().Get("Content-Disposition"); cd != "attachment; filename=invoice-1.pdf" {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected PDF body")
	}

	resp = doJSON(router, http.MethodDelete, "/api/v1/invoices/"+created.ID, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", resp.Code)
	}
	resp = doJSON(router, http.MethodGet, "/api/v1/invoices/"+created.ID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestInvoiceValidationErrors(t *testing.T) {
	router := newRouter(t, newService(t), "user-1")

	in := sampleInput(1)
	in.ClientName = ""
	resp := doJSON(router, http.MethodPost, "/api/v1/invoices", in)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Error.Code != "validation_error" {
		t.Fatalf("unexpected error body %s", resp.Body.String())
	}
}

func TestInvoiceScopedToOwner(t *testing.T) {
	svc := newService(t)
	owner := newRouter(t, svc, "user-1")
	other := newRouter(t, svc, "user-2")

	resp := doJSON(owner, http.MethodPost, "/api/v1/invoices", sampleInput(1))
	var created Invoice
	_ = json.Unmarshal(resp.Body.Bytes(), &created)

	resp = doJSON(other, http.MethodGet, "/api/v1/invoices/"+created.ID+"/export", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for foreign invoice, got %d", resp.Code)
	}
}
