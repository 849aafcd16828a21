package resumes

import (
	"bytes"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newRouter(t *testing.T, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	NewHandler(newService(t)).RegisterRoutes(router.Group("/api/v1"))
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

func TestResumeCRUDAndExport(t *testing.T) {
	router := newRouter(t, "user-1")

	resp := doJSON(router, http.MethodPost, "/api/v1/resumes", longInput(3))
	if resp.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", resp.Code, resp.Body.String())
	}
	var created Record
	if err := json.Unmarshal(resp.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.PersonalInfo.FullName != "Ayesha Khan" {
		t.Fatalf("expected flattened content, got %s", resp.Body.String())
	}

	resp = doJSON(router, http.MethodGet, "/api/v1/resumes?limit=5", nil)
	var list listResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &list)
	if resp.Code != http.StatusOK || len(list.Items) != 1 || list.Limit != 5 {
		t.Fatalf("list status %d: %s", resp.Code, resp.Body.String())
	}

	resp = doJSON(router, http.MethodGet, "/api/v1/resumes/"+created.ID+"/preview?strategy=words", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("preview status %d: %s", resp.Code, resp.Body.String())
	}
	var preview previewResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &preview)
	if preview.Strategy != "words" || preview.Materialized != 1 || preview.TotalPages != len(preview.Pages) {
		t.Fatalf("unexpected preview %+v", preview)
	}

	resp = doJSON(router, http.MethodGet, "/api/v1/resumes/"+created.ID+"/export", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("export status %d: %s", resp.Code, resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type %q", ct)
	}
	_, params, err := mime.ParseMediaType(resp.Header().Get("Content-Disposition"))
	if err != nil || params["filename"] != "resume-Ayesha Khan.pdf" {
		t.Fatalf("content disposition %q (%v)", resp.Header().Get("Content-Disposition"), err)
	}
	if !bytes.HasPrefix(resp.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected pdf body")
	}

	resp = doJSON(router, http.MethodDelete, "/api/v1/resumes/"+created.ID, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete status %d", resp.Code)
	}
	resp = doJSON(router, http.MethodGet, "/api/v1/resumes/"+created.ID, nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("get after delete status %d", resp.Code)
	}
}

func TestExportEmptyResumeIs422(t *testing.T) {
	router := newRouter(t, "user-1")
	resp := doJSON(router, http.MethodPost, "/api/v1/resumes", Input{Title: "Blank"})
	var created Record
	_ = json.Unmarshal(resp.Body.Bytes(), &created)

	resp = doJSON(router, http.MethodGet, "/api/v1/resumes/"+created.ID+"/export", nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Error.Code != "nothing_to_export" {
		t.Fatalf("unexpected error code %q", body.Error.Code)
	}
}

func TestPreviewDraftEndpoint(t *testing.T) {
	router := newRouter(t, "user-1")
	payload := map[string]any{
		"template":     "classic",
		"locale":       "urdu",
		"materialized": 5,
		"personalInfo": map[string]string{"fullName": "Ali"},
		"skills":       []string{"Go"},
	}
	resp := doJSON(router, http.MethodPost, "/api/v1/resumes/preview", payload)
	if resp.Code != http.StatusOK {
		t.Fatalf("status %d: %s", resp.Code, resp.Body.String())
	}
	var preview previewResponse
	_ = json.Unmarshal(resp.Body.Bytes(), &preview)
	if preview.Direction != "rtl" || preview.Template != "classic" || preview.TotalPages != 1 || preview.Materialized != 1 {
		t.Fatalf("unexpected preview %+v", preview)
	}

	resp = doJSON(router, http.MethodPost, "/api/v1/resumes/preview", map[string]any{"template": "fancy"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown template, got %d", resp.Code)
	}
}
