package resumes

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docbuilder-backend/internal/shared/server/middleware"
	"docbuilder-backend/internal/shared/server/query"
	"docbuilder-backend/internal/shared/server/respond"
	"docbuilder-backend/internal/shared/storage/object"
	"docbuilder-backend/resume/export"
	"docbuilder-backend/resume/render"
	"docbuilder-backend/resume/service"
)

const maxImageSize = 5 << 20 // 5MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes", h.create)
	rg.GET("/resumes", h.list)
	rg.POST("/resumes/preview", h.previewDraft)
	rg.GET("/resumes/:id", h.get)
	rg.PUT("/resumes/:id", h.update)
	rg.DELETE("/resumes/:id", h.delete)
	rg.POST("/resumes/:id/image", h.uploadImage)
	rg.GET("/resumes/:id/preview", h.preview)
	rg.POST("/resumes/:id/pages", h.addPage)
	rg.GET("/resumes/:id/export", h.export)
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	rec, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, "failed to create resume")
		return
	}
	c.Set("resumeId", rec.ID)
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := query.Paging(c)
	recs, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list resumes")
		return
	}
	items := make([]Summary, 0, len(recs))
	for _, rec := range recs {
		items = append(items, rec.Summary())
	}
	respond.OK(c, listResponse{Items: items, Limit: limit, Offset: offset})
}

func (h *Handler) get(c *gin.Context) {
	id := h.resumeID(c)
	rec, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) update(c *gin.Context) {
	id := h.resumeID(c)
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	rec, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		writeError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) delete(c *gin.Context) {
	id := h.resumeID(c)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "failed to delete resume")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) uploadImage(c *gin.Context) {
	id := h.resumeID(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	obj, err := h.Svc.UploadImage(c.Request.Context(), middleware.UserIDFromContext(c), id, fileHeader.Filename, file)
	if err != nil {
		writeError(c, err, "failed to store image")
		return
	}
	respond.JSON(c, http.StatusCreated, obj)
}

func (h *Handler) preview(c *gin.Context) {
	id := h.resumeID(c)
	res, err := h.Svc.Preview(c.Request.Context(), middleware.UserIDFromContext(c), id, renderOptions(c))
	if err != nil {
		writeError(c, err, "failed to paginate resume")
		return
	}
	c.Set("pages", len(res.Pages))
	respond.OK(c, toPreviewResponse(id, res))
}

func (h *Handler) addPage(c *gin.Context) {
	id := h.resumeID(c)
	res, added, err := h.Svc.AddPage(c.Request.Context(), middleware.UserIDFromContext(c), id, renderOptions(c))
	if err != nil {
		writeError(c, err, "failed to add page")
		return
	}
	c.Set("pages", res.Materialized)
	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	respond.JSON(c, status, toPreviewResponse(id, res))
}

func (h *Handler) export(c *gin.Context) {
	id := h.resumeID(c)
	out, err := h.Svc.Export(c.Request.Context(), middleware.UserIDFromContext(c), id, renderOptions(c))
	if err != nil {
		writeError(c, err, "failed to export resume")
		return
	}
	c.Set("pages", out.Pages)
	c.Header("X-Page-Count", strconv.Itoa(out.Pages))
	if out.ArchiveURL != "" {
		c.Header("X-Archive-Url", out.ArchiveURL)
	}
	respond.Attachment(c, "application/pdf", out.Filename, out.Data)
}

func (h *Handler) previewDraft(c *gin.Context) {
	var req draftPreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	res, err := h.Svc.PreviewDraft(req.Resume, req.Materialized, RenderOptions{
		Template: req.Template,
		Locale:   req.Locale,
		Strategy: req.Strategy,
	})
	if err != nil {
		writeError(c, err, "failed to paginate resume")
		return
	}
	c.Set("pages", len(res.Pages))
	respond.OK(c, toPreviewResponse("", res))
}

func (h *Handler) resumeID(c *gin.Context) string {
	id := c.Param("id")
	c.Set("resumeId", id)
	return id
}

func renderOptions(c *gin.Context) RenderOptions {
	return RenderOptions{
		Template: c.Query("template"),
		Locale:   c.Query("locale"),
		Strategy: c.Query("strategy"),
	}
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrInvalidImage):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "image must be PNG, JPEG or WebP", nil)
	case errors.Is(err, object.ErrInvalidKey):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
	case errors.Is(err, export.ErrNothingToExport):
		respond.Error(c, http.StatusUnprocessableEntity, "nothing_to_export", "resume has no content to export", nil)
	case errors.Is(err, export.ErrCapture), errors.Is(err, render.ErrImageUnavailable):
		respond.Error(c, http.StatusUnprocessableEntity, "export_failed", "failed to capture resume page", gin.H{"reason": err.Error()})
	case errors.Is(err, export.ErrAssembly):
		respond.Error(c, http.StatusInternalServerError, "export_failed", "failed to assemble PDF", nil)
	case errors.Is(err, service.ErrExportUnavailable):
		respond.Error(c, http.StatusServiceUnavailable, "export_unavailable", "export is not configured", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
