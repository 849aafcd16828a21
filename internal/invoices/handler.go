package invoices

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"docbuilder-backend/internal/shared/server/middleware"
	"docbuilder-backend/internal/shared/server/query"
	"docbuilder-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

type listResponse struct {
	Items  []Invoice `json:"items"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// RegisterRoutes attaches invoice routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoices", h.create)
	rg.GET("/invoices", h.list)
	rg.GET("/invoices/:id", h.get)
	rg.PUT("/invoices/:id", h.update)
	rg.DELETE("/invoices/:id", h.delete)
	rg.GET("/invoices/:id/export", h.export)
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	inv, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, "failed to create invoice")
		return
	}
	c.Set("invoiceId", inv.ID)
	respond.JSON(c, http.StatusCreated, inv)
}

func (h *Handler) list(c *gin.Context) {
	limit, offset := query.Paging(c)
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		writeError(c, err, "failed to list invoices")
		return
	}
	respond.OK(c, listResponse{Items: items, Limit: limit, Offset: offset})
}

func (h *Handler) get(c *gin.Context) {
	inv, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), invoiceID(c))
	if err != nil {
		writeError(c, err, "failed to load invoice")
		return
	}
	respond.OK(c, inv)
}

func (h *Handler) update(c *gin.Context) {
	id := invoiceID(c)
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	inv, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		writeError(c, err, "failed to update invoice")
		return
	}
	respond.OK(c, inv)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), invoiceID(c)); err != nil {
		writeError(c, err, "failed to delete invoice")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) export(c *gin.Context) {
	data, inv, err := h.Svc.PDF(c.Request.Context(), middleware.UserIDFromContext(c), invoiceID(c))
	if err != nil {
		writeError(c, err, "failed to render invoice")
		return
	}
	respond.Attachment(c, "application/pdf", Filename(inv), data)
}

func invoiceID(c *gin.Context) string {
	id := c.Param("id")
	c.Set("invoiceId", id)
	return id
}

func writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "invoice not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrRender):
		respond.Error(c, http.StatusInternalServerError, "render_failed", fallback, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
