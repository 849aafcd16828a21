// Package dashboard aggregates per-user totals and recent documents.
package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"docbuilder-backend/internal/invoices"
	"docbuilder-backend/internal/resumes"
	"docbuilder-backend/internal/shared/server/middleware"
	"docbuilder-backend/internal/shared/server/respond"
)

// RecentLimit is how many recent resumes and invoices are returned.
const RecentLimit = 5

type ResumeSource interface {
	Count(ctx context.Context, userID string) (int, error)
	List(ctx context.Context, userID string, limit, offset int) ([]resumes.Record, error)
}

type InvoiceSource interface {
	Count(ctx context.Context, userID string) (int, error)
	List(ctx context.Context, userID string, limit, offset int) ([]invoices.Invoice, error)
}

// Summary is the dashboard payload.
type Summary struct {
	TotalResumes   int                `json:"totalResumes"`
	TotalInvoices  int                `json:"totalInvoices"`
	RecentResumes  []resumes.Summary  `json:"recentResumes"`
	RecentInvoices []invoices.Invoice `json:"recentInvoices"`
}

type Service struct {
	Resumes  ResumeSource
	Invoices InvoiceSource
}

// Load runs the four queries concurrently.
func (s *Service) Load(ctx context.Context, userID string) (Summary, error) {
	var out Summary
	var recentResumes []resumes.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := s.Resumes.Count(gctx, userID)
		out.TotalResumes = n
		return err
	})
	g.Go(func() error {
		n, err := s.Invoices.Count(gctx, userID)
		out.TotalInvoices = n
		return err
	})
	g.Go(func() error {
		recs, err := s.Resumes.List(gctx, userID, RecentLimit, 0)
		recentResumes = recs
		return err
	})
	g.Go(func() error {
		invs, err := s.Invoices.List(gctx, userID, RecentLimit, 0)
		out.RecentInvoices = invs
		return err
	})
	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	out.RecentResumes = make([]resumes.Summary, 0, len(recentResumes))
	for _, rec := range recentResumes {
		out.RecentResumes = append(out.RecentResumes, rec.Summary())
	}
	if out.RecentInvoices == nil {
		out.RecentInvoices = []invoices.Invoice{}
	}
	return out, nil
}

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.get)
}

func (h *Handler) get(c *gin.Context) {
	summary, err := h.Svc.Load(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load dashboard", nil)
		return
	}
	respond.OK(c, summary)
}
