package invoices

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"docbuilder-backend/internal/i18n"
	"docbuilder-backend/internal/shared/metrics"
)

const (
	maxItems       = 200
	maxTextLength  = 2000
	defaultInvoice = "standard"
)

// Input is the client-editable part of an invoice. Amounts and totals are
// always recomputed server side.
type Input struct {
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail"`
	ClientAddress  string  `json:"clientAddress"`
	CompanyName    string  `json:"companyName"`
	CompanyLogoURL string  `json:"companyLogoUrl"`
	Items          []Item  `json:"items"`
	TaxPercentage  float64 `json:"taxPercentage"`
	Notes          string  `json:"notes"`
	Status         string  `json:"status"`
	Language       string  `json:"language"`
	TemplateID     string  `json:"templateId"`
}

// Service contains business logic for invoices.
type Service struct {
	Repo     Repo
	Renderer *Renderer
}

func (s *Service) Create(ctx context.Context, userID string, in Input) (Invoice, error) {
	inv := Invoice{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	if err := apply(&inv, in); err != nil {
		return Invoice{}, err
	}
	return s.Repo.Create(ctx, inv)
}

func (s *Service) Get(ctx context.Context, userID, id string) (Invoice, error) {
	if strings.TrimSpace(id) == "" {
		return Invoice{}, ErrNotFound
	}
	return s.Repo.Get(ctx, userID, id)
}

func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Invoice, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	return s.Repo.List(ctx, userID, limit, offset)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.Repo.Count(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Invoice, error) {
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return Invoice{}, err
	}
	if err := apply(&inv, in); err != nil {
		return Invoice{}, err
	}
	return s.Repo.Update(ctx, inv)
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}

// PDF renders a stored invoice.
func (s *Service) PDF(ctx context.Context, userID, id string) ([]byte, Invoice, error) {
	inv, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, Invoice{}, err
	}
	if s.Renderer == nil {
		return nil, Invoice{}, fmt.Errorf("%w: renderer not configured", ErrRender)
	}
	data, err := s.Renderer.Render(inv)
	if err != nil {
		return nil, Invoice{}, err
	}
	metrics.IncInvoicePDF()
	return data, inv, nil
}

func apply(inv *Invoice, in Input) error {
	clientName := strings.TrimSpace(in.ClientName)
	if clientName == "" {
		return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
	}
	email := strings.TrimSpace(in.ClientEmail)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fmt.Errorf("%w: clientEmail is invalid", ErrInvalidInput)
		}
	}
	for _, field := range []string{in.ClientAddress, in.Notes, in.CompanyName} {
		if len(field) > maxTextLength {
			return fmt.Errorf("%w: text field too long", ErrInvalidInput)
		}
	}
	if len(in.Items) > maxItems {
		return fmt.Errorf("%w: at most %d items", ErrInvalidInput, maxItems)
	}
	for i, it := range in.Items {
		if !finite(it.Quantity) || !finite(it.Price) || it.Quantity < 0 || it.Price < 0 {
			return fmt.Errorf("%w: item %d has invalid quantity or price", ErrInvalidInput, i+1)
		}
	}
	if !finite(in.TaxPercentage) || in.TaxPercentage < 0 || in.TaxPercentage > 100 {
		return fmt.Errorf("%w: taxPercentage must be between 0 and 100", ErrInvalidInput)
	}
	status, ok := ParseStatus(in.Status)
	if !ok {
		return fmt.Errorf("%w: status must be draft, sent or paid", ErrInvalidInput)
	}
	locale := i18n.English
	if strings.TrimSpace(in.Language) != "" {
		var err error
		if locale, err = i18n.ParseLocale(in.Language); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
		}
	}
	templateID := strings.TrimSpace(in.TemplateID)
	if templateID == "" {
		templateID = defaultInvoice
	}

	items, totals := ComputeTotals(in.Items, in.TaxPercentage)
	for i := range items {
		items[i].Description = strings.TrimSpace(items[i].Description)
	}
	inv.ClientName = clientName
	inv.ClientEmail = email
	inv.ClientAddress = strings.TrimSpace(in.ClientAddress)
	inv.CompanyName = strings.TrimSpace(in.CompanyName)
	inv.CompanyLogoURL = strings.TrimSpace(in.CompanyLogoURL)
	inv.Items = items
	inv.TaxPercentage = in.TaxPercentage
	inv.Subtotal = totals.Subtotal
	inv.TaxAmount = totals.Tax
	inv.TotalAmount = totals.Total
	inv.Notes = strings.TrimSpace(in.Notes)
	inv.Status = status
	inv.Language = string(locale)
	inv.TemplateID = templateID
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
