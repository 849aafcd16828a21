package invoices

import (
	"strings"
	"time"
)

// Status is the lifecycle state of an invoice.
type Status string

const (
	StatusDraft Status = "draft"
	StatusSent  Status = "sent"
	StatusPaid  Status = "paid"
)

// ParseStatus accepts draft, sent or paid. Empty means draft.
func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(raw))) {
	case "", StatusDraft:
		return StatusDraft, true
	case StatusSent:
		return StatusSent, true
	case StatusPaid:
		return StatusPaid, true
	}
	return "", false
}

// Item is one invoice line.
type Item struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Amount      float64 `json:"amount"`
}

type Invoice struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	InvoiceNumber  int64     `json:"invoiceNumber"`
	ClientName     string    `json:"clientName"`
	ClientEmail    string    `json:"clientEmail"`
	ClientAddress  string    `json:"clientAddress"`
	CompanyName    string    `json:"companyName"`
	CompanyLogoURL string    `json:"companyLogoUrl"`
	Items          []Item    `json:"items"`
	TaxPercentage  float64   `json:"taxPercentage"`
	Subtotal       float64   `json:"subtotal"`
	TaxAmount      float64   `json:"taxAmount"`
	TotalAmount    float64   `json:"totalAmount"`
	Notes          string    `json:"notes"`
	Status         Status    `json:"status"`
	Language       string    `json:"language"`
	TemplateID     string    `json:"templateId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
