package invoices

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"docbuilder-backend/resume/export"
)

func newService(t *testing.T) *Service {
	t.Helper()
	renderer, err := NewRenderer("", "")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	return &Service{Repo: NewMemoryRepo(), Renderer: renderer}
}

func sampleInput(items int) Input {
	in := Input{
		ClientName:    "Acme Traders",
		ClientEmail:   "billing@acme.test",
		ClientAddress: "12 Mall Road, Lahore",
		CompanyName:   "Docbuilder Studio",
		TaxPercentage: 10,
		Notes:         "Payment due within 14 days.",
	}
	for i := 0; i < items; i++ {
		in.Items = append(in.Items, Item{
			Description: fmt.Sprintf("Consulting session %d covering architecture review and follow-up notes", i+1),
			Quantity:    2,
			Price:       50,
		})
	}
	return in
}

func TestServiceNumbersInvoicesSequentially(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "user-1", sampleInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := svc.Create(ctx, "user-2", sampleInput(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.InvoiceNumber != 1 || second.InvoiceNumber != 2 {
		t.Fatalf("unexpected numbers %d, %d", first.InvoiceNumber, second.InvoiceNumber)
	}
	if second.Subtotal != 200 || second.TaxAmount != 20 || second.TotalAmount != 220 {
		t.Fatalf("unexpected totals %+v", second)
	}
	if first.Status != StatusDraft || first.Language != "english" || first.TemplateID != "standard" {
		t.Fatalf("unexpected defaults %+v", first)
	}

	if _, err := svc.Get(ctx, "user-2", first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other users invoice to be hidden, got %v", err)
	}
	n, err := svc.Count(ctx, "user-1")
	if err != nil || n != 1 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestServiceUpdateKeepsNumberAndRecomputes(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	inv, err := svc.Create(ctx, "user-1", sampleInput(1))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := sampleInput(3)
	in.Status = "paid"
	in.TaxPercentage = 0
	updated, err := svc.Update(ctx, "user-1", inv.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.InvoiceNumber != inv.InvoiceNumber {
		t.Fatalf("invoice number changed: %d -> %d", inv.InvoiceNumber, updated.InvoiceNumber)
	}
	if updated.Status != StatusPaid || updated.TotalAmount != 300 {
		t.Fatalf("unexpected update %+v", updated)
	}
}

func TestServiceRejectsInvalidInput(t *testing.T) {
	svc := newService(t)
	cases := map[string]func(*Input){
		"missing client": func(in *Input) { in.ClientName = " " },
		"bad email":      func(in *Input) { in.ClientEmail = "not-an-email" },
		"bad status":     func(in *Input) { in.Status = "void" },
		"tax too high":   func(in *Input) { in.TaxPercentage = 150 },
		"negative price": func(in *Input) { in.Items[0].Price = -1 },
		"bad language":   func(in *Input) { in.Language = "klingon" },
	}
	for name, mutate := range cases {
		in := sampleInput(1)
		mutate(&in)
		if _, err := svc.Create(context.Background(), "user-1", in); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", name, err)
		}
	}
}

func TestServicePDF(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	short, err := svc.Create(ctx, "user-1", sampleInput(2))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	data, inv, err := svc.PDF(ctx, "user-1", short.ID)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if Filename(inv) != "invoice-1.pdf" {
		t.Fatalf("unexpected filename %q", Filename(inv))
	}
	info, err := export.Inspect(data)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(info.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(info.Pages))
	}

	long := sampleInput(60)
	long.Language = "urdu"
	longInv, err := svc.Create(ctx, "user-1", long)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	data, _, err = svc.PDF(ctx, "user-1", longInv.ID)
	if err != nil {
		t.Fatalf("pdf: %v", err)
	}
	info, err = export.Inspect(data)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if len(info.Pages) < 2 {
		t.Fatalf("expected long invoice to span pages, got %d", len(info.Pages))
	}

	if _, _, err := svc.PDF(ctx, "user-2", short.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
